// Package validator runs a model review pass over generated files and fixes
// the problems the review flags. The whole pass is best-effort: any model or
// parse failure is swallowed and the files ship as generated.
package validator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/services/llm"
)

// Issue is one problem the review pass found in a generated file
type Issue struct {
	FileName string `json:"fileName"`
	Issue    string `json:"issue"`
	Severity string `json:"severity"`
	Fix      string `json:"fix"`
}

// SeverityError marks issues that trigger a fix call; anything else is
// logged and left alone.
const SeverityError = "error"

// Validator reviews and repairs generated site files
type Validator struct {
	client interfaces.TextClient
	logger arbor.ILogger
}

// NewValidator creates a validator
func NewValidator(client interfaces.TextClient, logger arbor.ILogger) *Validator {
	return &Validator{client: client, logger: logger}
}

const reviewSystemPrompt = `You review generated static website files.
Look for broken references between files, malformed HTML or JavaScript,
truncated output, and links to pages that do not exist.

Respond with JSON only, no prose, no code fences: an array of issues, empty
when the files are fine:
[{"fileName": "...", "issue": "...", "severity": "error|warning", "fix": "..."}]

Use severity "error" only for problems that break the site in a browser.`

const fixSystemPrompt = `You repair one file of a generated static website.
Respond with the complete corrected raw file content only. No code fences,
no commentary, no partial output.`

// truncationWords flag issues describing cut-off output; those fix prompts
// ask for full regeneration rather than a targeted edit.
var truncationWords = []string{"truncat", "cut off", "cut-off", "incomplete", "unterminated", "abruptly"}

// ValidateAndFix reviews the files, rewrites every file with an
// error-severity issue, and returns the names of the files it rewrote.
// The map is mutated in place. Failures anywhere in the pass degrade to
// doing nothing; validation never fails a job.
func (v *Validator) ValidateAndFix(ctx context.Context, files map[string]string, request string, model string) []string {
	v.checkStructure(files)

	issues := v.review(ctx, files, model)
	if len(issues) == 0 {
		v.logger.Info().Msg("Validation found no issues")
		return nil
	}

	fixed := make([]string, 0, len(issues))
	for _, issue := range issues {
		content, ok := files[issue.FileName]
		if !ok {
			v.logger.Warn().Str("file", issue.FileName).Msg("Review flagged a file that was not generated")
			continue
		}

		if !strings.EqualFold(issue.Severity, SeverityError) {
			v.logger.Info().
				Str("file", issue.FileName).
				Str("severity", issue.Severity).
				Str("issue", issue.Issue).
				Msg("Non-error issue left as generated")
			continue
		}

		repaired, err := v.fix(ctx, issue, content, request, model)
		if err != nil {
			v.logger.Warn().Err(err).Str("file", issue.FileName).Msg("Fix call failed, keeping original content")
			continue
		}

		files[issue.FileName] = repaired
		fixed = append(fixed, issue.FileName)
		v.logger.Info().Str("file", issue.FileName).Str("issue", issue.Issue).Msg("File rewritten by validator")
	}

	return fixed
}

func (v *Validator) review(ctx context.Context, files map[string]string, model string) []Issue {
	var b strings.Builder
	for name, content := range files {
		fmt.Fprintf(&b, "=== %s ===\n%s\n\n", name, content)
	}

	resp, err := v.client.GenerateContent(ctx, &interfaces.ContentRequest{
		Model:             model,
		Temperature:       0.1,
		MaxTokens:         2048,
		SystemInstruction: reviewSystemPrompt,
		Messages: []interfaces.Message{
			{Role: "user", Content: b.String()},
		},
	})
	if err != nil {
		v.logger.Warn().Err(err).Msg("Validation review failed, skipping validation")
		return nil
	}

	var issues []Issue
	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp.Text)), &issues); err != nil {
		v.logger.Warn().Err(err).Msg("Validation review returned unparseable output, skipping validation")
		return nil
	}
	return issues
}

func (v *Validator) fix(ctx context.Context, issue Issue, content, request, model string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Website request: %s\n\n", request)
	fmt.Fprintf(&b, "File: %s\nProblem: %s\n", issue.FileName, issue.Issue)
	if issue.Fix != "" {
		fmt.Fprintf(&b, "Suggested fix: %s\n", issue.Fix)
	}
	if isTruncationIssue(issue) {
		b.WriteString("The file was cut off mid-generation. Regenerate it in full; do not stop at the point where it was cut.\n")
	}
	fmt.Fprintf(&b, "\nCurrent content:\n%s", content)

	resp, err := v.client.GenerateContent(ctx, &interfaces.ContentRequest{
		Model:             model,
		Temperature:       0.2,
		MaxTokens:         8192,
		SystemInstruction: fixSystemPrompt,
		Messages: []interfaces.Message{
			{Role: "user", Content: b.String()},
		},
	})
	if err != nil {
		return "", err
	}

	repaired := llm.CleanFences(resp.Text)
	if strings.TrimSpace(repaired) == "" {
		return "", fmt.Errorf("fix call returned empty content for %s", issue.FileName)
	}
	return repaired, nil
}

func isTruncationIssue(issue Issue) bool {
	text := strings.ToLower(issue.Issue + " " + issue.Fix)
	for _, w := range truncationWords {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// checkStructure is a deterministic sanity pass over the HTML files: grossly
// unbalanced structural tags get a warning. Warning only, never a rewrite;
// the model review owns repairs.
func (v *Validator) checkStructure(files map[string]string) {
	for name, content := range files {
		if !strings.HasSuffix(name, ".html") {
			continue
		}
		lower := strings.ToLower(content)
		for _, tag := range []string{"html", "head", "body"} {
			open := strings.Count(lower, "<"+tag+">") + strings.Count(lower, "<"+tag+" ")
			closed := strings.Count(lower, "</"+tag+">")
			if open > 0 && closed == 0 {
				v.logger.Warn().
					Str("file", name).
					Str("tag", tag).
					Msg("Unclosed structural tag in generated page")
			}
		}
	}
}
