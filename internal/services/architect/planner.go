// Package architect plans the file layout of a generated site: which pages
// exist, what each is for, and which scripts and styles support them. The
// plan comes from a model proposal corrected by a deterministic keyword
// rescan of the original request.
package architect

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/models"
	"github.com/ternarybob/sitesmith/internal/services/llm"
	"github.com/ternarybob/sitesmith/internal/services/policy"
)

const (
	// IndexFileName and ScriptFileName are the two files every plan must
	// contain, on every path including fallbacks.
	IndexFileName  = "index.html"
	ScriptFileName = "app.js"

	StyleFileName = "styles.css"
)

// siteWords alone mark a request as a multi-page site; sectionWords do so
// only when at least two distinct ones appear.
var (
	siteWords    = []string{"portfolio", "company", "business", "website"}
	sectionWords = []string{"about", "contact", "product", "service", "mission", "vision"}
)

// Planner produces an ArchitecturePlan for a request
type Planner struct {
	client    interfaces.TextClient
	corrector policy.Corrector[models.ArchitecturePlan]
	logger    arbor.ILogger
}

// NewPlanner creates a planner with the standard correction policy
func NewPlanner(client interfaces.TextClient, logger arbor.ILogger) *Planner {
	p := &Planner{client: client, logger: logger}
	p.corrector = policy.CorrectorFunc[models.ArchitecturePlan](correctPlan)
	return p
}

const planSystemPromptSimple = `You plan file layouts for small static websites.
The site is client-side only: HTML pages and one shared app.js.
All data comes from an existing data.js file; never plan a data file.

Respond with JSON only, no prose, no code fences:
{"files": [{"fileName": "...", "purpose": "...", "kind": "page|script|style"}]}

Plan a single index.html page plus app.js. Styling lives inline in the
page; do not plan a stylesheet.`

const planSystemPromptComplex = `You plan file layouts for static websites.
The site is client-side only: HTML pages, one shared app.js, one styles.css.
All data comes from an existing data.js file; never plan a data file.

Respond with JSON only, no prose, no code fences:
{"files": [{"fileName": "...", "purpose": "...", "kind": "page|script|style"}]}

Always include index.html, app.js, and styles.css. Add further HTML pages
only for sections the request actually asks for (about, browse, details,
contact). Keep the plan under eight files.`

// Plan asks the model for a file layout and corrects the proposal. Never
// fails: on model or parse failure the minimal plan is used, and every path
// runs through the corrector, so the index.html/app.js invariant always
// holds on the returned plan.
func (p *Planner) Plan(ctx context.Context, request string, model string) models.ArchitecturePlan {
	proposal, err := p.propose(ctx, request, model)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Architecture planning failed, using minimal plan")
		proposal = minimalPlan()
	}

	plan := p.corrector.Correct(proposal, request)

	p.logger.Info().
		Strs("files", plan.FileNames()).
		Msg("Architecture planned")

	return plan
}

func (p *Planner) propose(ctx context.Context, request string, model string) (models.ArchitecturePlan, error) {
	var plan models.ArchitecturePlan

	system := planSystemPromptSimple
	if isComplex(request) {
		system = planSystemPromptComplex
	}

	resp, err := p.client.GenerateContent(ctx, &interfaces.ContentRequest{
		Model:             model,
		Temperature:       0.2,
		MaxTokens:         1024,
		SystemInstruction: system,
		Messages: []interfaces.Message{
			{Role: "user", Content: request},
		},
	})
	if err != nil {
		return plan, err
	}

	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp.Text)), &plan); err != nil {
		return plan, fmt.Errorf("failed to parse architecture plan: %w", err)
	}
	if len(plan.Files) == 0 {
		return plan, fmt.Errorf("model returned an empty plan")
	}
	return plan, nil
}

func isComplex(request string) bool {
	lower := strings.ToLower(request)
	for _, w := range siteWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	matched := 0
	for _, w := range sectionWords {
		if strings.Contains(lower, w) {
			matched++
		}
	}
	return matched >= 2
}

// pageRule maps request keywords to a page the plan must include
type pageRule struct {
	fileName string
	purpose  string
	keywords []string
}

var pageRules = []pageRule{
	{"about.html", "About page with mission and background", []string{"about", "mission", "vision", "who we are"}},
	{"browse.html", "Listing page for browsing all records", []string{"browse", "product", "service", "catalog", "listing", "gallery"}},
	{"details.html", "Detail view for an individual record", []string{"detail", "individual", "profile page", "full info"}},
	{"contact.html", "Contact page", []string{"contact", "get in touch", "reach us"}},
}

// correctPlan is the deterministic correction stage over the model's
// proposed plan:
//
//   - duplicate file names are dropped, first occurrence wins
//   - data.js is removed if the model planned it; that file is written from
//     the filtered dataset, never generated
//   - for complex requests, a keyword rescan force-adds section pages the
//     request asks for but the model omitted
//   - index.html and app.js are appended when missing, unconditionally
func correctPlan(proposal models.ArchitecturePlan, originalRequest string) models.ArchitecturePlan {
	lower := strings.ToLower(originalRequest)

	out := models.ArchitecturePlan{Files: make([]models.PlannedFile, 0, len(proposal.Files)+2)}
	for _, f := range proposal.Files {
		name := strings.TrimSpace(f.FileName)
		if name == "" || out.Contains(name) {
			continue
		}
		if name == "data.js" {
			continue
		}
		f.FileName = name
		if f.Kind == "" {
			f.Kind = kindFromName(name)
		}
		out.Files = append(out.Files, f)
	}

	if isComplex(originalRequest) {
		for _, rule := range pageRules {
			if out.Contains(rule.fileName) {
				continue
			}
			for _, kw := range rule.keywords {
				if strings.Contains(lower, kw) {
					out.Files = append(out.Files, models.PlannedFile{
						FileName: rule.fileName,
						Purpose:  rule.purpose,
						Kind:     models.FileKindPage,
					})
					break
				}
			}
		}
	}

	if !out.Contains(IndexFileName) {
		out.Files = append(out.Files, models.PlannedFile{
			FileName: IndexFileName,
			Purpose:  "Landing page",
			Kind:     models.FileKindPage,
		})
	}
	if !out.Contains(ScriptFileName) {
		out.Files = append(out.Files, models.PlannedFile{
			FileName: ScriptFileName,
			Purpose:  "Shared rendering and navigation logic",
			Kind:     models.FileKindScript,
		})
	}

	return out
}

func kindFromName(name string) models.FileKind {
	switch {
	case strings.HasSuffix(name, ".html"):
		return models.FileKindPage
	case strings.HasSuffix(name, ".js"):
		return models.FileKindScript
	case strings.HasSuffix(name, ".css"):
		return models.FileKindStyle
	default:
		return models.FileKindAsset
	}
}

func minimalPlan() models.ArchitecturePlan {
	return models.ArchitecturePlan{Files: []models.PlannedFile{
		{FileName: IndexFileName, Purpose: "Landing page", Kind: models.FileKindPage},
		{FileName: ScriptFileName, Purpose: "Shared rendering and navigation logic", Kind: models.FileKindScript},
	}}
}
