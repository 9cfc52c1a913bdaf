package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/models"
	"github.com/ternarybob/sitesmith/internal/services/dataset"
	"github.com/ternarybob/sitesmith/internal/services/llm"
	"github.com/ternarybob/sitesmith/internal/services/policy"
)

// Analyzer turns a request into a structured IntentAnalysis via a model call
// and then runs the deterministic correction policy over the proposal.
type Analyzer struct {
	client    interfaces.TextClient
	corrector policy.Corrector[models.IntentAnalysis]
	logger    arbor.ILogger
}

// NewAnalyzer creates an analyzer with the standard correction policy
func NewAnalyzer(client interfaces.TextClient, logger arbor.ILogger) *Analyzer {
	return &Analyzer{
		client:    client,
		corrector: policy.CorrectorFunc[models.IntentAnalysis](correctAnalysis),
		logger:    logger,
	}
}

const analyzeSystemPrompt = `You classify website requests against local datasets.
Available data sources: movies, companies, products, testimonials, actors, directors.

Respond with JSON only, no prose, no code fences:
{"dataSource": "<one of the sources>", "filters": {<field>: <value>, ...}, "limit": <number of records>}

Filters must only name fields the user actually constrained (year, genre, location, industry, category).
Omit filters the user did not ask for. Use limit 100 unless the user stated a count.`

// Analyze derives the structured reading of the request. Never fails: when
// the model call or parse fails, the heuristic extractor supplies the
// proposal, and the correction policy runs over the result either way.
func (a *Analyzer) Analyze(ctx context.Context, intent string, model string) models.IntentAnalysis {
	proposal, err := a.propose(ctx, intent, model)
	if err != nil {
		a.logger.Warn().Err(err).Msg("Intent analysis model call failed, using heuristic analysis")
		proposal = HeuristicAnalysis(intent)
	}

	corrected := a.corrector.Correct(proposal, intent)

	a.logger.Info().
		Str("data_source", corrected.DataSource).
		Int("limit", corrected.Limit).
		Int("filters", len(corrected.Filters)).
		Msg("Intent analyzed")

	return corrected
}

func (a *Analyzer) propose(ctx context.Context, intent string, model string) (models.IntentAnalysis, error) {
	var analysis models.IntentAnalysis

	resp, err := a.client.GenerateContent(ctx, &interfaces.ContentRequest{
		Model:             model,
		Temperature:       0.2,
		MaxTokens:         1024,
		SystemInstruction: analyzeSystemPrompt,
		Messages: []interfaces.Message{
			{Role: "user", Content: intent},
		},
	})
	if err != nil {
		return analysis, err
	}

	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp.Text)), &analysis); err != nil {
		return analysis, fmt.Errorf("failed to parse intent analysis: %w", err)
	}
	return analysis, nil
}

var allLanguage = []string{"all ", " all", "every", "entire", "complete list", "everything"}

var singularLanguage = []string{"one ", "a single", "single ", "just the", "the best", "top "}

var locationPrepositions = []string{" in ", " from ", "located", " at ", "based"}

// correctAnalysis is the deterministic correction stage over the model's
// proposed analysis. Rules, in order:
//
//   - an unknown dataSource is replaced by the keyword detector's choice
//   - a nil filter map becomes an empty one
//   - a location filter is discarded unless the request text actually
//     mentions the value or uses location language
//   - limits outside (0, 500] become 100
//   - "all"-style language bumps a sub-100 limit up to 100
//   - a limit of exactly 1 without singular language is treated as a
//     hallucination and reset to 100
func correctAnalysis(proposal models.IntentAnalysis, originalRequest string) models.IntentAnalysis {
	lower := strings.ToLower(originalRequest)

	if !models.IsKnownCollection(proposal.DataSource) {
		proposal.DataSource = dataset.DetectDataSource(originalRequest)
	}

	if proposal.Filters == nil {
		proposal.Filters = make(map[string]interface{})
	}

	if loc, ok := proposal.Filters["location"]; ok {
		locStr := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", loc)))
		mentioned := locStr != "" && strings.Contains(lower, locStr)
		hasPreposition := false
		for _, p := range locationPrepositions {
			if strings.Contains(lower, p) {
				hasPreposition = true
				break
			}
		}
		if !mentioned && !hasPreposition {
			delete(proposal.Filters, "location")
		}
	}

	if proposal.Limit <= 0 || proposal.Limit > dataset.MaxLimit {
		proposal.Limit = dataset.DefaultLimit
	}

	if proposal.Limit < dataset.DefaultLimit && containsAnyPhrase(lower, allLanguage) {
		proposal.Limit = dataset.DefaultLimit
	}

	if proposal.Limit == 1 && !containsAnyPhrase(lower, singularLanguage) {
		proposal.Limit = dataset.DefaultLimit
	}

	return proposal
}

func containsAnyPhrase(lower string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
