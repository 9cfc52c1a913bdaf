package intent

import (
	"context"
	"encoding/json"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/models"
	"github.com/ternarybob/sitesmith/internal/services/llm"
)

// DetailsExtractor pulls optional branding (site name, tagline, description)
// out of a request. Fields the user never stated stay empty; defaults are
// applied where branding is consumed, not here.
type DetailsExtractor struct {
	client interfaces.TextClient
	logger arbor.ILogger
}

// NewDetailsExtractor creates a details extractor
func NewDetailsExtractor(client interfaces.TextClient, logger arbor.ILogger) *DetailsExtractor {
	return &DetailsExtractor{client: client, logger: logger}
}

const detailsSystemPrompt = `You extract website branding from requests.
Respond with JSON only, no prose, no code fences:
{"websiteName": "...", "tagline": "...", "description": "..."}

Only fill a field when the user explicitly stated it. Leave unstated fields
as empty strings. Never invent branding.`

// Extract returns the branding stated in the request. On any failure all
// fields come back unset.
func (e *DetailsExtractor) Extract(ctx context.Context, intent string, model string) models.WebsiteDetails {
	var details models.WebsiteDetails

	resp, err := e.client.GenerateContent(ctx, &interfaces.ContentRequest{
		Model:             model,
		Temperature:       0.2,
		MaxTokens:         512,
		SystemInstruction: detailsSystemPrompt,
		Messages: []interfaces.Message{
			{Role: "user", Content: intent},
		},
	})
	if err != nil {
		e.logger.Warn().Err(err).Msg("Details extraction failed, continuing without branding")
		return models.WebsiteDetails{}
	}

	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp.Text)), &details); err != nil {
		e.logger.Warn().Err(err).Msg("Details extraction returned unparseable output, continuing without branding")
		return models.WebsiteDetails{}
	}

	return details
}
