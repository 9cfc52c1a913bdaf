// Package intent contains the model-driven steps that turn a raw user
// request into a structured reading: rephrasing, analysis, data-source
// verification, and branding extraction. All of these steps are
// non-essential: on any failure they degrade to heuristics or pass-through
// rather than aborting the pipeline.
package intent

import (
	"context"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/interfaces"
)

// Rephraser normalizes a raw request into a clearer instruction string
type Rephraser struct {
	client interfaces.TextClient
	logger arbor.ILogger
}

// NewRephraser creates a rephraser
func NewRephraser(client interfaces.TextClient, logger arbor.ILogger) *Rephraser {
	return &Rephraser{client: client, logger: logger}
}

const rephraseSystemPrompt = `You rewrite website requests.
Restate the user's request as one clear instruction for building a static website.
Preserve every stated requirement (data, pages, style, locations, years).
Do not add requirements. Respond with the restated instruction only.`

// Rephrase returns a cleaned restatement of the intent. On any failure the
// original intent is returned unchanged; this step must never abort the
// pipeline.
func (r *Rephraser) Rephrase(ctx context.Context, rawIntent string, model string) string {
	resp, err := r.client.GenerateContent(ctx, &interfaces.ContentRequest{
		Model:             model,
		Temperature:       0.3,
		MaxTokens:         512,
		SystemInstruction: rephraseSystemPrompt,
		Messages: []interfaces.Message{
			{Role: "user", Content: rawIntent},
		},
	})
	if err != nil || resp.Text == "" {
		r.logger.Warn().Err(err).Msg("Rephrase failed, using original intent")
		return rawIntent
	}

	r.logger.Debug().Str("rephrased", resp.Text).Msg("Intent rephrased")
	return resp.Text
}
