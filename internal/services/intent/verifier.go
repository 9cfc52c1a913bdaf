package intent

import (
	"context"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/models"
)

// Verifier double-checks the analyzer's data source choice with a second
// model call. Advisory only: on any failure or unrecognized answer the
// original choice stands.
type Verifier struct {
	client interfaces.TextClient
	logger arbor.ILogger
}

// NewVerifier creates a verifier
func NewVerifier(client interfaces.TextClient, logger arbor.ILogger) *Verifier {
	return &Verifier{client: client, logger: logger}
}

const verifySystemPrompt = `You verify dataset selection for website requests.
Available data sources: movies, companies, products, testimonials, actors, directors.

Given a request and a chosen data source, respond with exactly one word:
CORRECT if the chosen source fits the request, otherwise the name of the source that fits better.`

// Verify returns the data source to use: the proposed one when the model
// answers CORRECT or the call fails, or the model's substitute when it names
// a known collection.
func (v *Verifier) Verify(ctx context.Context, intent, proposedSource string, model string) string {
	resp, err := v.client.GenerateContent(ctx, &interfaces.ContentRequest{
		Model:             model,
		Temperature:       0,
		MaxTokens:         64,
		SystemInstruction: verifySystemPrompt,
		Messages: []interfaces.Message{
			{Role: "user", Content: "Request: " + intent + "\nChosen data source: " + proposedSource},
		},
	})
	if err != nil {
		v.logger.Warn().Err(err).Msg("Data source verification failed, keeping proposed source")
		return proposedSource
	}

	answer := strings.ToLower(strings.TrimSpace(resp.Text))
	if strings.Contains(answer, "correct") {
		return proposedSource
	}

	for _, collection := range models.KnownCollections() {
		if strings.Contains(answer, collection) {
			if collection != proposedSource {
				v.logger.Info().
					Str("proposed", proposedSource).
					Str("corrected", collection).
					Msg("Data source corrected by verifier")
			}
			return collection
		}
	}

	v.logger.Warn().Str("answer", resp.Text).Msg("Unrecognized verifier answer, keeping proposed source")
	return proposedSource
}
