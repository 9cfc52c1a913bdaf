package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/sitesmith/internal/common"
	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/models"
)

// stubClient returns a canned response or error for every call
type stubClient struct {
	text string
	err  error
}

func (s *stubClient) GenerateContent(ctx context.Context, req *interfaces.ContentRequest) (*interfaces.ContentResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &interfaces.ContentResponse{Text: s.text, Provider: "stub", Model: req.Model}, nil
}

func (s *stubClient) Close() error { return nil }

func TestCorrectAnalysis(t *testing.T) {
	tests := []struct {
		name     string
		proposal models.IntentAnalysis
		request  string
		want     models.IntentAnalysis
	}{
		{
			name:     "unknown data source replaced by detector",
			proposal: models.IntentAnalysis{DataSource: "spaceships", Limit: 50},
			request:  "show me action movies",
			want:     models.IntentAnalysis{DataSource: "movies", Filters: map[string]interface{}{}, Limit: 50},
		},
		{
			name:     "limit zero becomes default",
			proposal: models.IntentAnalysis{DataSource: "movies"},
			request:  "show me movies",
			want:     models.IntentAnalysis{DataSource: "movies", Filters: map[string]interface{}{}, Limit: 100},
		},
		{
			name:     "limit above cap becomes default",
			proposal: models.IntentAnalysis{DataSource: "movies", Limit: 900},
			request:  "show me movies",
			want:     models.IntentAnalysis{DataSource: "movies", Filters: map[string]interface{}{}, Limit: 100},
		},
		{
			name:     "all language bumps small limit",
			proposal: models.IntentAnalysis{DataSource: "movies", Limit: 10},
			request:  "show every movie you have",
			want:     models.IntentAnalysis{DataSource: "movies", Filters: map[string]interface{}{}, Limit: 100},
		},
		{
			name:     "limit one without singular language resets",
			proposal: models.IntentAnalysis{DataSource: "movies", Limit: 1},
			request:  "show me action movies",
			want:     models.IntentAnalysis{DataSource: "movies", Filters: map[string]interface{}{}, Limit: 100},
		},
		{
			name:     "limit one with singular language kept",
			proposal: models.IntentAnalysis{DataSource: "movies", Limit: 1},
			request:  "show a single movie",
			want:     models.IntentAnalysis{DataSource: "movies", Filters: map[string]interface{}{}, Limit: 1},
		},
		{
			name:     "stated limit in range kept",
			proposal: models.IntentAnalysis{DataSource: "movies", Limit: 25},
			request:  "show me 25 movies",
			want:     models.IntentAnalysis{DataSource: "movies", Filters: map[string]interface{}{}, Limit: 25},
		},
		{
			name: "hallucinated location discarded",
			proposal: models.IntentAnalysis{
				DataSource: "companies",
				Filters:    map[string]interface{}{"location": "Sydney"},
				Limit:      100,
			},
			request: "company website with mission and products",
			want:    models.IntentAnalysis{DataSource: "companies", Filters: map[string]interface{}{}, Limit: 100},
		},
		{
			name: "mentioned location kept",
			proposal: models.IntentAnalysis{
				DataSource: "companies",
				Filters:    map[string]interface{}{"location": "Sydney"},
				Limit:      100,
			},
			request: "companies in Sydney",
			want: models.IntentAnalysis{
				DataSource: "companies",
				Filters:    map[string]interface{}{"location": "Sydney"},
				Limit:      100,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := correctAnalysis(tt.proposal, tt.request)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAnalyzer_ParsesModelJSON(t *testing.T) {
	client := &stubClient{text: "```json\n{\"dataSource\": \"companies\", \"filters\": {\"industry\": \"technology\"}, \"limit\": 20}\n```"}
	a := NewAnalyzer(client, common.GetLogger())

	got := a.Analyze(context.Background(), "technology companies", "gemini-2.0-flash")

	assert.Equal(t, "companies", got.DataSource)
	assert.Equal(t, "technology", got.Filters["industry"])
	assert.Equal(t, 20, got.Limit)
}

func TestAnalyzer_FallsBackToHeuristics(t *testing.T) {
	client := &stubClient{err: errors.New("provider down")}
	a := NewAnalyzer(client, common.GetLogger())

	got := a.Analyze(context.Background(), "action movies from 1995", "gemini-2.0-flash")

	assert.Equal(t, "movies", got.DataSource)
	assert.Equal(t, 1995, got.Filters["year"])
	assert.Equal(t, "action", got.Filters["genre"])
	assert.Equal(t, 100, got.Limit)
}

func TestAnalyzer_UnparseableOutputFallsBack(t *testing.T) {
	client := &stubClient{text: "I think movies would work well here."}
	a := NewAnalyzer(client, common.GetLogger())

	got := a.Analyze(context.Background(), "show me horror movies", "gemini-2.0-flash")

	assert.Equal(t, "movies", got.DataSource)
	assert.Equal(t, "horror", got.Filters["genre"])
}

func TestHeuristicAnalysis(t *testing.T) {
	got := HeuristicAnalysis("comedy movies from 2004")
	require.Equal(t, "movies", got.DataSource)
	assert.Equal(t, 2004, got.Filters["year"])
	assert.Equal(t, "comedy", got.Filters["genre"])

	got = HeuristicAnalysis("companies based in Berlin")
	require.Equal(t, "companies", got.DataSource)
	assert.Equal(t, "Berlin", got.Filters["location"])

	got = HeuristicAnalysis("something dramatic")
	assert.NotEqual(t, "drama", got.Filters["genre"], "genre match must be whole-word")
}

func TestVerifier(t *testing.T) {
	tests := []struct {
		name     string
		client   *stubClient
		proposed string
		want     string
	}{
		{"correct keeps proposal", &stubClient{text: "CORRECT"}, "movies", "movies"},
		{"substitute applied", &stubClient{text: "companies"}, "products", "companies"},
		{"unknown answer keeps proposal", &stubClient{text: "maybe spaceships"}, "movies", "movies"},
		{"error keeps proposal", &stubClient{err: errors.New("down")}, "movies", "movies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewVerifier(tt.client, common.GetLogger())
			got := v.Verify(context.Background(), "some request", tt.proposed, "gemini-2.0-flash")
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetailsExtractor(t *testing.T) {
	client := &stubClient{text: `{"websiteName": "CineVault", "tagline": "Every film, found", "description": ""}`}
	e := NewDetailsExtractor(client, common.GetLogger())

	got := e.Extract(context.Background(), "a movie site called CineVault, tagline Every film, found", "gemini-2.0-flash")
	assert.Equal(t, "CineVault", got.WebsiteName)
	assert.Equal(t, "Every film, found", got.Tagline)
	assert.Empty(t, got.Description)

	failing := NewDetailsExtractor(&stubClient{err: errors.New("down")}, common.GetLogger())
	got = failing.Extract(context.Background(), "a movie site", "gemini-2.0-flash")
	assert.True(t, got.IsEmpty())
}

func TestRephraser_FallsBackOnError(t *testing.T) {
	r := NewRephraser(&stubClient{err: errors.New("down")}, common.GetLogger())
	got := r.Rephrase(context.Background(), "moive webiste plz", "gemini-2.0-flash")
	assert.Equal(t, "moive webiste plz", got)
}
