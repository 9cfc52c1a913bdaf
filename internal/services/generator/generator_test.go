package generator

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ternarybob/sitesmith/internal/common"
	"github.com/ternarybob/sitesmith/internal/interfaces"
	"github.com/ternarybob/sitesmith/internal/models"
)

type stubClient struct {
	text    string
	err     error
	lastReq *interfaces.ContentRequest
}

func (s *stubClient) GenerateContent(ctx context.Context, req *interfaces.ContentRequest) (*interfaces.ContentResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return &interfaces.ContentResponse{Text: s.text, Provider: "stub", Model: req.Model}, nil
}

func (s *stubClient) Close() error { return nil }

func pageRequest(data []models.DataItem) FileRequest {
	return FileRequest{
		Request: "show me action movies",
		File:    models.PlannedFile{FileName: "index.html", Purpose: "Landing page", Kind: models.FileKindPage},
		Plan: models.ArchitecturePlan{Files: []models.PlannedFile{
			{FileName: "index.html", Kind: models.FileKindPage},
			{FileName: "browse.html", Kind: models.FileKindPage},
			{FileName: "app.js", Kind: models.FileKindScript},
		}},
		Data:    data,
		Details: &models.WebsiteDetails{WebsiteName: "CineVault"},
		Palette: ChoosePalette("show me action movies"),
		Model:   "gemini-2.0-flash",
	}
}

func TestGenerateFile_StripsFences(t *testing.T) {
	client := &stubClient{text: "```html\n<!DOCTYPE html><html></html>\n```"}
	g := NewGenerator(client, common.GetLogger())

	content, err := g.GenerateFile(context.Background(), pageRequest(nil))
	require.NoError(t, err)
	assert.Equal(t, "<!DOCTYPE html><html></html>", content)
}

func TestGenerateFile_EmptyResponseIsFatal(t *testing.T) {
	g := NewGenerator(&stubClient{text: "   \n"}, common.GetLogger())

	_, err := g.GenerateFile(context.Background(), pageRequest(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index.html")
}

func TestGenerateFile_ErrorPropagates(t *testing.T) {
	g := NewGenerator(&stubClient{err: errors.New("provider down")}, common.GetLogger())

	_, err := g.GenerateFile(context.Background(), pageRequest(nil))
	assert.Error(t, err)
}

func TestGenerateFile_PromptCarriesContext(t *testing.T) {
	client := &stubClient{text: "<!DOCTYPE html>"}
	g := NewGenerator(client, common.GetLogger())

	data := []models.DataItem{{"title": "Heat", "year": float64(1995)}}
	_, err := g.GenerateFile(context.Background(), pageRequest(data))
	require.NoError(t, err)

	require.NotNil(t, client.lastReq)
	prompt := client.lastReq.Messages[0].Content
	assert.Contains(t, prompt, "index.html, browse.html", "nav must be constrained to planned pages")
	assert.Contains(t, prompt, "CineVault")
	assert.Contains(t, prompt, "--color-primary")
	assert.Contains(t, prompt, "Heat")
}

func TestSampleJSON_TrimsLongValues(t *testing.T) {
	long := strings.Repeat("x", 300)
	arr := []interface{}{1, 2, 3, 4, 5, 6, 7}
	items := []models.DataItem{{"summary": long, "tags": arr}}

	out := sampleJSON(items)

	assert.Contains(t, out, strings.Repeat("x", 200)+"...")
	assert.NotContains(t, out, strings.Repeat("x", 201))
	assert.NotContains(t, out, "7", "arrays must be cut to five elements")
}

func TestSampleJSON_CapsRecordCount(t *testing.T) {
	items := make([]models.DataItem, 80)
	for i := range items {
		items[i] = models.DataItem{"n": float64(i)}
	}

	assert.Equal(t, 50, sampleSize(items))
	out := sampleJSON(items)
	assert.NotContains(t, out, `"n": 51`)
}

func TestChoosePalette(t *testing.T) {
	assert.Equal(t, "cinema dark", ChoosePalette("a site about classic films").Name)
	assert.Equal(t, "corporate blue", ChoosePalette("professional company website").Name)
	assert.Equal(t, "neutral", ChoosePalette("testimonials from happy users").Name)
}
