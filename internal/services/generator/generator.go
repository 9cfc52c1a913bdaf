// Package generator produces the content of each planned file with one model
// call per file. Prompts are built per file kind and share the same dataset
// sample, palette, and branding so independently generated files fit
// together.
package generator

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
)

const (
	// sampleRecordCap bounds how many records go into a prompt; the full
	// dataset still ships in data.js.
	sampleRecordCap = 50

	sampleStringCap = 200
	sampleArrayCap  = 5
)

// FileRequest carries everything one file generation call needs
type FileRequest struct {
	Request string
	File    models.PlannedFile
	Plan    models.ArchitecturePlan
	Data    []models.DataItem
	Details *models.WebsiteDetails
	Palette Palette
	Model   string
}

// Generator turns planned files into file content
type Generator struct {
	client interfaces.TextClient
	logger arbor.ILogger
}

// NewGenerator creates a generator
func NewGenerator(client interfaces.TextClient, logger arbor.ILogger) *Generator {
	return &Generator{client: client, logger: logger}
}

// GenerateFile produces the content for one planned file. Unlike the intent
// and planning steps this one is load-bearing: an error or empty response
// fails the job, there is no fallback content.
func (g *Generator) GenerateFile(ctx context.Context, req FileRequest) (string, error) {
	system, user := buildPrompts(req)

	resp, err := g.client.GenerateContent(ctx, &interfaces.ContentRequest{
		Model:             req.Model,
		Temperature:       0.4,
		MaxTokens:         8192,
		SystemInstruction: system,
		Messages: []interfaces.Message{
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", req.File.FileName, err)
	}

	content := llm.CleanFences(resp.Text)
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("model returned empty content for %s", req.File.FileName)
	}

	g.logger.Debug().
		Str("file", req.File.FileName).
		Int("bytes", len(content)).
		Str("provider", resp.Provider).
		Msg("File generated")

	return content, nil
}

func buildPrompts(req FileRequest) (system, user string) {
	switch req.File.Kind {
	case models.FileKindScript:
		system = scriptSystemPrompt
	case models.FileKindStyle:
		system = styleSystemPrompt
	default:
		system = pageSystemPrompt
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Website request: %s\n\n", req.Request)
	fmt.Fprintf(&b, "File to produce: %s\nPurpose: %s\n\n", req.File.FileName, req.File.Purpose)

	pages := req.Plan.PageNames()
	fmt.Fprintf(&b, "Site pages (link only to these, never to pages that do not exist): %s\n", strings.Join(pages, ", "))
	fmt.Fprintf(&b, "All plan files: %s\n\n", strings.Join(req.Plan.FileNames(), ", "))

	if !req.Details.IsEmpty() {
		if req.Details.WebsiteName != "" {
			fmt.Fprintf(&b, "Website name: %s\n", req.Details.WebsiteName)
		}
		if req.Details.Tagline != "" {
			fmt.Fprintf(&b, "Tagline: %s\n", req.Details.Tagline)
		}
		if req.Details.Description != "" {
			fmt.Fprintf(&b, "Description: %s\n", req.Details.Description)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Color scheme (%s), use these CSS variables:\n%s\n\n", req.Palette.Name, req.Palette.CSSVariables())

	fmt.Fprintf(&b, "The full dataset is available at runtime as the global `siteData` constant loaded from %s.\n", dataset.DataFileName)
	fmt.Fprintf(&b, "Sample of the data (%d of %d records, long values truncated):\n%s\n", sampleSize(req.Data), len(req.Data), sampleJSON(req.Data))

	return system, b.String()
}

const pageSystemPrompt = `You write complete static HTML pages.
Rules:
- Respond with the raw file content only. No code fences, no commentary.
- The page must be a full standalone HTML document.
- Load data exclusively via <script src="data.js"></script> followed by <script src="app.js"></script>; never inline records into the HTML.
- Link styles.css when the plan includes it.
- Navigation links may only point to pages listed in the prompt.
- Render data client-side from the siteData constant.`

const scriptSystemPrompt = `You write browser JavaScript for static sites.
Rules:
- Respond with the raw file content only. No code fences, no commentary.
- The script reads the global siteData constant defined by data.js; never fetch or embed data.
- Provide the rendering and navigation logic every page of the site shares.
- Implement case-insensitive substring search over the records.
- Implement filters that can be combined with each other and with search.
- Implement a routine that renders every field of a record, whatever fields it has.
- Guard per-page logic by checking for the elements it needs before using them.
- No frameworks, no imports, no build step.`

const styleSystemPrompt = `You write CSS for static sites.
Rules:
- Respond with the raw file content only. No code fences, no commentary.
- Use the CSS variables from the prompt's color scheme.
- Style every page of the site consistently, mobile-first.`

func sampleSize(items []models.DataItem) int {
	if len(items) > sampleRecordCap {
		return sampleRecordCap
	}
	return len(items)
}

// sampleJSON renders a prompt-sized view of the dataset: at most
// sampleRecordCap records, long strings cut to sampleStringCap runes, arrays
// cut to sampleArrayCap elements.
func sampleJSON(items []models.DataItem) string {
	n := sampleSize(items)
	sample := make([]models.DataItem, n)
	for i := 0; i < n; i++ {
		sample[i] = trimItem(items[i])
	}

	payload, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(payload)
}

func trimItem(item models.DataItem) models.DataItem {
	out := make(models.DataItem, len(item))
	for k, v := range item {
		out[k] = trimValue(v)
	}
	return out
}

func trimValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		runes := []rune(val)
		if len(runes) > sampleStringCap {
			return string(runes[:sampleStringCap]) + "..."
		}
		return val
	case []interface{}:
		if len(val) > sampleArrayCap {
			val = val[:sampleArrayCap]
		}
		out := make([]interface{}, len(val))
		for i, el := range val {
			out[i] = trimValue(el)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, el := range val {
			out[k] = trimValue(el)
		}
		return out
	default:
		return v
	}
}
