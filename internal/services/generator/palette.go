package generator

import "strings"

// Palette is a named color scheme threaded into every generation prompt so
// pages produced by separate model calls stay visually consistent.
type Palette struct {
	Name    string
	Primary string
	Accent  string
	Surface string
	Text    string
}

type paletteRule struct {
	keywords []string
	palette  Palette
}

var paletteRules = []paletteRule{
	{
		keywords: []string{"movie", "film", "cinema", "noir"},
		palette:  Palette{Name: "cinema dark", Primary: "#1a1a2e", Accent: "#e94560", Surface: "#16213e", Text: "#eaeaea"},
	},
	{
		keywords: []string{"corporate", "company", "business", "professional"},
		palette:  Palette{Name: "corporate blue", Primary: "#0b3d91", Accent: "#2e86de", Surface: "#f5f7fa", Text: "#1f2933"},
	},
	{
		keywords: []string{"product", "shop", "store", "catalog"},
		palette:  Palette{Name: "retail warm", Primary: "#b23a48", Accent: "#f0a202", Surface: "#fff8f0", Text: "#2b2118"},
	},
	{
		keywords: []string{"fun", "playful", "colorful", "kids"},
		palette:  Palette{Name: "playful", Primary: "#6c5ce7", Accent: "#fd79a8", Surface: "#ffeaa7", Text: "#2d3436"},
	},
	{
		keywords: []string{"minimal", "clean", "simple"},
		palette:  Palette{Name: "minimal", Primary: "#222222", Accent: "#555555", Surface: "#ffffff", Text: "#111111"},
	},
}

// neutralPalette is used when no keyword matches
var neutralPalette = Palette{Name: "neutral", Primary: "#2c3e50", Accent: "#18bc9c", Surface: "#f8f9fa", Text: "#212529"}

// ChoosePalette picks a color scheme for the request, defaulting to a
// neutral scheme.
func ChoosePalette(request string) Palette {
	lower := strings.ToLower(request)
	for _, rule := range paletteRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.palette
			}
		}
	}
	return neutralPalette
}

// CSSVariables renders the palette as a CSS custom property block for
// inclusion in prompts.
func (p Palette) CSSVariables() string {
	var b strings.Builder
	b.WriteString(":root {\n")
	b.WriteString("  --color-primary: " + p.Primary + ";\n")
	b.WriteString("  --color-accent: " + p.Accent + ";\n")
	b.WriteString("  --color-surface: " + p.Surface + ";\n")
	b.WriteString("  --color-text: " + p.Text + ";\n")
	b.WriteString("}")
	return b.String()
}
