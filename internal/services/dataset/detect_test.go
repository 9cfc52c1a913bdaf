package dataset

import (
	"testing"
)

func TestDetectDataSource(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"action movies", "show me action movies", "movies"},
		{"film request", "a website about classic films", "movies"},
		{"testimonials", "customer testimonials page", "testimonials"},
		{"reviews", "show reviews from our users", "testimonials"},
		{"actors", "famous actors from the 90s", "actors"},
		{"directors", "award winning directors", "directors"},
		{"explicit company website", "company website with mission and products", "companies"},
		{"business website", "build a business website", "companies"},
		{"company with context word", "a site about our company mission", "companies"},
		{"products with catalog language", "browse products for businesses", "products"},
		{"company beats bare product mention", "company that offers products", "companies"},
		{"generic products", "an online product catalog", "products"},
		{"generic services", "list our services", "products"},
		{"default", "something colorful and fun", "movies"},
		{"movies beat testimonials by position", "movie reviews", "movies"},
		{"case insensitive", "Show Me MOVIES", "movies"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectDataSource(tt.text)
			if got != tt.want {
				t.Errorf("DetectDataSource(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
