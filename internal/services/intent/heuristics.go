package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ternarybob/sitesmith/internal/models"
	"github.com/ternarybob/sitesmith/internal/services/dataset"
)

var yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// knownGenres is the fixed vocabulary scanned for genre filters. Matching is
// whole-word so "dramatic" does not read as "drama".
var knownGenres = []string{
	"action", "comedy", "drama", "horror", "thriller", "romance",
	"sci-fi", "science fiction", "fantasy", "animation", "documentary",
	"crime", "adventure", "mystery", "western", "musical",
}

// locationPattern captures a capitalized place name after a location
// preposition, e.g. "companies in Sydney" or "actors from New York".
var locationPattern = regexp.MustCompile(`\b(?:in|from|located in|based in|at)\s+([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+)?)`)

// knownCities backstops the preposition scan for lowercased request text
var knownCities = []string{
	"sydney", "melbourne", "london", "paris", "berlin", "tokyo",
	"new york", "los angeles", "san francisco", "chicago", "seattle",
	"toronto", "singapore", "mumbai", "dubai",
}

// HeuristicAnalysis derives an IntentAnalysis from the request text alone,
// with no model involved. Used when the analyzer's model call fails or its
// output does not parse.
func HeuristicAnalysis(text string) models.IntentAnalysis {
	source := dataset.DetectDataSource(text)
	filters := make(map[string]interface{})

	switch source {
	case models.CollectionMovies:
		if year, ok := extractYear(text); ok {
			filters["year"] = year
		}
		if genre := extractGenre(text); genre != "" {
			filters["genre"] = genre
		}
	case models.CollectionCompanies, models.CollectionActors, models.CollectionDirectors:
		if loc := ExtractLocation(text); loc != "" {
			filters["location"] = loc
		}
	}

	return models.IntentAnalysis{
		DataSource: source,
		Filters:    filters,
		Limit:      dataset.DefaultLimit,
	}
}

// extractYear returns the first four-digit year in the text as an integer,
// matching the type the model path produces for numeric filters.
func extractYear(text string) (int, bool) {
	m := yearPattern.FindString(text)
	if m == "" {
		return 0, false
	}
	year, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return year, true
}

func extractGenre(text string) string {
	lower := strings.ToLower(text)
	for _, genre := range knownGenres {
		if containsWord(lower, genre) {
			return genre
		}
	}
	return ""
}

// ExtractLocation pulls a place name out of the request text, preferring a
// preposition-anchored capitalized phrase over the city list. Returns "" when
// nothing location-like is present.
func ExtractLocation(text string) string {
	if m := locationPattern.FindStringSubmatch(text); len(m) > 1 {
		return m[1]
	}
	lower := strings.ToLower(text)
	for _, city := range knownCities {
		if strings.Contains(lower, city) {
			return city
		}
	}
	return ""
}

func containsWord(lower, word string) bool {
	idx := strings.Index(lower, word)
	for idx != -1 {
		before := idx == 0 || !isWordByte(lower[idx-1])
		afterIdx := idx + len(word)
		after := afterIdx >= len(lower) || !isWordByte(lower[afterIdx])
		if before && after {
			return true
		}
		next := strings.Index(lower[idx+1:], word)
		if next == -1 {
			return false
		}
		idx = idx + 1 + next
	}
	return false
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
