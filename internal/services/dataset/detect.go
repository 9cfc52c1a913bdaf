package dataset

import (
	"strings"

	"github.com/ternarybob/sitesmith/internal/models"
)

// detectRule is one entry in the ordered precedence list. Rules are a
// deliberate precedence list, not a scored classifier: the first matching
// rule wins and ties are broken by rule position.
type detectRule struct {
	name   string
	match  func(text string) bool
	source string
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// contextWords are the business-context words that, combined with a generic
// company/business mention, indicate a company dataset rather than products.
var contextWords = []string{"mission", "about", "team", "industry", "portfolio", "corporate", "firm", "startup"}

// detectRules is the documented precedence order. Reordering these rules
// changes behavior; see the rule-by-rule tests before touching it.
var detectRules = []detectRule{
	{
		name: "movies-keywords",
		match: func(t string) bool {
			return containsAny(t, "movie", "film", "cinema", "blockbuster")
		},
		source: models.CollectionMovies,
	},
	{
		name: "testimonials",
		match: func(t string) bool {
			return containsAny(t, "testimonial", "review", "feedback", "customer stories")
		},
		source: models.CollectionTestimonials,
	},
	{
		name: "actors",
		match: func(t string) bool {
			return containsAny(t, "actor", "actress", "cast member")
		},
		source: models.CollectionActors,
	},
	{
		name: "directors",
		match: func(t string) bool {
			return containsAny(t, "director", "filmmaker")
		},
		source: models.CollectionDirectors,
	},
	{
		name: "explicit-company-website",
		match: func(t string) bool {
			return containsAny(t, "company website", "business website", "corporate website", "company site", "business site")
		},
		source: models.CollectionCompanies,
	},
	{
		name: "company-with-context",
		match: func(t string) bool {
			if !containsAny(t, "company", "companies", "business") {
				return false
			}
			return containsAny(t, contextWords...)
		},
		source: models.CollectionCompanies,
	},
	{
		// Product-vs-company disambiguation: a request that mentions both
		// resolves to products only when catalog language is present,
		// otherwise the company reading wins.
		name: "product-vs-company",
		match: func(t string) bool {
			if !containsAny(t, "product") {
				return false
			}
			if !containsAny(t, "company", "companies", "business") {
				return false
			}
			return containsAny(t, "browse", "catalog", "catalogue", "shop", "buy", "sell")
		},
		source: models.CollectionProducts,
	},
	{
		name: "company-over-product",
		match: func(t string) bool {
			return containsAny(t, "company", "companies", "business") && containsAny(t, "product", "service")
		},
		source: models.CollectionCompanies,
	},
	{
		name: "generic-product-service",
		match: func(t string) bool {
			return containsAny(t, "product", "service", "shop", "store", "item", "catalog")
		},
		source: models.CollectionProducts,
	},
	{
		name: "generic-company",
		match: func(t string) bool {
			return containsAny(t, "company", "companies", "business")
		},
		source: models.CollectionCompanies,
	},
}

// DetectDataSource picks a collection for free text using the ordered
// heuristic keyword matcher. Defaults to "movies" when nothing matches.
func DetectDataSource(freeText string) string {
	text := strings.ToLower(freeText)
	for _, rule := range detectRules {
		if rule.match(text) {
			return rule.source
		}
	}
	return models.CollectionMovies
}
