package models

// Collection names for the six known datasets. DataSource values outside
// this set are replaced by the heuristic detector's choice.
const (
	CollectionMovies       = "movies"
	CollectionCompanies    = "companies"
	CollectionProducts     = "products"
	CollectionTestimonials = "testimonials"
	CollectionActors       = "actors"
	CollectionDirectors    = "directors"
)

// KnownCollections lists every valid data source in a fixed order.
func KnownCollections() []string {
	return []string{
		CollectionMovies,
		CollectionCompanies,
		CollectionProducts,
		CollectionTestimonials,
		CollectionActors,
		CollectionDirectors,
	}
}

// IsKnownCollection reports whether name is one of the six known collections.
func IsKnownCollection(name string) bool {
	for _, c := range KnownCollections() {
		if c == name {
			return true
		}
	}
	return false
}

// IntentAnalysis is the structured reading of a user request.
// Derived once per job and immutable after the correction policy has run;
// it feeds both the dataset filter and the architecture planner.
type IntentAnalysis struct {
	DataSource string                 `json:"dataSource"`
	Filters    map[string]interface{} `json:"filters"`
	Limit      int                    `json:"limit"`
}

// WebsiteDetails carries optional branding threaded through every file
// generation call. Empty fields are unset; defaults are applied at point of
// use, never stored here.
type WebsiteDetails struct {
	WebsiteName string `json:"websiteName,omitempty"`
	Tagline     string `json:"tagline,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsEmpty returns true when no branding field is set.
func (d *WebsiteDetails) IsEmpty() bool {
	return d == nil || (d.WebsiteName == "" && d.Tagline == "" && d.Description == "")
}
