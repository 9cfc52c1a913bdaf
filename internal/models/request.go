package models

// GenerateRequest is the payload accepted by the generation front door.
// Branding fields are optional; Model selects the AI backend per request
// (empty uses the configured default provider).
type GenerateRequest struct {
	Intent      string `json:"intent" validate:"required,min=3"`
	WebsiteName string `json:"websiteName,omitempty"`
	Tagline     string `json:"tagline,omitempty"`
	Description string `json:"description,omitempty"`
	Model       string `json:"model,omitempty"`
}

// Branding returns the request's explicit branding, or nil when none was
// supplied (the pipeline will extract branding from the intent instead).
func (r *GenerateRequest) Branding() *WebsiteDetails {
	d := &WebsiteDetails{
		WebsiteName: r.WebsiteName,
		Tagline:     r.Tagline,
		Description: r.Description,
	}
	if d.IsEmpty() {
		return nil
	}
	return d
}

// AddPageRequest asks for one additional page to be generated into an
// existing job's output directory after the fact.
type AddPageRequest struct {
	PageName string `json:"pageName" validate:"required"`
	Purpose  string `json:"purpose" validate:"required"`
}
