package models

import "fmt"

// Module is a row of the platform module registry. The registry is maintained
// by the host platform installer; this service only reads it.
type Module struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	ShortDesc   string `json:"shortdesc"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Summary     string `json:"summary"`
	State       string `json:"state"`
	Application bool   `json:"application"`
}

const (
	ModuleStateInstalled = "installed"
	DefaultModuleIcon    = "/web/static/img/icons/default_module.png"
)

// ModuleSummary is the landing-page projection of a registry row, including
// the deep link to the module's admin form.
type ModuleSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortDesc string `json:"shortdesc"`
	Icon      string `json:"icon"`
	Category  string `json:"category"`
	Summary   string `json:"summary"`
	URL       string `json:"url"`
}

// Summarize fills the projection, substituting defaults for empty
// presentation fields.
func (m Module) Summarize() ModuleSummary {
	s := ModuleSummary{
		ID:        m.ID,
		Name:      m.Name,
		ShortDesc: m.ShortDesc,
		Icon:      m.Icon,
		Category:  m.Category,
		Summary:   m.Summary,
		URL:       fmt.Sprintf("/web#action=modules&id=%d&view_type=form", m.ID),
	}
	if s.ShortDesc == "" {
		s.ShortDesc = m.Name
	}
	if s.Icon == "" {
		s.Icon = DefaultModuleIcon
	}
	if s.Category == "" {
		s.Category = "Uncategorized"
	}
	return s
}
