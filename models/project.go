package models

// Project types recognized by the API. Anything else in a ?type= filter is
// treated as "no filter".
const (
	ProjectTypeFlagship = "flagship"
	ProjectTypeExisting = "existing"
	ProjectTypeUpcoming = "upcoming"
)

// Project represents one community project card on the site.
type Project struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// IsProjectType reports whether s is one of the recognized project types.
func IsProjectType(s string) bool {
	switch s {
	case ProjectTypeFlagship, ProjectTypeExisting, ProjectTypeUpcoming:
		return true
	}
	return false
}
