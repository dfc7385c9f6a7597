package models

// Highlight represents one image in the homepage gallery. Order determines
// the display sequence; ties are broken by title.
type Highlight struct {
	ID    string `json:"id"`
	Src   string `json:"src"`
	Title string `json:"title"`
	Order int    `json:"order"`
}
