package http

// CreateLeadRequest is the POST /leads body.
type CreateLeadRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory,omitempty"`
	Budget      float64 `json:"budget"`
	Location    string  `json:"location"`
}
