package models

// Meta is the status block the controller attaches to every response.
type Meta struct {
	RC  string `json:"rc"`
	Msg string `json:"msg,omitempty"`
}

// --- Site Models ---

// SiteListResponse wraps GET /api/self/sites
type SiteListResponse struct {
	Meta Meta   `json:"meta"`
	Data []Site `json:"data"`
}

// Site is one controller site. Name is the short identifier used in
// /api/s/{name}/... paths, Desc is the human label shown in the UI.
type Site struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Desc string `json:"desc,omitempty"`
	Role string `json:"role,omitempty"`
}
