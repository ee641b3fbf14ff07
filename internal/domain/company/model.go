package company

// Company is a tenant. Every card and audit belongs to exactly one.
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListResponse is the gateway's tenant listing, also what the client caches
// for offline dropdowns.
type ListResponse struct {
	Companies []Company `json:"companies"`
}
