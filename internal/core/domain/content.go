package domain

// PageContent is an administrator-editable static content block, addressed by
// slug (e.g. "about", "terms"). Read-mostly.
type PageContent struct {
	Slug  string `json:"slug"` // Primary Key
	Title string `json:"title"`
	Body  string `json:"body"`
	AuditFields
}
