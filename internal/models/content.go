package models

// PageContent represents a row in the page_contents table.
type PageContent struct {
	Slug  string `db:"slug"`
	Title string `db:"title"`
	Body  string `db:"body"`
	AuditFields
}
