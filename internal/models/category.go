package models

// Category mirrors the categories table row shape.
type Category struct {
	CategoryID  string
	Name        string
	Description *string
	ParentID    *string
	AuditFields
}
