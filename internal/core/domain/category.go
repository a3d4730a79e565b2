package domain

// Category groups transactions for reporting. Categories form a one-level
// hierarchy: a category either is a root or points at a root via ParentID.
type Category struct {
	CategoryID  string  `json:"categoryID"` // Primary Key (UUID)
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ParentID    *string `json:"parentID"` // FK -> Category, nullable
	AuditFields
}

// IsRoot reports whether the category is a top-level category.
func (c Category) IsRoot() bool {
	return c.ParentID == nil
}
