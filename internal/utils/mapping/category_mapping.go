package mapping

import (
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	"github.com/fincontrolapp/fincontrol_backend/internal/models"
)

// ToModelCategory converts a domain Category to a model Category
func ToModelCategory(d domain.Category) models.Category {
	var description *string
	if d.Description != "" {
		description = &d.Description
	}
	return models.Category{
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		Description: description,
		ParentID:    d.ParentID,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCategory converts a model Category to a domain Category
func ToDomainCategory(m models.Category) domain.Category {
	description := ""
	if m.Description != nil {
		description = *m.Description
	}
	return domain.Category{
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: description,
		ParentID:    m.ParentID,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCategorySlice converts a slice of model Categories to domain Categories
func ToDomainCategorySlice(ms []models.Category) []domain.Category {
	ds := make([]domain.Category, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCategory(m)
	}
	return ds
}
