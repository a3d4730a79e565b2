package mapping

import (
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	"github.com/fincontrolapp/fincontrol_backend/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:       d.TransactionID,
		Description:         d.Description,
		Amount:              d.Amount,
		Type:                string(d.Type),
		CategoryID:          d.CategoryID,
		DueDate:             d.DueDate,
		PaymentDate:         d.PaymentDate,
		Status:              string(d.Status),
		Recurrence:          string(d.Recurrence),
		NextGenerationDate:  d.NextGenerationDate,
		ParentTransactionID: d.ParentTransactionID,
		PaymentMethod:       d.PaymentMethod,
		Notes:               d.Notes,
		Department:          d.Department,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:       m.TransactionID,
		Description:         m.Description,
		Amount:              m.Amount,
		Type:                domain.TransactionType(m.Type),
		CategoryID:          m.CategoryID,
		DueDate:             m.DueDate,
		PaymentDate:         m.PaymentDate,
		Status:              domain.TransactionStatus(m.Status),
		Recurrence:          domain.Recurrence(m.Recurrence),
		NextGenerationDate:  m.NextGenerationDate,
		ParentTransactionID: m.ParentTransactionID,
		PaymentMethod:       m.PaymentMethod,
		Notes:               m.Notes,
		Department:          m.Department,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
