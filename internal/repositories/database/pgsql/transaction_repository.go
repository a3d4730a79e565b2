package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fincontrolapp/fincontrol_backend/internal/apperrors"
	"github.com/fincontrolapp/fincontrol_backend/internal/core/domain"
	portsrepo "github.com/fincontrolapp/fincontrol_backend/internal/core/ports/repositories"
	"github.com/fincontrolapp/fincontrol_backend/internal/models"
	"github.com/fincontrolapp/fincontrol_backend/internal/utils/mapping"
	"github.com/fincontrolapp/fincontrol_backend/internal/utils/pagination"
)

const transactionColumns = `transaction_id, description, amount, type, category_id, due_date, payment_date, status, recurrence, next_generation_date, parent_transaction_id, payment_method, notes, department, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var txn models.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.Description,
		&txn.Amount,
		&txn.Type,
		&txn.CategoryID,
		&txn.DueDate,
		&txn.PaymentDate,
		&txn.Status,
		&txn.Recurrence,
		&txn.NextGenerationDate,
		&txn.ParentTransactionID,
		&txn.PaymentMethod,
		&txn.Notes,
		&txn.Department,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	return txn, err
}

func (r *PgxTransactionRepository) collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []domain.Transaction{}, nil
		}
		return nil, fmt.Errorf("failed to scan transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// SaveTransaction inserts a single new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`

	_, err := r.Pool.Exec(ctx, query, transactionArgs(modelTxn)...)
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", modelTxn.TransactionID, err)
	}
	return nil
}

func transactionArgs(txn models.Transaction) []any {
	return []any{
		txn.TransactionID,
		txn.Description,
		txn.Amount,
		txn.Type,
		txn.CategoryID,
		txn.DueDate,
		txn.PaymentDate,
		txn.Status,
		txn.Recurrence,
		txn.NextGenerationDate,
		txn.ParentTransactionID,
		txn.PaymentMethod,
		txn.Notes,
		txn.Department,
		txn.CreatedAt,
		txn.CreatedBy,
		txn.LastUpdatedAt,
		txn.LastUpdatedBy,
	}
}

// SaveTransactions inserts a batch of transactions inside one database
// transaction. Any failed insert rolls back the whole batch.
func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`

	batch := &pgx.Batch{}
	for _, txn := range txns {
		batch.Queue(query, transactionArgs(mapping.ToModelTransaction(txn))...)
	}

	br := tx.SendBatch(ctx, batch)
	for range txns {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck
			return fmt.Errorf("failed to batch insert transactions: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close transaction batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	modelTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(modelTxn)
	return &domainTxn, nil
}

// ListTransactions retrieves a filtered page ordered by due date descending,
// then creation time descending as tiebreaker. The next page token carries the
// (due_date, created_at) keyset of the last returned row.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != nil {
		conditions = append(conditions, "status = "+arg(string(*filter.Status)))
	}
	if filter.Type != nil {
		conditions = append(conditions, "type = "+arg(string(*filter.Type)))
	}
	if filter.Search != "" {
		conditions = append(conditions, "description ILIKE "+arg("%"+filter.Search+"%"))
	}
	if filter.DueFrom != nil {
		conditions = append(conditions, "due_date >= "+arg(*filter.DueFrom))
	}
	if filter.DueTo != nil {
		conditions = append(conditions, "due_date <= "+arg(*filter.DueTo))
	}

	if nextToken != nil && *nextToken != "" {
		dueDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", apperrors.ErrValidation)
		}
		conditions = append(conditions, fmt.Sprintf("(due_date, created_at) < (%s, %s)", arg(dueDate), arg(createdAt)))
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	// Fetch one extra row to detect whether another page exists.
	query += " ORDER BY due_date DESC, created_at DESC LIMIT " + arg(limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns, err := r.collectTransactions(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		t := pagination.EncodeToken(last.DueDate, last.CreatedAt)
		token = &t
	}

	return txns, token, nil
}

// FindEligibleForRollForward retrieves paid recurring transactions that have
// not generated a successor yet. The partial index on the same predicate keeps
// this cheap as the table grows.
func (r *PgxTransactionRepository) FindEligibleForRollForward(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = 'paid'
		  AND recurrence IN ('monthly', 'quarterly', 'yearly')
		  AND next_generation_date IS NULL
		ORDER BY due_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query eligible transactions: %w", err)
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

// FindPendingInRange retrieves pending transactions due inside [from, to].
func (r *PgxTransactionRepository) FindPendingInRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = 'pending' AND due_date >= $1 AND due_date <= $2
		ORDER BY due_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending transactions: %w", err)
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

// FindPaid retrieves every paid transaction.
func (r *PgxTransactionRepository) FindPaid(ctx context.Context) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE status = 'paid';`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query paid transactions: %w", err)
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

// FindPaidInRange retrieves paid transactions due inside [from, to].
func (r *PgxTransactionRepository) FindPaidInRange(ctx context.Context, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = 'paid' AND due_date >= $1 AND due_date <= $2
		ORDER BY due_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query paid transactions in range: %w", err)
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

// FindByTypeInRange retrieves paid transactions of one type due inside [from, to].
func (r *PgxTransactionRepository) FindByTypeInRange(ctx context.Context, txnType domain.TransactionType, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE status = 'paid' AND type = $1 AND due_date >= $2 AND due_date <= $3
		ORDER BY due_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, string(txnType), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s transactions in range: %w", txnType, err)
	}
	defer rows.Close()

	return r.collectTransactions(rows)
}

// CountPendingInRange counts pending transactions due inside [from, to].
func (r *PgxTransactionRepository) CountPendingInRange(ctx context.Context, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE status = 'pending' AND due_date >= $1 AND due_date <= $2;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending transactions: %w", err)
	}
	return count, nil
}

// CountByCategory counts transactions referencing the given category.
func (r *PgxTransactionRepository) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE category_id = $1;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions for category %s: %w", categoryID, err)
	}
	return count, nil
}

// UpdateTransaction updates the editable fields of a transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET description = $2, amount = $3, type = $4, category_id = $5, due_date = $6,
		    payment_date = $7, status = $8, recurrence = $9, payment_method = $10,
		    notes = $11, department = $12, last_updated_at = $13, last_updated_by = $14
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Description,
		modelTxn.Amount,
		modelTxn.Type,
		modelTxn.CategoryID,
		modelTxn.DueDate,
		modelTxn.PaymentDate,
		modelTxn.Status,
		modelTxn.Recurrence,
		modelTxn.PaymentMethod,
		modelTxn.Notes,
		modelTxn.Department,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", modelTxn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateStatus transitions a transaction's status.
func (r *PgxTransactionRepository) UpdateStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, paymentDate *time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2, payment_date = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, string(status), paymentDate, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetNextGenerationDate marks a parent transaction as rolled forward. The
// predicate only matches while the column is still NULL, so concurrent runs
// cannot both claim the same parent: the loser sees zero rows affected.
func (r *PgxTransactionRepository) SetNextGenerationDate(ctx context.Context, transactionID string, next time.Time, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET next_generation_date = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1 AND next_generation_date IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, next, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set next generation date on transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM transactions WHERE transaction_id = $1)`, transactionID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check transaction %s: %w", transactionID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return apperrors.ErrDuplicate
	}
	return nil
}

// DeleteTransaction removes a transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
