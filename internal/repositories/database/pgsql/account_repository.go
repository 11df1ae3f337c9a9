package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridianlend/ledger/internal/apperrors"
	"github.com/meridianlend/ledger/internal/core/domain"
	portsrepo "github.com/meridianlend/ledger/internal/core/ports/repositories"
)

type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{db: pool, pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, account_code, name, description, category, normal_side, currency_code,
	parent_account_id, level, status, is_control_account, is_system_account,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var parentID sql.NullString
	err := row.Scan(
		&a.AccountID,
		&a.AccountCode,
		&a.Name,
		&a.Description,
		&a.Category,
		&a.NormalSide,
		&a.CurrencyCode,
		&parentID,
		&a.Level,
		&a.Status,
		&a.IsControlAccount,
		&a.IsSystemAccount,
		&a.CreatedAt,
		&a.CreatedBy,
		&a.LastUpdatedAt,
		&a.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan account row", err)
	}
	if parentID.Valid {
		a.ParentAccountID = parentID.String
	}
	return &a, nil
}

// nullableID maps an empty string to SQL NULL.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO gl_accounts (
			account_id, account_code, name, description, category, normal_side, currency_code,
			parent_account_id, level, status, is_control_account, is_system_account,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.db.Exec(ctx, query,
		account.AccountID,
		account.AccountCode,
		account.Name,
		account.Description,
		account.Category,
		account.NormalSide,
		account.CurrencyCode,
		nullableID(account.ParentAccountID),
		account.Level,
		account.Status,
		account.IsControlAccount,
		account.IsSystemAccount,
		account.CreatedAt,
		account.CreatedBy,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "account code "+account.AccountCode+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert account "+account.AccountID, err)
	}
	return nil
}

func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_accounts WHERE account_id = $1;`
	return scanAccount(r.db.QueryRow(ctx, query, accountID))
}

func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_accounts WHERE account_code = $1;`
	return scanAccount(r.db.QueryRow(ctx, query, accountCode))
}

func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM gl_accounts WHERE account_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by IDs", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM gl_accounts ORDER BY account_code LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account rows", err)
	}
	return accounts, nil
}

func (r *PgxAccountRepository) ListSiblingCodes(ctx context.Context, parentAccountID string, category domain.AccountCategory) ([]string, error) {
	var rows pgx.Rows
	var err error
	if parentAccountID == "" {
		rows, err = r.db.Query(ctx,
			`SELECT account_code FROM gl_accounts WHERE parent_account_id IS NULL AND category = $1;`, category)
	} else {
		rows, err = r.db.Query(ctx,
			`SELECT account_code FROM gl_accounts WHERE parent_account_id = $1;`, parentAccountID)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list sibling codes", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sibling code", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sibling codes", err)
	}
	return codes, nil
}

func (r *PgxAccountRepository) ListDescendantIDs(ctx context.Context, accountID string) ([]string, error) {
	query := `
		WITH RECURSIVE descendants AS (
			SELECT account_id FROM gl_accounts WHERE parent_account_id = $1
			UNION ALL
			SELECT a.account_id
			FROM gl_accounts a
			JOIN descendants d ON a.parent_account_id = d.account_id
		)
		SELECT account_id FROM descendants;
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query descendants of "+accountID, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan descendant ID", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating descendant rows", err)
	}
	return ids, nil
}

func (r *PgxAccountRepository) FindSystemAccount(ctx context.Context, category domain.AccountCategory, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM gl_accounts
		WHERE is_system_account = TRUE AND category = $1 AND name = $2
		LIMIT 1;`
	return scanAccount(r.db.QueryRow(ctx, query, category, name))
}

// UpdateAccount persists the account row and its audit records atomically.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account, audits []domain.AccountAuditRecord) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE gl_accounts
		SET name = $2, description = $3, status = $4, is_control_account = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		account.AccountID,
		account.Name,
		account.Description,
		account.Status,
		account.IsControlAccount,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account "+account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	batch := &pgx.Batch{}
	auditQuery := `
		INSERT INTO gl_account_audit (audit_id, account_id, field_changed, old_value, new_value, changed_by, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, a := range audits {
		batch.Queue(auditQuery, a.AuditID, a.AccountID, a.FieldChanged, a.OldValue, a.NewValue, a.ChangedBy, a.ChangedAt)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewAppError(500, "failed to insert audit records for account "+account.AccountID, err)
		}
	}

	return r.Commit(ctx, tx)
}

func (r *PgxAccountRepository) ListAuditTrail(ctx context.Context, accountID string) ([]domain.AccountAuditRecord, error) {
	query := `
		SELECT audit_id, account_id, field_changed, old_value, new_value, changed_by, changed_at
		FROM gl_account_audit
		WHERE account_id = $1
		ORDER BY changed_at DESC, audit_id;
	`
	rows, err := r.db.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit trail for "+accountID, err)
	}
	defer rows.Close()

	records := []domain.AccountAuditRecord{}
	for rows.Next() {
		var a domain.AccountAuditRecord
		if err := rows.Scan(&a.AuditID, &a.AccountID, &a.FieldChanged, &a.OldValue, &a.NewValue, &a.ChangedBy, &a.ChangedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit record", err)
		}
		records = append(records, a)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit rows", err)
	}
	return records, nil
}

func (r *PgxAccountRepository) HasAnyLines(ctx context.Context, accountID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM journal_entry_lines WHERE account_id = $1);`
	if err := r.db.QueryRow(ctx, query, accountID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check lines for account "+accountID, err)
	}
	return exists, nil
}
