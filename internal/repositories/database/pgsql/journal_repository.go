package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/meridianlend/ledger/internal/apperrors"
	"github.com/meridianlend/ledger/internal/core/domain"
	portsrepo "github.com/meridianlend/ledger/internal/core/ports/repositories"
	"github.com/meridianlend/ledger/internal/utils/pagination"
)

type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{db: pool, pool: pool}}
}

var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

// postedStatuses are the entry states whose lines count as ledger fact. A
// Reversed entry was posted; its lines stay in the totals and the reversing
// entry's mirror lines offset them.
var postedStatuses = []string{string(domain.EntryPosted), string(domain.EntryReversed)}

// WithTx runs fn with a repository bound to a single transaction.
func (r *PgxJournalRepository) WithTx(ctx context.Context, fn func(txRepo portsrepo.JournalRepository) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	txRepo := &PgxJournalRepository{BaseRepository: BaseRepository{db: tx}}
	if err := fn(txRepo); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

const entryColumns = `entry_id, entry_number, status, source_type, source_reference, period_id,
	effective_date, currency_code, exchange_rate, description, narrative,
	submitted_at, approved_at, approved_by, posted_at, rejected_at, rejected_reason, reversed_at,
	reversal_of_entry_id, reversed_by_entry_id,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var e domain.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.EntryNumber,
		&e.Status,
		&e.SourceType,
		&e.SourceReference,
		&e.PeriodID,
		&e.EffectiveDate,
		&e.CurrencyCode,
		&e.ExchangeRate,
		&e.Description,
		&e.Narrative,
		&e.SubmittedAt,
		&e.ApprovedAt,
		&e.ApprovedBy,
		&e.PostedAt,
		&e.RejectedAt,
		&e.RejectedReason,
		&e.ReversedAt,
		&e.ReversalOfEntryID,
		&e.ReversedByEntryID,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
	}
	return &e, nil
}

// SaveEntry inserts the entry and its lines atomically, allocating the entry
// number from the database sequence. On a tx-bound repository it joins the
// surrounding transaction.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) (int64, error) {
	if r.pool == nil {
		return r.saveEntry(ctx, r.db, entry, lines)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer r.Rollback(ctx, tx)

	entryNumber, err := r.saveEntry(ctx, tx, entry, lines)
	if err != nil {
		return 0, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return entryNumber, nil
}

func (r *PgxJournalRepository) saveEntry(ctx context.Context, db DBTX, entry domain.JournalEntry, lines []domain.JournalLine) (int64, error) {
	var entryNumber int64
	if err := db.QueryRow(ctx, `SELECT nextval('journal_entry_number_seq');`).Scan(&entryNumber); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate entry number", err)
	}

	entryQuery := `
		INSERT INTO journal_entries (
			entry_id, entry_number, status, source_type, source_reference, period_id,
			effective_date, currency_code, exchange_rate, description, narrative,
			reversal_of_entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := db.Exec(ctx, entryQuery,
		entry.EntryID,
		entryNumber,
		entry.Status,
		entry.SourceType,
		entry.SourceReference,
		entry.PeriodID,
		entry.EffectiveDate,
		entry.CurrencyCode,
		entry.ExchangeRate,
		entry.Description,
		entry.Narrative,
		entry.ReversalOfEntryID,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert journal entry "+entry.EntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (
			line_id, entry_id, account_id, debit, credit, description, loan_reference,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, l := range lines {
		batch.Queue(lineQuery,
			l.LineID, l.EntryID, l.AccountID, l.Debit, l.Credit, l.Description, l.LoanReference,
			l.CreatedAt, l.CreatedBy, l.LastUpdatedAt, l.LastUpdatedBy,
		)
	}
	if err := db.SendBatch(ctx, batch).Close(); err != nil {
		return 0, apperrors.NewAppError(500, "failed to insert lines for entry "+entry.EntryID, err)
	}
	return entryNumber, nil
}

func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	return scanEntry(r.db.QueryRow(ctx, query, entryID))
}

// FindEntryByIDForUpdate row-locks the entry. Only meaningful inside WithTx.
func (r *PgxJournalRepository) FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`
	return scanEntry(r.db.QueryRow(ctx, query, entryID))
}

func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_id, debit, credit, description, loan_reference,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.db.Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for entry "+entryID, err)
	}
	defer rows.Close()

	lines := []domain.JournalLine{}
	for rows.Next() {
		var l domain.JournalLine
		if err := rows.Scan(
			&l.LineID, &l.EntryID, &l.AccountID, &l.Debit, &l.Credit, &l.Description, &l.LoanReference,
			&l.CreatedAt, &l.CreatedBy, &l.LastUpdatedAt, &l.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}
	return lines, nil
}

func (r *PgxJournalRepository) FindPeriodStatus(ctx context.Context, periodID string) (domain.PeriodStatus, error) {
	var status domain.PeriodStatus
	query := `SELECT status FROM accounting_periods WHERE period_id = $1;`
	if err := r.db.QueryRow(ctx, query, periodID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", apperrors.NewAppError(500, "failed to find period status "+periodID, err)
	}
	return status, nil
}

func (r *PgxJournalRepository) FindAccountStatuses(ctx context.Context, accountIDs []string) (map[string]domain.AccountStatus, error) {
	query := `SELECT account_id, status FROM gl_accounts WHERE account_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query account statuses", err)
	}
	defer rows.Close()

	statuses := make(map[string]domain.AccountStatus, len(accountIDs))
	for rows.Next() {
		var id string
		var status domain.AccountStatus
		if err := rows.Scan(&id, &status); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account status", err)
		}
		statuses[id] = status
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account status rows", err)
	}
	return statuses, nil
}

// UpdateEntryStatus flips the status guarded by the expected current status and
// stamps the transition timestamp matching the target state.
func (r *PgxJournalRepository) UpdateEntryStatus(ctx context.Context, params portsrepo.UpdateEntryStatusParams) error {
	var query string
	args := []any{params.EntryID, params.From, params.To, params.At, params.ActorID}
	switch params.To {
	case domain.EntryPendingApproval:
		query = `UPDATE journal_entries
			SET status = $3, submitted_at = $4, last_updated_at = $4, last_updated_by = $5
			WHERE entry_id = $1 AND status = $2;`
	case domain.EntryApproved:
		query = `UPDATE journal_entries
			SET status = $3, approved_at = $4, approved_by = $5, last_updated_at = $4, last_updated_by = $5
			WHERE entry_id = $1 AND status = $2;`
	case domain.EntryPosted:
		query = `UPDATE journal_entries
			SET status = $3, posted_at = $4, last_updated_at = $4, last_updated_by = $5
			WHERE entry_id = $1 AND status = $2;`
	case domain.EntryRejected:
		query = `UPDATE journal_entries
			SET status = $3, rejected_at = $4, rejected_reason = $6, last_updated_at = $4, last_updated_by = $5
			WHERE entry_id = $1 AND status = $2;`
		args = append(args, params.RejectedReason)
	case domain.EntryReversed:
		query = `UPDATE journal_entries
			SET status = $3, reversed_at = $4, last_updated_at = $4, last_updated_by = $5
			WHERE entry_id = $1 AND status = $2;`
	default:
		return apperrors.NewAppError(500, "unsupported entry status target "+string(params.To), nil)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update entry status "+params.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// SetReversalLinks marks the original Reversed and wires the mutual back-references.
func (r *PgxJournalRepository) SetReversalLinks(ctx context.Context, originalEntryID, reversingEntryID, actorID string, at time.Time) error {
	originalQuery := `
		UPDATE journal_entries
		SET status = $4, reversed_at = $3, reversed_by_entry_id = $2, last_updated_at = $3, last_updated_by = $5
		WHERE entry_id = $1 AND status = $6 AND reversed_by_entry_id IS NULL;
	`
	tag, err := r.db.Exec(ctx, originalQuery,
		originalEntryID, reversingEntryID, at, domain.EntryReversed, actorID, domain.EntryPosted)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark entry reversed "+originalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}

	reversingQuery := `
		UPDATE journal_entries
		SET reversal_of_entry_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1;
	`
	if _, err := r.db.Exec(ctx, reversingQuery, reversingEntryID, originalEntryID, at, actorID); err != nil {
		return apperrors.NewAppError(500, "failed to link reversing entry "+reversingEntryID, err)
	}
	return nil
}

// ListEntries pages newest-first on (effective_date, created_at) keyset.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, query portsrepo.ListEntriesQuery) ([]domain.JournalEntry, *string, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	sql := `SELECT ` + entryColumns + ` FROM journal_entries WHERE 1=1`
	args := []any{}
	argN := 1
	addArg := func(clause string, value any) {
		sql += fmt.Sprintf(clause, argN)
		args = append(args, value)
		argN++
	}

	if query.PeriodID != "" {
		addArg(" AND period_id = $%d", query.PeriodID)
	}
	if query.Status != "" {
		addArg(" AND status = $%d", query.Status)
	}
	if query.SourceType != "" {
		addArg(" AND source_type = $%d", query.SourceType)
	}
	if query.NextToken != nil && *query.NextToken != "" {
		effectiveDate, createdAt, err := pagination.DecodeToken(*query.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		sql += fmt.Sprintf(" AND (effective_date, created_at) < ($%d, $%d)", argN, argN+1)
		args = append(args, effectiveDate, createdAt)
		argN += 2
	}
	sql += fmt.Sprintf(" ORDER BY effective_date DESC, created_at DESC LIMIT $%d;", argN)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating entry rows", err)
	}

	var nextToken *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeToken(last.EffectiveDate, last.CreatedAt)
		nextToken = &token
	}
	return entries, nextToken, nil
}

// ListLinesByAccountID pages an account's statement newest-first by the owning
// entry's effective date.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	sql := `
		SELECT l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.description, l.loan_reference,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by,
		       e.effective_date
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = $1`
	args := []any{accountID}
	argN := 2

	if nextToken != nil && *nextToken != "" {
		effectiveDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		sql += fmt.Sprintf(" AND (e.effective_date, l.created_at) < ($%d, $%d)", argN, argN+1)
		args = append(args, effectiveDate, createdAt)
		argN += 2
	}
	sql += fmt.Sprintf(" ORDER BY e.effective_date DESC, l.created_at DESC LIMIT $%d;", argN)
	args = append(args, limit+1)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list lines for account "+accountID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line          domain.JournalLine
		effectiveDate time.Time
	}
	scanned := []lineWithDate{}
	for rows.Next() {
		var lw lineWithDate
		if err := rows.Scan(
			&lw.line.LineID, &lw.line.EntryID, &lw.line.AccountID, &lw.line.Debit, &lw.line.Credit,
			&lw.line.Description, &lw.line.LoanReference,
			&lw.line.CreatedAt, &lw.line.CreatedBy, &lw.line.LastUpdatedAt, &lw.line.LastUpdatedBy,
			&lw.effectiveDate,
		); err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal line", err)
		}
		scanned = append(scanned, lw)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating line rows", err)
	}

	var token *string
	if len(scanned) > limit {
		scanned = scanned[:limit]
		last := scanned[limit-1]
		t := pagination.EncodeToken(last.effectiveDate, last.line.CreatedAt)
		token = &t
	}
	lines := make([]domain.JournalLine, len(scanned))
	for i, lw := range scanned {
		lines[i] = lw.line
	}
	return lines, token, nil
}

// SumPostedLines aggregates debit/credit totals over lines whose entries are
// ledger fact.
func (r *PgxJournalRepository) SumPostedLines(ctx context.Context, query portsrepo.BalanceQuery) (decimal.Decimal, decimal.Decimal, error) {
	sql := `
		SELECT COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_id = ANY($1) AND e.status = ANY($2)`
	args := []any{query.AccountIDs, postedStatuses}
	argN := 3

	if query.AsOf != nil {
		sql += fmt.Sprintf(" AND e.effective_date <= $%d", argN)
		args = append(args, *query.AsOf)
		argN++
	}
	if query.PeriodID != "" {
		sql += fmt.Sprintf(" AND e.period_id = $%d", argN)
		args = append(args, query.PeriodID)
	}
	sql += ";"

	var debitTotal, creditTotal decimal.Decimal
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&debitTotal, &creditTotal); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum posted lines", err)
	}
	return debitTotal, creditTotal, nil
}

// AccountTotalsForYear aggregates posted totals per account over a fiscal year,
// restricted to the given categories.
func (r *PgxJournalRepository) AccountTotalsForYear(ctx context.Context, fiscalYear int, categories []domain.AccountCategory) ([]portsrepo.AccountTotals, error) {
	categoryStrings := make([]string, len(categories))
	for i, c := range categories {
		categoryStrings[i] = string(c)
	}
	query := `
		SELECT a.account_id, a.account_code, a.name, a.category,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounting_periods p ON p.period_id = e.period_id
		JOIN gl_accounts a ON a.account_id = l.account_id
		WHERE e.status = ANY($1) AND p.fiscal_year = $2 AND a.category = ANY($3)
		GROUP BY a.account_id, a.account_code, a.name, a.category
		ORDER BY a.account_code;
	`
	return r.queryAccountTotals(ctx, query, postedStatuses, fiscalYear, categoryStrings)
}

// TrialBalance aggregates posted totals for every account with activity.
func (r *PgxJournalRepository) TrialBalance(ctx context.Context, asOf *time.Time) ([]portsrepo.AccountTotals, error) {
	query := `
		SELECT a.account_id, a.account_code, a.name, a.category,
		       COALESCE(SUM(l.debit), 0), COALESCE(SUM(l.credit), 0)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN gl_accounts a ON a.account_id = l.account_id
		WHERE e.status = ANY($1) AND ($2::timestamptz IS NULL OR e.effective_date <= $2)
		GROUP BY a.account_id, a.account_code, a.name, a.category
		ORDER BY a.account_code;
	`
	return r.queryAccountTotals(ctx, query, postedStatuses, asOf)
}

func (r *PgxJournalRepository) queryAccountTotals(ctx context.Context, query string, args ...any) ([]portsrepo.AccountTotals, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to aggregate account totals", err)
	}
	defer rows.Close()

	totals := []portsrepo.AccountTotals{}
	for rows.Next() {
		var t portsrepo.AccountTotals
		if err := rows.Scan(&t.AccountID, &t.AccountCode, &t.Name, &t.Category, &t.DebitTotal, &t.CreditTotal); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account totals row", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating account totals rows", err)
	}
	return totals, nil
}
