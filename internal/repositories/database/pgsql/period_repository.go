package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridianlend/ledger/internal/apperrors"
	"github.com/meridianlend/ledger/internal/core/domain"
	portsrepo "github.com/meridianlend/ledger/internal/core/ports/repositories"
)

type PgxPeriodRepository struct {
	BaseRepository
}

func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepository {
	return &PgxPeriodRepository{BaseRepository: BaseRepository{db: pool, pool: pool}}
}

var _ portsrepo.PeriodRepository = (*PgxPeriodRepository)(nil)

const periodColumns = `period_id, fiscal_year, period_number, start_date, end_date, status,
	created_at, created_by, last_updated_at, last_updated_by`

func scanPeriod(row pgx.Row) (*domain.AccountingPeriod, error) {
	var p domain.AccountingPeriod
	err := row.Scan(
		&p.PeriodID,
		&p.FiscalYear,
		&p.PeriodNumber,
		&p.StartDate,
		&p.EndDate,
		&p.Status,
		&p.CreatedAt,
		&p.CreatedBy,
		&p.LastUpdatedAt,
		&p.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan period row", err)
	}
	return &p, nil
}

// SavePeriods inserts a full fiscal year of periods in one transaction.
func (r *PgxPeriodRepository) SavePeriods(ctx context.Context, periods []domain.AccountingPeriod) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO accounting_periods (
			period_id, fiscal_year, period_number, start_date, end_date, status,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	for _, p := range periods {
		batch.Queue(query,
			p.PeriodID, p.FiscalYear, p.PeriodNumber, p.StartDate, p.EndDate, p.Status,
			p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "fiscal year already has periods", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert accounting periods", err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM accounting_periods WHERE period_id = $1;`
	return scanPeriod(r.db.QueryRow(ctx, query, periodID))
}

func (r *PgxPeriodRepository) FindPeriodForDate(ctx context.Context, date time.Time) (*domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE start_date <= $1::date AND end_date >= $1::date
		LIMIT 1;`
	return scanPeriod(r.db.QueryRow(ctx, query, date))
}

func (r *PgxPeriodRepository) ListPeriodsByYear(ctx context.Context, fiscalYear int) ([]domain.AccountingPeriod, error) {
	query := `SELECT ` + periodColumns + `
		FROM accounting_periods
		WHERE fiscal_year = $1
		ORDER BY period_number;`
	rows, err := r.db.Query(ctx, query, fiscalYear)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list periods", err)
	}
	defer rows.Close()

	periods := []domain.AccountingPeriod{}
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, *period)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating period rows", err)
	}
	return periods, nil
}

func (r *PgxPeriodRepository) CountPeriodsByYear(ctx context.Context, fiscalYear int) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM accounting_periods WHERE fiscal_year = $1;`
	if err := r.db.QueryRow(ctx, query, fiscalYear).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count periods", err)
	}
	return count, nil
}

// UpdatePeriodStatus flips the status guarded by the expected current status.
func (r *PgxPeriodRepository) UpdatePeriodStatus(ctx context.Context, periodID string, from, to domain.PeriodStatus, actorID string, at time.Time) error {
	query := `
		UPDATE accounting_periods
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE period_id = $1 AND status = $2;
	`
	tag, err := r.db.Exec(ctx, query, periodID, from, to, at, actorID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update period status "+periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrConflict
	}
	return nil
}

// ClosePeriod re-checks the unresolved entry count under a row lock before
// flipping the status, so a submit racing the close cannot slip in.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID string, from domain.PeriodStatus, unresolved []domain.EntryStatus, actorID string, at time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status domain.PeriodStatus
	lockQuery := `SELECT status FROM accounting_periods WHERE period_id = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, periodID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to lock period "+periodID, err)
	}
	if status != from {
		return fmt.Errorf("period status is %s: %w", status, apperrors.ErrConflict)
	}

	var pending int
	countQuery := `SELECT COUNT(*) FROM journal_entries WHERE period_id = $1 AND status = ANY($2);`
	if err := tx.QueryRow(ctx, countQuery, periodID, statusStrings(unresolved)).Scan(&pending); err != nil {
		return apperrors.NewAppError(500, "failed to count unresolved entries for period "+periodID, err)
	}
	if pending > 0 {
		return fmt.Errorf("%d unresolved entries: %w", pending, apperrors.ErrConflict)
	}

	updateQuery := `
		UPDATE accounting_periods
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, periodID, domain.PeriodClosed, at, actorID); err != nil {
		return apperrors.NewAppError(500, "failed to close period "+periodID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxPeriodRepository) CountEntriesInStatuses(ctx context.Context, periodID string, statuses []domain.EntryStatus) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM journal_entries WHERE period_id = $1 AND status = ANY($2);`
	if err := r.db.QueryRow(ctx, query, periodID, statusStrings(statuses)).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count entries for period "+periodID, err)
	}
	return count, nil
}

func statusStrings(statuses []domain.EntryStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
