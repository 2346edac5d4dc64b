package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FlintShadey/huddleuptime/internal/caldate"
	availability "github.com/FlintShadey/huddleuptime/internal/pkg/availability/application/domain"
	repository "github.com/FlintShadey/huddleuptime/internal/pkg/availability/persistence/repository/port"
)

const pgUniqueViolation = "23505"

type PgAvailabilityRepository struct {
	pool *pgxpool.Pool
}

func NewPgAvailabilityRepository(pool *pgxpool.Pool) *PgAvailabilityRepository {
	return &PgAvailabilityRepository{pool: pool}
}

var _ repository.AvailabilityRepository = (*PgAvailabilityRepository)(nil)

var errNilPool = errors.New("PgAvailabilityRepository: nil pool")

func (r *PgAvailabilityRepository) ListAll(ctx context.Context) ([]availability.Record, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_name, selected_date, updated_at
		FROM user_availability
		ORDER BY selected_date ASC, user_name ASC
	`)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (r *PgAvailabilityRepository) ListByUser(ctx context.Context, userName string) ([]availability.Record, error) {
	if r == nil || r.pool == nil {
		return nil, errNilPool
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_name, selected_date, updated_at
		FROM user_availability
		WHERE user_name = $1
		ORDER BY selected_date ASC
	`, userName)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

func (r *PgAvailabilityRepository) Insert(ctx context.Context, rec availability.Record) error {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_availability (user_name, selected_date, updated_at)
		VALUES ($1, $2, $3)
	`, rec.UserName, rec.Date.String(), rec.UpdatedAt)
	if isUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	return err
}

func (r *PgAvailabilityRepository) Delete(ctx context.Context, userName string, date caldate.Date) error {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	_, err := r.pool.Exec(ctx, `
		DELETE FROM user_availability
		WHERE user_name = $1 AND selected_date = $2
	`, userName, date.String())
	return err
}

func (r *PgAvailabilityRepository) DeleteByUser(ctx context.Context, userName string) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errNilPool
	}
	ct, err := r.pool.Exec(ctx, `DELETE FROM user_availability WHERE user_name = $1`, userName)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

// ReplaceForUser deletes and re-inserts inside one transaction so readers
// never observe the empty intermediate state.
func (r *PgAvailabilityRepository) ReplaceForUser(ctx context.Context, userName string, records []availability.Record) (err error) {
	if r == nil || r.pool == nil {
		return errNilPool
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM user_availability WHERE user_name = $1`, userName); err != nil {
		return err
	}

	if len(records) > 0 {
		rows := make([][]any, 0, len(records))
		for _, rec := range records {
			if rec.UserName != userName {
				return fmt.Errorf("PgAvailabilityRepository: record for %q in replace of %q", rec.UserName, userName)
			}
			rows = append(rows, []any{rec.UserName, rec.Date.String(), rec.UpdatedAt})
		}
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"user_availability"},
			[]string{"user_name", "selected_date", "updated_at"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			if isUniqueViolation(err) {
				return repository.ErrDuplicate
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PgAvailabilityRepository) DeleteBefore(ctx context.Context, cutoff caldate.Date) (int64, error) {
	if r == nil || r.pool == nil {
		return 0, errNilPool
	}
	// selected_date is canonical YYYY-MM-DD, so text comparison is calendar order.
	ct, err := r.pool.Exec(ctx, `DELETE FROM user_availability WHERE selected_date < $1`, cutoff.String())
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func collectRecords(rows pgx.Rows) ([]availability.Record, error) {
	defer rows.Close()

	records := make([]availability.Record, 0)
	for rows.Next() {
		var (
			rec  availability.Record
			date string
		)
		if err := rows.Scan(&rec.ID, &rec.UserName, &date, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		d, err := caldate.Parse(date)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rec.ID, err)
		}
		rec.Date = d
		records = append(records, rec)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return records, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
