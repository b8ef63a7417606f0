// Package repo contains all database access logic for the Loo Map API.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/loo-map/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// LooRepo defines the persistence operations for loo records.
// The service layer depends on this interface, not the concrete Postgres
// implementation, which allows the service to be unit-tested with a mock.
//
// Uniqueness of IDs is enforced by the primary key, not by application-level
// locking: concurrent creates of the same ID are resolved by the database,
// and the losing insert surfaces as domain.ErrConflict.
type LooRepo interface {
	// CreateWithID inserts a new loo under the given (already-validated) ID
	// with contributor as the sole entry of the contributor trail.
	// Returns domain.ErrConflict if a loo with that ID already exists.
	CreateWithID(ctx context.Context, loo domain.Loo, contributor string) (domain.Loo, error)

	// GetByID retrieves a single loo by ID, regardless of its active state.
	// Returns domain.ErrNotFound if no loo with that ID exists.
	GetByID(ctx context.Context, id string) (domain.Loo, error)

	// Replace overwrites every non-identifier attribute of an existing loo
	// and appends contributor to the trail in the same statement, so
	// concurrent replacements never lose a trail entry.
	// Returns domain.ErrNotFound if no loo with that ID exists.
	Replace(ctx context.Context, loo domain.Loo, contributor string) (domain.Loo, error)

	// List returns one page of loos plus the total count for the filter.
	// active=nil lists everything; otherwise only rows matching the flag.
	// Ordered by created_at descending, then ID for a stable tie-break.
	List(ctx context.Context, active *bool, p domain.PaginationParams) ([]domain.Loo, int64, error)

	// ListActive returns every active loo ordered by ID. This is the dump
	// read: the deterministic order is what makes repeated exports of an
	// unchanged data set byte-identical.
	ListActive(ctx context.Context) ([]domain.Loo, error)
}

// pgLooRepo is the Postgres implementation of LooRepo.
type pgLooRepo struct {
	db db
}

// NewLooRepo constructs a LooRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewLooRepo(db db) LooRepo {
	return &pgLooRepo{db: db}
}

// looColumns is the shared column list; keep in sync with scanLoo.
const looColumns = `
	id, name, lat, lng, active,
	accessible, no_payment, all_gender, baby_change, men, women, children,
	urinal_only, automatic, attended, radar_key,
	notes, contributors, created_at, updated_at`

// CreateWithID inserts a new loo row with a single-entry contributor trail.
func (r *pgLooRepo) CreateWithID(ctx context.Context, loo domain.Loo, contributor string) (domain.Loo, error) {
	const q = `
		INSERT INTO loos (
			id, name, lat, lng, active,
			accessible, no_payment, all_gender, baby_change, men, women, children,
			urinal_only, automatic, attended, radar_key,
			notes, contributors
		)
		VALUES (
			@id, @name, @lat, @lng, @active,
			@accessible, @no_payment, @all_gender, @baby_change, @men, @women, @children,
			@urinal_only, @automatic, @attended, @radar_key,
			@notes, ARRAY[@contributor]::text[]
		)
		RETURNING` + looColumns

	args := looArgs(loo)
	args["contributor"] = contributor

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLoo(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Loo{}, fmt.Errorf("repo.LooRepo.CreateWithID: %w", domain.ErrConflict)
		}
		return domain.Loo{}, fmt.Errorf("repo.LooRepo.CreateWithID: %w", err)
	}
	return result, nil
}

// GetByID retrieves a loo by primary key. Inactive records are returned too;
// only listings and the dump filter them out.
func (r *pgLooRepo) GetByID(ctx context.Context, id string) (domain.Loo, error) {
	const q = `SELECT` + looColumns + ` FROM loos WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanLoo(row)
	if err != nil {
		return domain.Loo{}, fmt.Errorf("repo.LooRepo.GetByID: %w", err)
	}
	return result, nil
}

// Replace overwrites all mutable fields and appends to the contributor trail.
// The append happens inside the UPDATE so two concurrent replacements of the
// same loo both land in the trail; there is no read-modify-write window.
func (r *pgLooRepo) Replace(ctx context.Context, loo domain.Loo, contributor string) (domain.Loo, error) {
	const q = `
		UPDATE loos
		SET name         = @name,
		    lat          = @lat,
		    lng          = @lng,
		    active       = @active,
		    accessible   = @accessible,
		    no_payment   = @no_payment,
		    all_gender   = @all_gender,
		    baby_change  = @baby_change,
		    men          = @men,
		    women        = @women,
		    children     = @children,
		    urinal_only  = @urinal_only,
		    automatic    = @automatic,
		    attended     = @attended,
		    radar_key    = @radar_key,
		    notes        = @notes,
		    contributors = array_append(contributors, @contributor),
		    updated_at   = now()
		WHERE id = @id
		RETURNING` + looColumns

	args := looArgs(loo)
	args["contributor"] = contributor

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanLoo(row)
	if err != nil {
		return domain.Loo{}, fmt.Errorf("repo.LooRepo.Replace: %w", err)
	}
	return result, nil
}

// List returns one page of loos matching the tri-state active filter.
// A nil filter compiles to "IS NULL" on the parameter, matching all rows.
func (r *pgLooRepo) List(ctx context.Context, active *bool, p domain.PaginationParams) ([]domain.Loo, int64, error) {
	const countQ = `
		SELECT count(*)
		FROM loos
		WHERE @active::boolean IS NULL OR active = @active`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"active": active}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.LooRepo.List: count: %w", err)
	}

	const q = `
		SELECT` + looColumns + `
		FROM loos
		WHERE @active::boolean IS NULL OR active = @active
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{
		"active": active,
		"limit":  p.Limit,
		"offset": p.Offset(),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.LooRepo.List: %w", err)
	}
	defer rows.Close()

	loos := []domain.Loo{}
	for rows.Next() {
		l, err := scanLoo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.LooRepo.List: scan: %w", err)
		}
		loos = append(loos, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.LooRepo.List: rows: %w", err)
	}

	return loos, total, nil
}

// ListActive returns all active loos ordered by ID.
func (r *pgLooRepo) ListActive(ctx context.Context) ([]domain.Loo, error) {
	const q = `SELECT` + looColumns + ` FROM loos WHERE active ORDER BY id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.LooRepo.ListActive: %w", err)
	}
	defer rows.Close()

	var loos []domain.Loo
	for rows.Next() {
		l, err := scanLoo(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.LooRepo.ListActive: scan: %w", err)
		}
		loos = append(loos, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.LooRepo.ListActive: rows: %w", err)
	}

	return loos, nil
}

// looArgs maps the mutable fields of a loo to named SQL arguments.
// Nil flag pointers become NULL, preserving "unknown" in the database.
func looArgs(loo domain.Loo) pgx.NamedArgs {
	return pgx.NamedArgs{
		"id":          loo.ID,
		"name":        loo.Name,
		"lat":         loo.Location.Lat,
		"lng":         loo.Location.Lng,
		"active":      loo.Active,
		"accessible":  loo.Accessible,
		"no_payment":  loo.NoPayment,
		"all_gender":  loo.AllGender,
		"baby_change": loo.BabyChange,
		"men":         loo.Men,
		"women":       loo.Women,
		"children":    loo.Children,
		"urinal_only": loo.UrinalOnly,
		"automatic":   loo.Automatic,
		"attended":    loo.Attended,
		"radar_key":   loo.RadarKey,
		"notes":       loo.Notes,
	}
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanLoo to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanLoo maps a single database row into a domain.Loo.
// Nullable amenity columns scan into the *bool flag fields directly.
func scanLoo(s scanner) (domain.Loo, error) {
	var l domain.Loo

	err := s.Scan(
		&l.ID, &l.Name, &l.Location.Lat, &l.Location.Lng, &l.Active,
		&l.Accessible, &l.NoPayment, &l.AllGender, &l.BabyChange,
		&l.Men, &l.Women, &l.Children,
		&l.UrinalOnly, &l.Automatic, &l.Attended, &l.RadarKey,
		&l.Notes, &l.Contributors, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Loo{}, domain.ErrNotFound
		}
		return domain.Loo{}, err
	}

	return l, nil
}

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, the conflict signal for duplicate IDs.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
