// Package store persists Euler deconvolution runs in SQLite.
//
// Unsolved estimates are stored as NULL values and read back as NaN.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/cwbudde/algo-euler/field/grid"
	"github.com/cwbudde/algo-euler/inversion/euler"
)

// schema.sql creates the runs and estimates tables.
//
//go:embed schema.sql
var schemaSQL string

// Store errors.
var (
	ErrNotFound   = errors.New("store: run not found")
	ErrUnknownSet = errors.New("store: unknown estimate set")
)

// Set names an estimate set of a run.
type Set string

// Estimate sets.
const (
	Classic Set = "classic"
	Plateau Set = "plateau"
)

func (s Set) valid() bool {
	return s == Classic || s == Plateau
}

// Run describes one stored deconvolution.
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Label     string
	Params    euler.Params
	Ranking   euler.Ranking
	Shape     grid.Shape
	Solved    int
	Unsolved  int
}

// Store wraps a SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores a result with both estimate sets in one transaction and
// returns the new run record.
func (s *Store) SaveRun(ctx context.Context, label string, ranking euler.Ranking, res *euler.Result) (Run, error) {
	if res == nil {
		return Run{}, errors.New("store: nil result")
	}

	run := Run{
		ID:        uuid.New(),
		CreatedAt: s.now().UTC(),
		Label:     label,
		Params:    res.Params,
		Ranking:   ranking,
		Shape:     res.Shape,
		Solved:    res.Solved(),
		Unsolved:  res.Unsolved,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, label, structural_index, window_size, filter,
			ranking, rows, cols, solved, unsolved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), run.CreatedAt.Format(time.RFC3339Nano), run.Label,
		run.Params.StructuralIndex, run.Params.WindowSize, run.Params.Filter,
		run.Ranking.String(), run.Shape.Rows, run.Shape.Cols, run.Solved, run.Unsolved)
	if err != nil {
		return Run{}, fmt.Errorf("store: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO estimates (run_id, kind, idx, x, y, z, b, solved)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return Run{}, fmt.Errorf("store: prepare estimates: %w", err)
	}
	defer stmt.Close()

	for _, set := range []struct {
		kind Set
		rows []euler.Estimate
	}{
		{Classic, res.Classic},
		{Plateau, res.Plateau},
	} {
		for i, e := range set.rows {
			_, err := stmt.ExecContext(ctx, run.ID.String(), string(set.kind), i,
				nullable(e.X), nullable(e.Y), nullable(e.Z), nullable(e.Base), e.Solved)
			if err != nil {
				return Run{}, fmt.Errorf("store: insert %s estimate %d: %w", set.kind, i, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("store: commit: %w", err)
	}

	return run, nil
}

// GetRun returns the run with the given id.
func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (Run, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id.String())

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return run, err
}

// ListRuns returns all runs, oldest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRuns+` ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("store: list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// LoadEstimates returns one estimate set of a run in its stored order.
func (s *Store) LoadEstimates(ctx context.Context, id uuid.UUID, set Set) ([]euler.Estimate, error) {
	if !set.valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSet, set)
	}

	if _, err := s.GetRun(ctx, id); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT x, y, z, b, solved FROM estimates
		WHERE run_id = ? AND kind = ?
		ORDER BY idx`, id.String(), string(set))
	if err != nil {
		return nil, fmt.Errorf("store: load %s: %w", set, err)
	}
	defer rows.Close()

	var out []euler.Estimate
	for rows.Next() {
		var (
			x, y, z, b sql.NullFloat64
			e          euler.Estimate
		)

		if err := rows.Scan(&x, &y, &z, &b, &e.Solved); err != nil {
			return nil, fmt.Errorf("store: scan estimate: %w", err)
		}

		e.X, e.Y, e.Z, e.Base = orNaN(x), orNaN(y), orNaN(z), orNaN(b)
		out = append(out, e)
	}

	return out, rows.Err()
}

// DeleteRun removes a run and its estimates.
func (s *Store) DeleteRun(ctx context.Context, id uuid.UUID) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM estimates WHERE run_id = ?`, id.String()); err != nil {
		return fmt.Errorf("store: delete estimates: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("store: delete run: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return tx.Commit()
}

const selectRuns = `
	SELECT id, created_at, label, structural_index, window_size, filter,
		ranking, rows, cols, solved, unsolved
	FROM runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		run              Run
		id, created, rnk string
	)

	err := sc.Scan(&id, &created, &run.Label, &run.Params.StructuralIndex, &run.Params.WindowSize,
		&run.Params.Filter, &rnk, &run.Shape.Rows, &run.Shape.Cols, &run.Solved, &run.Unsolved)
	if err != nil {
		return Run{}, err
	}

	if run.ID, err = uuid.Parse(id); err != nil {
		return Run{}, fmt.Errorf("store: run id %q: %w", id, err)
	}

	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return Run{}, fmt.Errorf("store: run %s created_at: %w", id, err)
	}

	if run.Ranking, err = euler.ParseRanking(rnk); err != nil {
		return Run{}, fmt.Errorf("store: run %s: %w", id, err)
	}

	return run, nil
}

func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}

	return sql.NullFloat64{Float64: v, Valid: true}
}

func orNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}

	return v.Float64
}
