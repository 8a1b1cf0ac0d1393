// Package designrules reads design rules, the limits and defaults of
// constrained parameters, from a SQLite database.
package designrules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"

	"github.com/sarchlab/partwright/param"
)

// DefaultFileName is the file name the database is looked up under.
const DefaultFileName = "DesignRules.db"

const infinity = "INFINITY"

const schema = `CREATE TABLE IF NOT EXISTS Parameters (
	ID INTEGER PRIMARY KEY,
	Name TEXT NOT NULL,
	Symbol TEXT NOT NULL,
	MinimumQuantity REAL NOT NULL,
	MaximumQuantity NOT NULL,
	DefaultQuantity REAL NOT NULL
);`

// Store is a design rules database. It implements param.ConstraintSource.
type Store struct {
	*sql.DB

	path   string
	closed atomic.Bool
}

// Open connects to an existing database file.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: design rules database %q: %v",
			param.ErrConstraintSourceUnavailable, path, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", param.ErrConstraintSourceUnavailable, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", param.ErrConstraintSourceUnavailable, err)
	}

	return &Store{DB: db, path: path}, nil
}

// Create creates a new database file with an empty rules table.
func Create(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("file %s already exists", path)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	s := &Store{DB: db, path: path}
	if err := s.CreateSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// NewWithDB creates a Store with a given database.
func NewWithDB(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Path returns the file the store was opened from, if any.
func (s *Store) Path() string {
	return s.path
}

// CreateSchema creates the rules table if it does not exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	if err := s.mustBeConnected(); err != nil {
		return err
	}

	_, err := s.ExecContext(ctx, schema)

	return err
}

// Insert adds a rule. An infinite maximum is stored as the text INFINITY.
func (s *Store) Insert(ctx context.Context, c param.Constraint) error {
	if err := s.mustBeConnected(); err != nil {
		return err
	}

	var max any = c.Max
	if math.IsInf(c.Max, 1) {
		max = infinity
	}

	_, err := s.ExecContext(ctx,
		`INSERT INTO Parameters
		(ID, Name, Symbol, MinimumQuantity, MaximumQuantity, DefaultQuantity)
		VALUES (?, ?, ?, ?, ?, ?)`,
		int(c.ID), c.Name, c.Symbol, c.Min, max, c.Default)

	return err
}

// LookupConstraint returns the rule with the given identifier.
func (s *Store) LookupConstraint(
	ctx context.Context,
	id param.ConstraintID,
) (param.Constraint, error) {
	if err := s.mustBeConnected(); err != nil {
		return param.Constraint{}, err
	}

	row := s.QueryRowContext(ctx,
		`SELECT ID, Name, Symbol, MinimumQuantity, MaximumQuantity, DefaultQuantity
		FROM Parameters WHERE ID = ? LIMIT 1`, int(id))

	c, err := scanConstraint(row)
	if errors.Is(err, sql.ErrNoRows) {
		return param.Constraint{}, fmt.Errorf(
			"%w: no design rule with ID %d", param.ErrUnknownConstraintIdentity, id)
	}

	if err != nil {
		return param.Constraint{}, fmt.Errorf(
			"%w: design rule %d cannot be loaded: %v",
			param.ErrConstraintSourceUnavailable, id, err)
	}

	return c, nil
}

// List returns all the rules ordered by identifier.
func (s *Store) List(ctx context.Context) ([]param.Constraint, error) {
	if err := s.mustBeConnected(); err != nil {
		return nil, err
	}

	rows, err := s.QueryContext(ctx,
		`SELECT ID, Name, Symbol, MinimumQuantity, MaximumQuantity, DefaultQuantity
		FROM Parameters ORDER BY ID`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []param.Constraint
	for rows.Next() {
		c, err := scanConstraint(rows)
		if err != nil {
			return nil, err
		}

		rules = append(rules, c)
	}

	return rules, rows.Err()
}

// Close closes the database. Lookups after Close report the source as
// unavailable.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	return s.DB.Close()
}

func (s *Store) mustBeConnected() error {
	if s == nil || s.DB == nil || s.closed.Load() {
		return fmt.Errorf("%w: design rules database is not connected",
			param.ErrConstraintSourceUnavailable)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanConstraint(row scanner) (param.Constraint, error) {
	var (
		c      param.Constraint
		id     int
		rawMax any
	)

	err := row.Scan(&id, &c.Name, &c.Symbol, &c.Min, &rawMax, &c.Default)
	if err != nil {
		return param.Constraint{}, err
	}

	c.ID = param.ConstraintID(id)

	c.Max, err = parseMaximum(rawMax)
	if err != nil {
		return param.Constraint{}, fmt.Errorf("rule %d: %w", id, err)
	}

	return c, nil
}

func parseMaximum(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case []byte:
		return parseMaximumText(string(v))
	case string:
		return parseMaximumText(v)
	default:
		return 0, fmt.Errorf("unsupported maximum quantity %v", raw)
	}
}

func parseMaximumText(s string) (float64, error) {
	if strings.EqualFold(strings.TrimSpace(s), infinity) {
		return math.Inf(1), nil
	}

	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

var _ param.ConstraintSource = (*Store)(nil)
