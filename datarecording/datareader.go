package datarecording

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
)

// QueryParams narrows down a query on a recorded table.
type QueryParams struct {
	// Where is a condition without the WHERE keyword, such as
	// "Component = ?". Placeholders are bound to Args.
	Where string
	Args  []any

	// OrderBy is a sort clause without the ORDER BY keywords.
	OrderBy string

	// Limit caps the number of rows. Zero means no cap.
	Limit  int
	Offset int
}

func (p QueryParams) clauses() string {
	var b strings.Builder

	if p.Where != "" {
		b.WriteString(" WHERE " + p.Where)
	}

	if p.OrderBy != "" {
		b.WriteString(" ORDER BY " + p.OrderBy)
	}

	if p.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d OFFSET %d", p.Limit, p.Offset)
	}

	return b.String()
}

// RecomputeFilter selects rows of the recompute table.
type RecomputeFilter struct {
	Component  string
	FailedOnly bool
	Limit      int
	Offset     int
}

func (f RecomputeFilter) params() QueryParams {
	var (
		conditions []string
		args       []any
	)

	if f.Component != "" {
		conditions = append(conditions, "Component = ?")
		args = append(args, f.Component)
	}

	if f.FailedOnly {
		conditions = append(conditions, "Error <> ''")
	}

	return QueryParams{
		Where:   strings.Join(conditions, " AND "),
		Args:    args,
		OrderBy: "StartNs, ID",
		Limit:   f.Limit,
		Offset:  f.Offset,
	}
}

// A Reader reads back what a DataRecorder wrote. The task, recompute and
// exec_info tables are mapped from the start.
type Reader struct {
	db     *sql.DB
	tables map[string]reflect.Type
}

// OpenReader opens an existing recording database.
func OpenReader(path string) (*Reader, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("recording %s: %w", path, err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	return NewReaderWithDB(db), nil
}

// NewReaderWithDB creates a Reader on an open database.
func NewReaderWithDB(db *sql.DB) *Reader {
	r := &Reader{
		db:     db,
		tables: make(map[string]reflect.Type),
	}

	r.MapTable(TaskTable, TaskEntry{})
	r.MapTable(RecomputeTable, RecomputeEntry{})
	r.MapTable(ExecInfoTable, ExecInfo{})

	return r
}

// MapTable tells which struct the rows of a table are read into.
func (r *Reader) MapTable(tableName string, sampleEntry any) {
	r.tables[tableName] = reflect.TypeOf(sampleEntry)
}

// Tables lists the mapped tables, sorted.
func (r *Reader) Tables() []string {
	names := make([]string, 0, len(r.tables))
	for n := range r.tables {
		names = append(names, n)
	}

	sort.Strings(names)

	return names
}

// Query returns pointers to the mapped struct, one per row, and the number of
// rows matching params.Where regardless of the limit.
func (r *Reader) Query(
	ctx context.Context,
	tableName string,
	params QueryParams,
) ([]any, int, error) {
	structType, ok := r.tables[tableName]
	if !ok {
		return nil, 0, fmt.Errorf("table %s is not mapped", tableName)
	}

	total, err := r.count(ctx, tableName, params)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT * FROM "+tableName+params.clauses(), params.Args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries, err := scanEntries(rows, structType)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *Reader) count(
	ctx context.Context,
	tableName string,
	params QueryParams,
) (int, error) {
	countOnly := QueryParams{Where: params.Where}

	var n int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM "+tableName+countOnly.clauses(),
		params.Args...).Scan(&n)

	return n, err
}

// Recomputes returns the recorded recomputes in start order.
func (r *Reader) Recomputes(
	ctx context.Context,
	filter RecomputeFilter,
) ([]RecomputeEntry, int, error) {
	return queryAs[RecomputeEntry](ctx, r, RecomputeTable, filter.params())
}

// Tasks returns the recorded tasks.
func (r *Reader) Tasks(
	ctx context.Context,
	params QueryParams,
) ([]TaskEntry, int, error) {
	return queryAs[TaskEntry](ctx, r, TaskTable, params)
}

// ExecInfo returns the properties of the recorded run.
func (r *Reader) ExecInfo(ctx context.Context) ([]ExecInfo, error) {
	entries, _, err := queryAs[ExecInfo](ctx, r, ExecInfoTable, QueryParams{})
	return entries, err
}

// Close closes the database.
func (r *Reader) Close() error {
	return r.db.Close()
}

func queryAs[T any](
	ctx context.Context,
	r *Reader,
	tableName string,
	params QueryParams,
) ([]T, int, error) {
	raw, total, err := r.Query(ctx, tableName, params)
	if err != nil {
		return nil, 0, err
	}

	entries := make([]T, 0, len(raw))
	for _, e := range raw {
		entries = append(entries, *e.(*T))
	}

	return entries, total, nil
}

// scanEntries fills one struct per row, matching columns to fields by name.
// Columns without a field are dropped.
func scanEntries(rows *sql.Rows, structType reflect.Type) ([]any, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var entries []any
	for rows.Next() {
		entry := reflect.New(structType)
		targets := make([]any, len(columns))

		for i, col := range columns {
			if field := entry.Elem().FieldByName(col); field.IsValid() {
				targets[i] = field.Addr().Interface()
			} else {
				targets[i] = new(any)
			}
		}

		if err := rows.Scan(targets...); err != nil {
			return nil, err
		}

		entries = append(entries, entry.Interface())
	}

	return entries, rows.Err()
}
