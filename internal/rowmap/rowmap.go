// Package rowmap maps result rows onto typed records through an ordered list
// of field descriptors. Each repository declares its column order once and
// reuses it for the SELECT list, single-row scans and multi-row scans.
package rowmap

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
)

// Scanner is implemented by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Field binds a column to the scan destination inside a record.
type Field[T any] struct {
	Column string
	Dest   func(*T) any
}

// Col is shorthand for building a Field.
func Col[T any](column string, dest func(*T) any) Field[T] {
	return Field[T]{Column: column, Dest: dest}
}

// Mapper scans rows of one table into T, column by column, in declaration order.
type Mapper[T any] struct {
	table  string
	fields []Field[T]
}

func New[T any](table string, fields ...Field[T]) *Mapper[T] {
	return &Mapper[T]{table: table, fields: fields}
}

// Columns returns the comma separated column list.
func (m *Mapper[T]) Columns() string {
	return m.QualifiedColumns("")
}

// QualifiedColumns prefixes every column with alias, for joins. Columns that
// already contain a dot or a parenthesis are left as they are.
func (m *Mapper[T]) QualifiedColumns(alias string) string {
	cols := make([]string, len(m.fields))
	for i, f := range m.fields {
		if alias == "" || strings.ContainsAny(f.Column, ".(") {
			cols[i] = f.Column
			continue
		}
		cols[i] = alias + "." + f.Column
	}
	return strings.Join(cols, ", ")
}

// Select returns "SELECT <columns> FROM <table>".
func (m *Mapper[T]) Select() string {
	return "SELECT " + m.Columns() + " FROM " + m.table
}

// Dest returns the scan destinations of rec in column order.
func (m *Mapper[T]) Dest(rec *T) []any {
	dest := make([]any, len(m.fields))
	for i, f := range m.fields {
		dest[i] = f.Dest(rec)
	}
	return dest
}

// One scans a single row. sql.ErrNoRows becomes common.ErrorNotFound; any
// other failure is reported as common.ErrStatementFailed.
func (m *Mapper[T]) One(row Scanner) (*T, error) {
	rec := new(T)
	if err := row.Scan(m.Dest(rec)...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	return rec, nil
}

// All materializes every row. It takes the pair returned by QueryContext so
// calls read as m.All(db.QueryContext(...)). Zero rows yield a nil slice and
// no error. If scanning fails part way through, rows collected so far are
// dropped and common.ErrRowMaterialization is returned.
func (m *Mapper[T]) All(rows *sql.Rows, err error) ([]T, error) {
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStatementFailed, err)
	}
	defer rows.Close()

	var result []T
	for rows.Next() {
		var rec T
		if err := rows.Scan(m.Dest(&rec)...); err != nil {
			return nil, fmt.Errorf("%w: %w", common.ErrRowMaterialization, err)
		}
		result = append(result, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrRowMaterialization, err)
	}
	return result, nil
}
