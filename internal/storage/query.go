// ABOUTME: Query describes filtered, ordered, and limited reads over one table.
// ABOUTME: Only indexed columns (or id) may be used to filter or order.
package storage

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrInvalidQuery is returned when a Query names a column that is not indexed.
var ErrInvalidQuery = errors.New("invalid query")

// Query narrows a table read. The zero Query reads the whole table in
// insertion order.
type Query struct {
	// Where is an indexed column compared for equality with Equals.
	Where  string
	Equals any
	// OrderBy is an indexed column; empty means insertion order.
	OrderBy string
	Desc    bool
	// Limit caps the result count when positive.
	Limit int
}

// All returns the zero Query.
func All() Query {
	return Query{}
}

// OrderedBy returns a Query ordered by column.
func OrderedBy(column string, desc bool, limit int) Query {
	return Query{OrderBy: column, Desc: desc, Limit: limit}
}

// WhereEquals returns a Query filtered on column = value.
func WhereEquals(column string, value any) Query {
	return Query{Where: column, Equals: value}
}

// build renders the WHERE/ORDER BY/LIMIT suffix for table.
func (q Query) build(table Table) (string, []any, error) {
	var sb strings.Builder
	var args []any

	if q.Where != "" {
		if !isIndexed(table, q.Where) {
			return "", nil, fmt.Errorf("%w: %s is not an indexed field of %s", ErrInvalidQuery, q.Where, table)
		}
		sb.WriteString(" WHERE " + q.Where + " = ?")
		args = append(args, queryValue(q.Equals))
	}

	order := "id"
	if q.OrderBy != "" {
		if !isIndexed(table, q.OrderBy) {
			return "", nil, fmt.Errorf("%w: %s is not an indexed field of %s", ErrInvalidQuery, q.OrderBy, table)
		}
		order = q.OrderBy
	}
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	// id breaks ties so equal keys keep insertion order.
	sb.WriteString(fmt.Sprintf(" ORDER BY %s %s, id %s", order, dir, dir))

	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}

	return sb.String(), args, nil
}

func isIndexed(table Table, column string) bool {
	return column == "id" || slices.Contains(indexedColumns[table], column)
}

func queryValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return formatTime(val)
	case fmt.Stringer:
		return val.String()
	default:
		return v
	}
}
