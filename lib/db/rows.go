package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gravitational/trace"
)

// QueryResult lists rows in the order returned by the database
type QueryResult []Row

// Row is a single result row. Columns are kept in result order
type Row struct {
	columns []string
	values  []interface{}
}

// NewRow returns a row with the given columns and values
func NewRow(columns []string, values []interface{}) Row {
	return Row{columns: columns, values: values}
}

// Columns returns the column labels
func (r Row) Columns() []string {
	return r.columns
}

// Values returns the column values
func (r Row) Values() []interface{} {
	return r.values
}

// Get returns the value of the column with the given label.
// If the label is repeated, the last column wins
func (r Row) Get(label string) (interface{}, bool) {
	for i := len(r.columns) - 1; i >= 0; i-- {
		if r.columns[i] == label {
			return r.values[i], true
		}
	}
	return nil, false
}

// Map returns the row as a map keyed by column label
func (r Row) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.columns))
	for i, column := range r.columns {
		m[column] = r.values[i]
	}
	return m
}

// String formats the row as label=value pairs
func (r Row) String() string {
	pairs := make([]string, 0, len(r.columns))
	for i, column := range r.columns {
		pairs = append(pairs, fmt.Sprintf("%v=%v", column, r.values[i]))
	}
	return strings.Join(pairs, " ")
}

func scanRows(rows *sql.Rows) (QueryResult, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, trace.Wrap(err)
	}
	result := QueryResult{}
	for rows.Next() {
		values := make([]interface{}, len(columns))
		dest := make([]interface{}, len(columns))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, trace.Wrap(err)
		}
		for i, value := range values {
			values[i] = convert(value, types[i])
		}
		result = append(result, Row{columns: columns, values: values})
	}
	return result, trace.Wrap(rows.Err())
}

// convert turns raw bytes of textual columns into strings
func convert(value interface{}, typ *sql.ColumnType) interface{} {
	b, ok := value.([]byte)
	if !ok {
		return value
	}
	switch strings.ToUpper(typ.DatabaseTypeName()) {
	case "BLOB", "BYTEA":
		return append([]byte(nil), b...)
	}
	return string(b)
}

func toString(value interface{}) (string, bool, error) {
	switch v := value.(type) {
	case nil:
		return "", false, nil
	case string:
		return v, true, nil
	case []byte:
		return string(v), true, nil
	case time.Time:
		return v.Format(time.RFC3339Nano), true, nil
	}
	return fmt.Sprint(value), true, nil
}
