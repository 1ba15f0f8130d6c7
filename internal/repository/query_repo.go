package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/hr-records-api/internal/database"
	"github.com/shopspring/decimal"
)

// queryRepo is the concrete implementation of QueryRepository
type queryRepo struct {
	db *database.DB
}

// NewQueryRepo creates a new ad-hoc query repository
func NewQueryRepo(db *database.DB) QueryRepository {
	return &queryRepo{db: db}
}

// RunReadOnly executes query verbatim inside a read-only transaction and
// returns one column->value map per row. NULL columns map to nil.
func (r *queryRepo) RunReadOnly(ctx context.Context, query string) ([]map[string]any, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}
	columns := make([]string, len(columnTypes))
	typeNames := make([]string, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = ct.Name()
		typeNames[i] = ct.DatabaseTypeName()
	}

	result := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		result = append(result, RowToMap(columns, typeNames, values))
	}

	return result, rows.Err()
}

// RowToMap pairs column names with scanned values. typeNames holds the
// database type of each column. NUMERIC values, which the driver returns as
// text, become json.Number; other byte slices become strings.
func RowToMap(columns, typeNames []string, values []any) map[string]any {
	row := make(map[string]any, len(columns))
	for i, column := range columns {
		var value any
		if i < len(values) {
			value = values[i]
		}
		if b, ok := value.([]byte); ok {
			if i < len(typeNames) && isNumericType(typeNames[i]) {
				value = numericValue(b)
			} else {
				value = string(b)
			}
		}
		row[column] = value
	}
	return row
}

func isNumericType(name string) bool {
	return name == "NUMERIC" || name == "DECIMAL"
}

// numericValue keeps the exact digits; NaN and infinities stay strings
func numericValue(b []byte) any {
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return string(b)
	}
	return json.Number(d.String())
}
