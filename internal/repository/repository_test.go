package repository_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hr-records-api/internal/repository"
)

func TestRowToMap(t *testing.T) {
	hired := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	columns := []string{"documento", "nombres", "salario", "email", "fecha_ingreso"}
	typeNames := []string{"INT8", "VARCHAR", "NUMERIC", "VARCHAR", "DATE"}
	values := []any{int64(1001), []byte("Ana"), []byte("3500000.00"), nil, hired}

	row := repository.RowToMap(columns, typeNames, values)

	if len(row) != 5 {
		t.Fatalf("Expected 5 columns, got %d", len(row))
	}
	if row["documento"] != int64(1001) {
		t.Errorf("Expected documento 1001, got %v", row["documento"])
	}
	if row["nombres"] != "Ana" {
		t.Errorf("Expected byte slice converted to 'Ana', got %v", row["nombres"])
	}
	if row["salario"] != json.Number("3500000") {
		t.Errorf("Expected numeric as JSON number, got %#v", row["salario"])
	}
	if row["fecha_ingreso"] != hired {
		t.Errorf("Expected time value kept, got %v", row["fecha_ingreso"])
	}

	// Null columns must be present with an explicit nil
	value, ok := row["email"]
	if !ok {
		t.Fatal("Expected null column to be present")
	}
	if value != nil {
		t.Errorf("Expected nil for null column, got %v", value)
	}
}

func TestRowToMap_ShortValues(t *testing.T) {
	row := repository.RowToMap([]string{"a", "b"}, nil, []any{1})

	if _, ok := row["b"]; !ok {
		t.Error("Expected missing value to be reported as nil column")
	}
	if row["b"] != nil {
		t.Errorf("Expected nil, got %v", row["b"])
	}
}

func TestRowToMap_NumericEncodesAsNumber(t *testing.T) {
	row := repository.RowToMap(
		[]string{"promedio", "total", "raw"},
		[]string{"NUMERIC", "NUMERIC", "TEXT"},
		[]any{[]byte("4125000.50"), []byte("NaN"), []byte("12")},
	)

	encoded, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	want := `{"promedio":4125000.5,"raw":"12","total":"NaN"}`
	if string(encoded) != want {
		t.Errorf("Expected %s, got %s", want, encoded)
	}
}
