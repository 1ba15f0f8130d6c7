package ai

import (
	"strings"
	"testing"
)

func TestCleanSQL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced sql", "```sql\nSELECT * FROM estado;\n```", "SELECT * FROM estado;"},
		{"bare fence", "```\nSELECT 1\n```", "SELECT 1"},
		{"plain", "  SELECT nombres FROM empleado  \n", "SELECT nombres FROM empleado"},
		{"empty fence", "```sql\n```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanSQL(tt.in); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIsSelectQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"SELECT * FROM estado;", true},
		{"select count(*) from empleado", true},
		{"SELECT * FROM estado;;", true},
		{FallbackSQL, true},
		{"SELECT e.nombres, d.nombre_departamento FROM empleado e JOIN departamento d ON d.departamento_id = e.departamento_id", true},
		{"DROP TABLE empleado;", false},
		{"WITH x AS (SELECT 1) SELECT * FROM x", false},
		{"SELECT 1; DROP TABLE empleado", false},
		{"SELECT 1; SELECT 2", false},
		{"SELECT * FROM estado -- comment", false},
		{"SELECT * FROM estado /* hi */", false},
		{"SELECT * FROM estado; DELETE FROM estado", false},
		{"SELECT pg_sleep(1); GRANT ALL ON empleado TO public", false},
		{"  ", false},
	}

	for _, tt := range tests {
		if got := IsSelectQuery(tt.query); got != tt.want {
			t.Errorf("IsSelectQuery(%q): expected %v, got %v", tt.query, tt.want, got)
		}
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("How many employees are in Tecnología?")

	for _, want := range []string{
		"empleado (documento BIGINT PK",
		"nivel_educativo (nivel_educativo_id SERIAL PK, nombre_nivel VARCHAR)",
		"empleado.cargo_id -> cargo.cargo_id",
		FallbackSQL,
		"How many employees are in Tecnología?",
		"without markdown",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain %q", want)
		}
	}
	if strings.Contains(prompt, "password_hash") {
		t.Error("Expected credential column to be left out of the schema")
	}
}
