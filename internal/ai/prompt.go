package ai

import "fmt"

// FallbackSQL is what the model is told to answer when the schema cannot answer the question
const FallbackSQL = "SELECT 'Question cannot be answered with the available data' AS error"

const schemaDescription = `The PostgreSQL database has the following tables:

1. empleado (documento BIGINT PK, nombres VARCHAR, apellidos VARCHAR, fecha_nacimiento DATE, direccion VARCHAR, telefono VARCHAR, email VARCHAR, salario NUMERIC(12,2), fecha_ingreso DATE, perfil_profesional TEXT, estado_id INT FK, nivel_educativo_id INT FK, departamento_id INT FK, cargo_id INT FK)

2. estado (estado_id SERIAL PK, nombre_estado VARCHAR) - values: Activo, Inactivo, Vacaciones, Licencia

3. departamento (departamento_id SERIAL PK, nombre_departamento VARCHAR) - values: Recursos Humanos, Tecnología, Marketing, Operaciones, Logística, Contabilidad, Ventas

4. cargo (cargo_id SERIAL PK, nombre_cargo VARCHAR) - values: Ingeniero, Soporte Técnico, Analista, Coordinador, Desarrollador, Auxiliar, Administrador

5. nivel_educativo (nivel_educativo_id SERIAL PK, nombre_nivel VARCHAR) - values: Bachiller, Técnico, Tecnólogo, Profesional, Especialización, Maestría, Doctorado

Relationships:
- empleado.estado_id -> estado.estado_id
- empleado.departamento_id -> departamento.departamento_id
- empleado.cargo_id -> cargo.cargo_id
- empleado.nivel_educativo_id -> nivel_educativo.nivel_educativo_id`

// BuildPrompt embeds the schema, the generation rules and the question
func BuildPrompt(question string) string {
	return fmt.Sprintf(`You are a PostgreSQL expert. Convert the user's question into one SQL query.

%s

RULES:
1. Generate ONLY a single SELECT statement (never INSERT, UPDATE, DELETE, DROP or any other statement)
2. Use JOINs when data from related tables is needed
3. Table and column names are lowercase snake_case
4. Answer ONLY with the SQL query, without explanations and without markdown
5. Do not quote column names with double quotes
6. If the question cannot be answered with the available data, answer exactly: %s

User question: %s

SQL query:`, schemaDescription, FallbackSQL, question)
}
