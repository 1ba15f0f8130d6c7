package models

// CatalogKind names one of the four lookup tables
type CatalogKind string

const (
	CatalogStatuses        CatalogKind = "statuses"
	CatalogDepartments     CatalogKind = "departments"
	CatalogPositions       CatalogKind = "positions"
	CatalogEducationLevels CatalogKind = "education-levels"
)

// CatalogKinds lists every lookup table in display order
var CatalogKinds = []CatalogKind{
	CatalogStatuses,
	CatalogDepartments,
	CatalogPositions,
	CatalogEducationLevels,
}

// Valid reports whether k names a known lookup table
func (k CatalogKind) Valid() bool {
	for _, known := range CatalogKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Catalog is implemented by the lookup entities
type Catalog interface {
	GetID() int
	GetName() string
	SetName(name string)
	NameColumn() string
}

// CatalogItem is the wire representation of a lookup row
type CatalogItem struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CatalogRequest is the body accepted by catalog create and update
type CatalogRequest struct {
	Name string `json:"name"`
}

// Status is an employment status (Activo, Vacaciones, ...)
type Status struct {
	ID   int    `json:"id" gorm:"column:estado_id;primaryKey"`
	Name string `json:"name" gorm:"column:nombre_estado"`
}

func (Status) TableName() string { return "estado" }
func (Status) NameColumn() string { return "nombre_estado" }
func (s Status) GetID() int { return s.ID }
func (s Status) GetName() string { return s.Name }
func (s *Status) SetName(name string) { s.Name = name }

// Department is an organizational unit
type Department struct {
	ID   int    `json:"id" gorm:"column:departamento_id;primaryKey"`
	Name string `json:"name" gorm:"column:nombre_departamento"`
}

func (Department) TableName() string { return "departamento" }
func (Department) NameColumn() string { return "nombre_departamento" }
func (d Department) GetID() int { return d.ID }
func (d Department) GetName() string { return d.Name }
func (d *Department) SetName(name string) { d.Name = name }

// Position is a job title
type Position struct {
	ID   int    `json:"id" gorm:"column:cargo_id;primaryKey"`
	Name string `json:"name" gorm:"column:nombre_cargo"`
}

func (Position) TableName() string { return "cargo" }
func (Position) NameColumn() string { return "nombre_cargo" }
func (p Position) GetID() int { return p.ID }
func (p Position) GetName() string { return p.Name }
func (p *Position) SetName(name string) { p.Name = name }

// EducationLevel is the highest completed education degree
type EducationLevel struct {
	ID   int    `json:"id" gorm:"column:nivel_educativo_id;primaryKey"`
	Name string `json:"name" gorm:"column:nombre_nivel"`
}

func (EducationLevel) TableName() string { return "nivel_educativo" }
func (EducationLevel) NameColumn() string { return "nombre_nivel" }
func (l EducationLevel) GetID() int { return l.ID }
func (l EducationLevel) GetName() string { return l.Name }
func (l *EducationLevel) SetName(name string) { l.Name = name }
