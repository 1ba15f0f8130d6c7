package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hr-records-api/internal/models"
	"github.com/hr-records-api/internal/repository"
	"github.com/hr-records-api/internal/spreadsheet"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// exportService is the concrete implementation of ExportService
type exportService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newExportService creates a new ExportService
func newExportService(repos *repository.Repositories, log zerolog.Logger) *exportService {
	return &exportService{
		repos: repos,
		log:   log.With().Str("service", "export").Logger(),
	}
}

// StreamEmployees streams every employee in the specified format
func (s *exportService) StreamEmployees(ctx context.Context, w http.ResponseWriter, format string) error {
	s.log.Info().Str("format", format).Msg("Starting employees export")

	switch format {
	case "ndjson":
		return s.streamNDJSON(ctx, w)
	case "json":
		return s.streamJSON(ctx, w)
	case "csv":
		return s.streamCSV(ctx, w)
	case "xlsx":
		return s.streamXLSX(ctx, w)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

func attachment(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
}

func (s *exportService) streamNDJSON(ctx context.Context, w http.ResponseWriter) error {
	attachment(w, "application/x-ndjson", "employees.ndjson")

	flusher, _ := w.(http.Flusher)
	count := 0

	err := s.repos.Employees.StreamAll(ctx, func(employee *models.Employee) error {
		data, err := json.Marshal(employee)
		if err != nil {
			return err
		}
		w.Write(data)
		w.Write([]byte("\n"))
		count++

		// Flush every 100 records for streaming
		if count%100 == 0 && flusher != nil {
			flusher.Flush()
		}
		return nil
	})

	s.log.Info().Int("count", count).Msg("Employees export completed")
	return err
}

func (s *exportService) streamJSON(ctx context.Context, w http.ResponseWriter) error {
	attachment(w, "application/json", "employees.json")

	w.Write([]byte("["))
	first := true

	err := s.repos.Employees.StreamAll(ctx, func(employee *models.Employee) error {
		if !first {
			w.Write([]byte(","))
		}
		first = false

		data, err := json.Marshal(employee)
		if err != nil {
			return err
		}
		w.Write(data)
		return nil
	})

	w.Write([]byte("]"))
	return err
}

func (s *exportService) streamCSV(ctx context.Context, w http.ResponseWriter) error {
	attachment(w, "text/csv", "employees.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(spreadsheet.EmployeeHeaders); err != nil {
		return err
	}

	return s.repos.Employees.StreamAll(ctx, func(employee *models.Employee) error {
		return writer.Write(spreadsheet.EmployeeRecord(employee))
	})
}

// streamXLSX builds the workbook before writing anything, so a failure
// midway can still be reported as an error response
func (s *exportService) streamXLSX(ctx context.Context, w http.ResponseWriter) error {
	sheet, err := spreadsheet.NewEmployeeWriter()
	if err != nil {
		return err
	}

	if err := s.repos.Employees.StreamAll(ctx, sheet.Write); err != nil {
		var discard bytes.Buffer
		sheet.Close(&discard)
		return err
	}

	var buf bytes.Buffer
	if err := sheet.Close(&buf); err != nil {
		return err
	}

	attachment(w, xlsxContentType, "employees.xlsx")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, err = buf.WriteTo(w)

	s.log.Info().Int("count", sheet.Rows()).Msg("Employees export completed")
	return err
}

// GetCount returns the row count of a resource
func (s *exportService) GetCount(ctx context.Context, resource string) (int64, error) {
	switch resource {
	case "employees":
		return s.repos.Employees.Count(ctx)
	case string(models.CatalogStatuses):
		return s.repos.Statuses.Count(ctx)
	case string(models.CatalogDepartments):
		return s.repos.Departments.Count(ctx)
	case string(models.CatalogPositions):
		return s.repos.Positions.Count(ctx)
	case string(models.CatalogEducationLevels):
		return s.repos.EducationLevels.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}
