package service_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/hr-records-api/internal/ai"
	"github.com/hr-records-api/internal/auth"
	"github.com/hr-records-api/internal/config"
	"github.com/hr-records-api/internal/mocks"
	"github.com/hr-records-api/internal/repository"
	"github.com/hr-records-api/internal/service"
	"github.com/hr-records-api/internal/spreadsheet"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

type testEnv struct {
	services  *service.Services
	repos     *repository.Repositories
	employees *mocks.MockEmployeeRepository
	queries   *mocks.MockQueryRepository
	sender    *mocks.MockSender
	cache     *memoryCache
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret: strings.Repeat("s", 32),
			Issuer:    "hr-records-test",
			Audience:  "hr-records-test",
			TokenTTL:  time.Hour,
		},
		AI:    config.AIConfig{Timeout: time.Second, QueryTimeout: time.Second},
		Redis: config.RedisConfig{TTL: time.Minute},
		SMTP:  config.SMTPConfig{Workers: 2, LoginURL: "http://localhost/login"},
	}
}

func newTestEnv(t *testing.T, generator ai.Generator) *testEnv {
	t.Helper()
	cfg := testConfig()
	repos, employees, queries := mocks.SeededRepositories()
	sender := mocks.NewMockSender()
	c := newMemoryCache()

	svcs := service.NewServices(repos, service.Dependencies{
		Generator: generator,
		Cache:     c,
		Mailer:    sender,
		Hasher:    mocks.MockHasher{},
		Tokens:    auth.NewTokenManager(cfg.Auth),
	}, cfg, zerolog.Nop())

	return &testEnv{
		services:  svcs,
		repos:     repos,
		employees: employees,
		queries:   queries,
		sender:    sender,
		cache:     c,
	}
}

// employeeRow returns a valid import row for documento
func employeeRow(documento int64, first, department string) []interface{} {
	return []interface{}{
		documento, first, "Pérez", "1990-05-12", "Calle 1", "3001234567", "",
		"Desarrollador", "3500000", "2020-01-15", "Activo", "Profesional", "Backend", department,
	}
}

func buildWorkbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(spreadsheet.EmployeeHeaders))
	for i, h := range spreadsheet.EmployeeHeaders {
		header[i] = h
	}
	all := append([][]interface{}{header}, rows...)

	for i, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatal(err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

// memoryCache is an in-process Cache that records hits
type memoryCache struct {
	values map[string][]byte
	hits   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	data, ok := c.values[key]
	if !ok {
		return false, nil
	}
	c.hits++
	return true, json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.values[key] = data
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}
