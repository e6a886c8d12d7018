package app

import (
	"context"

	"cargahoraria/domain/schedule"
	"cargahoraria/internal/roster"

	"github.com/stretchr/testify/mock"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Path() string { return "/data/CARGA HORARIA 2025.xlsx" }

func (m *mockSource) Sheets(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	sheets, _ := args.Get(0).([]string)
	return sheets, args.Error(1)
}

func (m *mockSource) ReadSheet(ctx context.Context, sheet string) (*schedule.RawTable, error) {
	args := m.Called(ctx, sheet)
	table, _ := args.Get(0).(*schedule.RawTable)
	return table, args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) SaveRun(ctx context.Context, run *schedule.Run, records []schedule.CourseRecord) error {
	args := m.Called(ctx, run, records)
	return args.Error(0)
}

func (m *mockStore) LatestRun(ctx context.Context, workbook, sheet string) (*schedule.Run, error) {
	args := m.Called(ctx, workbook, sheet)
	run, _ := args.Get(0).(*schedule.Run)
	return run, args.Error(1)
}

func (m *mockStore) ListCourses(ctx context.Context, runID string) ([]schedule.CourseRecord, error) {
	args := m.Called(ctx, runID)
	records, _ := args.Get(0).([]schedule.CourseRecord)
	return records, args.Error(1)
}

type mockExporter struct {
	mock.Mock
}

func (m *mockExporter) ExportAll(ctx context.Context, jobs []roster.Job) ([]roster.Result, error) {
	args := m.Called(ctx, jobs)
	results, _ := args.Get(0).([]roster.Result)
	return results, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, localPath, remoteName string) error {
	args := m.Called(ctx, localPath, remoteName)
	return args.Error(0)
}

// julyTable is a small raw sheet: two English courses and one Portuguese.
func julyTable() *schedule.RawTable {
	return &schedule.RawTable{
		Sheet:   "Julio",
		Headers: []string{"CODIGO", "CICLO", "MODALIDAD", "DOCENTE", "DIAS", "HORAS", "Nª inscritos"},
		Rows: []schedule.RawRow{
			{"CODIGO": "101", "CICLO": "B1", "MODALIDAD": "regular", "DOCENTE": "Ana Ruiz", "DIAS": "LUNES, MIÉRCOLES", "HORAS": "08:00 - 10:00", "Nª inscritos": "15/20"},
			{"CODIGO": "102", "CICLO": "I2", "MODALIDAD": "intensivo", "DIAS": "MARTES", "HORAS": "18:00 - 20:00", "Nª inscritos": "10/20"},
			{"CODIGO": "PORTUGUÉS"},
			{"CODIGO": "201", "CICLO": "B1", "MODALIDAD": "regular", "DOCENTE": "João Lima", "DIAS": "SÁBADOS", "HORAS": "09:00 - 13:00"},
		},
	}
}
