package config

import (
	"os"
	"path/filepath"
	"testing"

	"cargahoraria/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "carga.yaml")
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `workbook:
  path: "CARGA HORARIA 2025.xlsx"
  sheet: "Julio"
roster:
  template: "plantilla.xlsx"
  holidays: ["2025-07-28", "2025-07-29"]
  workers: 2
sftp:
  host: "files.example.com"
  user: "coord"
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	checks := []struct {
		name string
		got  any
		want any
	}{
		{"workbook.path", cfg.Workbook.Path, "CARGA HORARIA 2025.xlsx"},
		{"workbook.sheet", cfg.Workbook.Sheet, "Julio"},
		{"workbook.header_row default", cfg.Workbook.HeaderRow, 2},
		{"roster.template", cfg.Roster.Template, "plantilla.xlsx"},
		{"roster.holidays", cfg.Roster.Holidays, []string{"2025-07-28", "2025-07-29"}},
		{"roster.workers", cfg.Roster.Workers, 2},
		{"roster.output_dir default", cfg.Roster.OutputDir, "output"},
		{"sftp.port default", cfg.SFTP.Port, 22},
		{"logging.level", cfg.Logging.Level, "debug"},
		{"logging.format", cfg.Logging.Format, "json"},
		{"server.port default", cfg.Server.Port, "8080"},
	}
	for _, c := range checks {
		assert.Equal(t, c.want, c.got, c.name)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "roster:\n  output_dir: out\n")
	t.Setenv("CARGA_ROSTER__OUTPUT_DIR", "/tmp/rosters")
	t.Setenv("CARGA_WORKBOOK__HEADER_ROW", "3")
	t.Setenv("CARGA_DATABASE__URL", "postgres://localhost/carga")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/rosters", cfg.Roster.OutputDir)
	assert.Equal(t, 3, cfg.Workbook.HeaderRow)
	assert.Equal(t, "postgres://localhost/carga", cfg.Database.URL)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "inscritos", cfg.Roster.EnrollmentDir)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"negative workers", "roster:\n  workers: -1\n"},
		{"bad level", "logging:\n  level: verbose\n"},
		{"bad format", "logging:\n  format: xml\n"},
		{"bad port", "sftp:\n  port: 70000\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.data))
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
		})
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load("config.toml")
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestRequire(t *testing.T) {
	cfg := &Config{}
	assert.True(t, errors.HasCode(cfg.RequireWorkbook(), errors.CodeConfigInvalid))
	assert.True(t, errors.HasCode(cfg.RequireDatabase(), errors.CodeConfigInvalid))
	assert.True(t, errors.HasCode(cfg.RequireSFTP(), errors.CodeConfigInvalid))

	cfg.Workbook.Path = "carga.xlsx"
	assert.NoError(t, cfg.RequireWorkbook())
}
