package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"cargahoraria/internal/errors"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. Nested keys use "__",
// e.g. CARGA_ROSTER__OUTPUT_DIR.
const EnvPrefix = "CARGA_"

// Config represents the complete application configuration
type Config struct {
	Workbook WorkbookConfig `json:"workbook"`
	Roster   RosterConfig   `json:"roster"`
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	SFTP     SFTPConfig     `json:"sftp"`
	Logging  LoggingConfig  `json:"logging"`
}

// WorkbookConfig locates the schedule workbook
type WorkbookConfig struct {
	Path      string `json:"path"`
	Sheet     string `json:"sheet"`      // empty means the last sheet
	HeaderRow int    `json:"header_row"` // 1-based
}

// RosterConfig holds roster export settings
type RosterConfig struct {
	Template      string   `json:"template"`
	EnrollmentDir string   `json:"enrollment_dir"`
	OutputDir     string   `json:"output_dir"`
	Holidays      []string `json:"holidays"`
	Workers       int      `json:"workers"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Port string `json:"port"`
}

// DatabaseConfig holds the course store connection
type DatabaseConfig struct {
	URL string `json:"url"`
}

// SFTPConfig holds roster publishing settings
type SFTPConfig struct {
	Host                  string `json:"host"`
	Port                  int    `json:"port"`
	User                  string `json:"user"`
	Password              string `json:"password"`
	RemoteDir             string `json:"remote_dir"`
	InsecureIgnoreHostKey bool   `json:"insecure_ignore_host_key"`
}

// LoggingConfig selects log level and output format
type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Load reads the optional YAML file at path, applies CARGA_ environment
// overrides, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil, errors.ConfigInvalid(fmt.Sprintf("unsupported config format: %s", ext))
		}
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to read %s", path))
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "failed to read environment"))
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "failed to decode configuration"))
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return &cfg, nil
}

// envKey maps CARGA_ROSTER__OUTPUT_DIR to roster.output_dir
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// SetDefaults fills unset values
func (c *Config) SetDefaults() {
	if c.Workbook.HeaderRow == 0 {
		c.Workbook.HeaderRow = 2
	}
	if c.Roster.Template == "" {
		c.Roster.Template = "plantilla_lista_estudiantes.xlsx"
	}
	if c.Roster.EnrollmentDir == "" {
		c.Roster.EnrollmentDir = "inscritos"
	}
	if c.Roster.OutputDir == "" {
		c.Roster.OutputDir = "output"
	}
	if c.Roster.Workers == 0 {
		c.Roster.Workers = 4
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.SFTP.Port == 0 {
		c.SFTP.Port = 22
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if c.Workbook.HeaderRow < 1 {
		return errors.ConfigInvalid("workbook.header_row must be at least 1")
	}
	if c.Roster.Workers < 1 {
		return errors.ConfigInvalid("roster.workers must be at least 1")
	}
	if c.SFTP.Port < 1 || c.SFTP.Port > 65535 {
		return errors.ConfigInvalid(fmt.Sprintf("sftp.port %d out of range", c.SFTP.Port))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return errors.ConfigInvalid(fmt.Sprintf("logging.format %q is not console or json", c.Logging.Format))
	}
	return nil
}

// RequireWorkbook reports a missing workbook path
func (c *Config) RequireWorkbook() error {
	if c.Workbook.Path == "" {
		return errors.ConfigInvalid("workbook.path is required (set CARGA_WORKBOOK__PATH or --workbook)")
	}
	return nil
}

// RequireDatabase reports a missing database URL
func (c *Config) RequireDatabase() error {
	if c.Database.URL == "" {
		return errors.ConfigInvalid("database.url is required (set CARGA_DATABASE__URL)")
	}
	return nil
}

// RequireSFTP reports missing publishing settings
func (c *Config) RequireSFTP() error {
	if c.SFTP.Host == "" || c.SFTP.User == "" {
		return errors.ConfigInvalid("sftp.host and sftp.user are required to publish")
	}
	return nil
}
