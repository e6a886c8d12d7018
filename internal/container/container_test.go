package container

import (
	"context"
	"testing"

	"cargahoraria/internal/config"
	"cargahoraria/internal/errors"
	"cargahoraria/internal/logging"
	"cargahoraria/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Workbook.Path = testkit.WriteWorkbook(t, t.TempDir(), "carga.xlsx", testkit.JulySheet())
	cfg.SetDefaults()
	return cfg
}

func TestNew_WithoutDatabaseOrSFTP(t *testing.T) {
	c, err := New(context.Background(), testConfig(t), logging.Nop())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.DB)
	assert.Nil(t, c.Store)
	assert.Nil(t, c.Publisher)

	records, err := c.Schedules.Courses(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, records, 5)
}

func TestNew_RequiresWorkbook(t *testing.T) {
	cfg := &config.Config{}
	cfg.SetDefaults()

	_, err := New(context.Background(), cfg, logging.Nop())
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestNew_SFTPNeedsUser(t *testing.T) {
	cfg := testConfig(t)
	cfg.SFTP.Host = "files.example.org"

	_, err := New(context.Background(), cfg, logging.Nop())
	assert.True(t, errors.HasCode(err, errors.CodeConfigInvalid))
}

func TestNew_SFTPConfigured(t *testing.T) {
	cfg := testConfig(t)
	cfg.SFTP.Host = "files.example.org"
	cfg.SFTP.User = "coordinacion"

	c, err := New(context.Background(), cfg, logging.Nop())
	require.NoError(t, err)
	defer c.Close()
	assert.NotNil(t, c.Publisher)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil, logging.Nop())
	assert.Error(t, err)
}
