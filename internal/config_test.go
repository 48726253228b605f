package internal

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuannm99/tupledesc/internal/catalog"
	"github.com/tuannm99/tupledesc/internal/types"
)

const testConfig = `
app_name: shapes
log:
  level: debug
  format: json
catalog:
  tables:
    - name: users
      columns:
        - {name: id, type: INT}
        - {name: name, type: TEXT}
    - name: events
      columns:
        - {name: at, type: BIGINT}
        - {name: ok, type: bool}
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "shapes", cfg.AppName)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	require.Len(t, cfg.Catalog.Tables, 2)
	assert.Equal(t, "users", cfg.Catalog.Tables[0].Name)
	assert.Equal(t, ColumnConfig{Name: "name", Type: "TEXT"}, cfg.Catalog.Tables[0].Columns[1])
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "catalog:\n  tables: []\n"))
	require.NoError(t, err)

	assert.Equal(t, "tupledesc", cfg.AppName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestBootstrap(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, testConfig))
	require.NoError(t, err)

	cat := catalog.New()
	require.NoError(t, cfg.Bootstrap(cat))
	assert.Equal(t, []string{"events", "users"}, cat.Tables())

	tm, err := cat.Lookup("events")
	require.NoError(t, err)
	typ, err := tm.Desc.FieldType(0)
	require.NoError(t, err)
	assert.Equal(t, types.Int64, typ)
	assert.Equal(t, 9, tm.Desc.Size())

	// running it twice collides with the existing tables
	require.ErrorIs(t, cfg.Bootstrap(cat), catalog.ErrTableExists)
}

func TestBootstrap_BadColumnType(t *testing.T) {
	cfg := &Config{}
	cfg.Catalog.Tables = []TableConfig{{
		Name:    "t",
		Columns: []ColumnConfig{{Name: "x", Type: "UUID"}},
	}}
	require.ErrorIs(t, cfg.Bootstrap(catalog.New()), types.ErrUnknownType)
}

func TestLogger(t *testing.T) {
	cfg := &Config{}
	cfg.Log.Level = "warn"
	cfg.Log.Format = "json"

	var buf bytes.Buffer
	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	cfg.Log.Format = "xml"
	_, err = cfg.Logger(&buf)
	require.Error(t, err)

	cfg.Log.Format = "text"
	cfg.Log.Level = "loud"
	_, err = cfg.Logger(&buf)
	require.Error(t, err)
}
