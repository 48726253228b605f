package internal

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/tuannm99/tupledesc/internal/catalog"
	"github.com/tuannm99/tupledesc/internal/record"
	"github.com/tuannm99/tupledesc/internal/types"
)

type ColumnConfig struct {
	Name string `mapstructure:"name"`
	Type string `mapstructure:"type"`
}

type TableConfig struct {
	Name    string         `mapstructure:"name"`
	Columns []ColumnConfig `mapstructure:"columns"`
}

type Config struct {
	AppName string `mapstructure:"app_name"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // text | json
	} `mapstructure:"log"`

	Catalog struct {
		Tables []TableConfig `mapstructure:"tables"`
	} `mapstructure:"catalog"`
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("app_name", "tupledesc")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Logger builds the slog logger described by the log section.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Log.Format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("log format: unsupported %q", c.Log.Format)
	}
}

// Bootstrap creates the configured tables in cat.
func (c *Config) Bootstrap(cat *catalog.Catalog) error {
	for _, tc := range c.Catalog.Tables {
		ts := make([]types.Type, len(tc.Columns))
		names := make([]string, len(tc.Columns))
		for i, col := range tc.Columns {
			t, err := types.Parse(col.Type)
			if err != nil {
				return fmt.Errorf("table %s column %s: %w", tc.Name, col.Name, err)
			}
			ts[i] = t
			names[i] = col.Name
		}

		desc, err := record.New(ts, names)
		if err != nil {
			return fmt.Errorf("table %s: %w", tc.Name, err)
		}
		if _, err := cat.Create(tc.Name, desc); err != nil {
			return err
		}
	}
	return nil
}
