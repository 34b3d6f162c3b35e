package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	coremetrics "github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/metrics"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/core/search"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/infra/mongo"
	"github.com/ItsEgzix/EGZIX-Content-based-filtering-algo/infra/mqtt"
)

// Config is the root configuration of the search service.
type Config struct {
	HTTP    HTTPConfig         `json:"http"`
	Storage StorageConfig      `json:"storage"`
	Search  search.Config      `json:"search"`
	MQTT    mqtt.Config        `json:"mqtt"`
	Metrics coremetrics.Config `json:"metrics"`
}

// HTTPConfig defines the listener of the search API.
type HTTPConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *HTTPConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// StorageConfig selects the inventory/history backend.
type StorageConfig struct {
	// Backend is "memory" or "mongo".
	Backend string       `json:"backend"`
	Mongo   mongo.Config `json:"mongo"`
}

// SetDefaults applies sane defaults.
func (c *StorageConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	c.Mongo.SetDefaults()
}

// Validate checks mandatory fields.
func (c StorageConfig) Validate() error {
	if c.Backend != "memory" && c.Backend != "mongo" {
		return fmt.Errorf("unknown storage backend %s", c.Backend)
	}
	return nil
}

// Load reads the configuration file and applies environment overrides with
// the RS_ prefix, e.g. RS_HTTP__ADDR=:9000.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("RS_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rs_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.HTTP.SetDefaults()
	cfg.Storage.SetDefaults()
	cfg.Search.SetDefaults()
	cfg.MQTT.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Storage.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Search.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
