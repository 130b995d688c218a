package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/matst80/slask-view/pkg/common"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix   = "SLASKVIEW_"
	DefaultFile = "slask-view.yaml"
)

type RedisConfig struct {
	Addr     string        `koanf:"addr"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"`
	TTL      time.Duration `koanf:"ttl"`
}

type RabbitConfig struct {
	Url string `koanf:"url"`
}

type LogConfig struct {
	Level string `koanf:"level"`
	JSON  bool   `koanf:"json"`
}

type Config struct {
	Listen      string               `koanf:"listen"`
	DebugListen string               `koanf:"debug_listen"`
	Profiling   bool                 `koanf:"profiling"`
	DataFile    string               `koanf:"data_file"`
	PageSize    int                  `koanf:"page_size"`
	Country     string               `koanf:"country"`
	Redis       RedisConfig          `koanf:"redis"`
	Rabbit      RabbitConfig         `koanf:"rabbit"`
	Log         LogConfig            `koanf:"log"`
	Timeouts    common.TimeoutConfig `koanf:"timeouts"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

func defaults() map[string]any {
	return map[string]any{
		"listen":               ":8080",
		"debug_listen":         ":8081",
		"profiling":            false,
		"data_file":            "data/products.json",
		"page_size":            10,
		"country":              "se",
		"redis.db":             0,
		"redis.ttl":            5 * time.Minute,
		"log.level":            "info",
		"log.json":             false,
		"timeouts.read_header": 5 * time.Second,
		"timeouts.read":        15 * time.Second,
		"timeouts.write":       30 * time.Second,
		"timeouts.idle":        60 * time.Second,
		"timeouts.shutdown":    15 * time.Second,
		"timeouts.hook":        5 * time.Second,
	}
}

// flagKeys maps flag names onto nested config keys.
var flagKeys = map[string]string{
	"log-level":      "log.level",
	"log-json":       "log.json",
	"redis-addr":     "redis.addr",
	"redis-password": "redis.password",
	"rabbit-url":     "rabbit.url",
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default "+DefaultFile+" when present)")
	fs.String("listen", "", "http listen address")
	fs.String("data-file", "", "json or csv file with the records")
	fs.Int("page-size", 0, "items per page")
	fs.String("country", "", "country used for storage and tracking")
	fs.String("log-level", "", "debug, info, warn or error")
	fs.Bool("log-json", false, "log as json")
	fs.String("redis-addr", "", "redis address for the record cache")
	fs.String("redis-password", "", "redis password")
	fs.String("rabbit-url", "", "amqp url for tracking and catalog events")
	fs.Bool("profiling", false, "enable profiling endpoints")
}

// Load layers defaults, the yaml file, SLASKVIEW_ environment variables and
// explicitly set flags, in increasing priority. Nested keys use a double
// underscore in the environment: SLASKVIEW_REDIS__ADDR sets redis.addr.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, errors.Wrapf(err, "failed to load defaults")
	}

	if cfgFile == "" && flags != nil {
		cfgFile, _ = flags.GetString("config")
	}
	if cfgFile == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			cfgFile = DefaultFile
		}
	}
	if cfgFile != "" {
		if err := k.Load(file.Provider(cfgFile), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "error reading config file %s", cfgFile)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrapf(err, "failed to load env vars")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrapf(err, "failed to load flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrapf(err, "unable to decode config")
	}
	cfg.File = cfgFile
	return &cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
