// Package config loads bloom's TOML configuration file.
//
// The file is optional. When it is missing the defaults apply; command-line
// flags override whatever the file sets.
//
//	[server]
//	addr = "localhost:8080"
//	allowed_origins = ["http://localhost:3000"]
//
//	[store]
//	backend = "redis"
//	ttl = "24h"
//
//	[redis]
//	addr = "localhost:6379"
package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/bloom/pkg/errors"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendSQLite = "sqlite"
)

// Cache backends for derived artifacts.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

// Config is the complete configuration.
type Config struct {
	Server ServerConfig `toml:"server"`
	Store  StoreConfig  `toml:"store"`
	Redis  RedisConfig  `toml:"redis"`
	Mongo  MongoConfig  `toml:"mongo"`
	SQLite SQLiteConfig `toml:"sqlite"`
	Editor EditorConfig `toml:"editor"`
}

// ServerConfig configures `bloom serve`.
type ServerConfig struct {
	Addr           string   `toml:"addr" validate:"required,hostname_port"`
	AllowedOrigins []string `toml:"allowed_origins" validate:"dive,required"`
	CookieName     string   `toml:"cookie_name" validate:"required,cookie_name"`
}

// StoreConfig selects where sessions are kept.
type StoreConfig struct {
	Backend string   `toml:"backend" validate:"oneof=memory file redis mongo sqlite"`
	Dir     string   `toml:"dir"` // file backend; empty means the default directory
	TTL     Duration `toml:"ttl" validate:"gte=0"`
}

// RedisConfig is shared by the redis session store and the redis cache.
type RedisConfig struct {
	Addr     string `toml:"addr" validate:"omitempty,hostname_port"`
	Password string `toml:"password"`
	DB       int    `toml:"db" validate:"gte=0,lte=15"`
}

// MongoConfig configures the mongo session store.
type MongoConfig struct {
	URI        string `toml:"uri" validate:"omitempty,uri"`
	Database   string `toml:"database" validate:"required"`
	Collection string `toml:"collection" validate:"required"`
}

// SQLiteConfig configures the sqlite session store.
type SQLiteConfig struct {
	Path string `toml:"path"` // empty means sessions.db in the default directory
}

// EditorConfig configures document handling.
type EditorConfig struct {
	Strict   bool   `toml:"strict"`
	Cache    string `toml:"cache" validate:"oneof=none memory file redis"`
	CacheDir string `toml:"cache_dir"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:       "localhost:8080",
			CookieName: "bloom_session",
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			TTL:     Duration(24 * time.Hour),
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "bloom",
			Collection: "sessions",
		},
		Editor: EditorConfig{
			Cache: CacheMemory,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/bloom/config.toml (or the platform
// equivalent).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bloom", "config.toml"), nil
}

// Load reads the file at path over the defaults and validates the result.
// An empty path loads [DefaultPath], which may be absent; an explicit path
// must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML from data over the defaults and validates the result.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parsing config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and cross-section requirements.
func (c *Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return convertValidationError(err)
	}

	var problems []string
	usesRedis := c.Store.Backend == BackendRedis || c.Editor.Cache == CacheRedis
	if usesRedis && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is used")
	}
	if c.Store.Backend == BackendMongo && c.Mongo.URI == "" {
		problems = append(problems, "mongo.uri is required for the mongo backend")
	}
	if len(problems) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// SessionTTL returns the configured session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Store.TTL)
}

// Duration is a time.Duration read from a TOML string such as "90m".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.Split(f.Tag.Get("toml"), ",")[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("cookie_name", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s != "" && !strings.ContainsAny(s, " \t\r\n;,=\"")
		})
		validateInst = v
	})
	return validateInst
}

func convertValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid config")
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errors.New(errors.ErrCodeInvalidInput, "invalid config: %s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	// Namespace is "Config.server.addr"; drop the root type.
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "hostname_port":
		return field + " must be host:port"
	case "uri":
		return field + " must be a URI"
	case "gte", "lte":
		return field + " is out of range"
	case "cookie_name":
		return field + " is not a valid cookie name"
	default:
		return field + " failed " + fe.Tag()
	}
}
