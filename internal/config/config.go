package config

import (
	"io"
	"os"
	"time"

	"github.com/go-yaml/yaml"
	"github.com/pkg/errors"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Features Features `yaml:"features"`
}

type Server struct {
	ListenAddr      string   `yaml:"listenAddr"`
	PostgresDsn     string   `yaml:"postgresDsn"`
	RedisAddr       string   `yaml:"redisAddr"`
	RedisPassword   string   `yaml:"redisPassword"`
	RedisDB         int      `yaml:"redisDB"`
	MemcachedAddr   string   `yaml:"memcachedAddr"`
	EnableTrace     bool     `yaml:"enableTrace"`
	TraceEndpoint   string   `yaml:"traceEndpoint"`
	LogLevel        string   `yaml:"logLevel"`
	RequireAuth     bool     `yaml:"requireAuth"`
	TokenTTL        string   `yaml:"tokenTTL"`
	Clients         []string `yaml:"clients"`
	MaxOpenConns    int      `yaml:"maxOpenConns"`
	MaxIdleConns    int      `yaml:"maxIdleConns"`
	SlowQueryMillis int      `yaml:"slowQueryMillis"`
}

type Features struct {
	CacheTTL string `yaml:"cacheTTL"`
}

// TokenLifetime returns the parsed token ttl. Zero means tokens never expire.
func (s Server) TokenLifetime() (time.Duration, error) {
	if s.TokenTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.TokenTTL)
	return d, errors.Wrapf(err, "invalid tokenTTL %q", s.TokenTTL)
}

func (f Features) CacheLifetime() (time.Duration, error) {
	d, err := time.ParseDuration(f.CacheTTL)
	return d, errors.Wrapf(err, "invalid cacheTTL %q", f.CacheTTL)
}

func Default() Config {
	return Config{
		Server: Server{
			ListenAddr:      ":8000",
			PostgresDsn:     "host=localhost user=postgres password=postgres dbname=housing port=5432 sslmode=disable",
			RedisAddr:       "localhost:6379",
			MemcachedAddr:   "localhost:11211",
			TraceEndpoint:   "localhost:4318",
			LogLevel:        "info",
			Clients:         []string{"web", "ios", "android"},
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			SlowQueryMillis: 200,
		},
		Features: Features{
			CacheTTL: "5m",
		},
	}
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "open config")
	}
	defer file.Close()

	config := Default()
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decode config")
	}

	if _, err := config.Server.TokenLifetime(); err != nil {
		return Config{}, err
	}
	if _, err := config.Features.CacheLifetime(); err != nil {
		return Config{}, err
	}

	return config, nil
}
