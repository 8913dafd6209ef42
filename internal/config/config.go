// Package config handles application configuration loading from a YAML file and environment variables.
package config

import (
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	contextutils "lazverb/internal/utils"
)

// ConfigFileEnv names the environment variable holding the config file path
const ConfigFileEnv = "LAZVERB_CONFIG_FILE"

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig        `json:"server" yaml:"server"`
	Dictionary    DictionaryConfig    `json:"dictionary" yaml:"dictionary"`
	Database      DatabaseConfig      `json:"database" yaml:"database"`
	OpenTelemetry OpenTelemetryConfig `json:"open_telemetry" yaml:"open_telemetry"`

	// Internal fields
	IsTest bool `json:"is_test" yaml:"is_test"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Port          string   `json:"port" yaml:"port"`
	SessionSecret string   `json:"session_secret" yaml:"session_secret"`
	Debug         bool     `json:"debug" yaml:"debug"`
	LogLevel      string   `json:"log_level" yaml:"log_level"`
	CORSOrigins   []string `json:"cors_origins" yaml:"cors_origins"`
	// RequestTimeout bounds a single conjugation request
	RequestTimeout time.Duration `json:"request_timeout" yaml:"request_timeout"`
}

// DictionaryConfig controls where verb tables are loaded from
type DictionaryConfig struct {
	// Paths are doublestar glob patterns over .csv and .json files
	Paths []string `json:"paths" yaml:"paths"`
	// IncludeDefault loads the embedded tables before Paths
	IncludeDefault *bool `json:"include_default,omitempty" yaml:"include_default,omitempty"`
	// Watch reloads the dictionary when a matched file changes
	Watch         bool     `json:"watch" yaml:"watch"`
	NoObjectVerbs []string `json:"no_object_verbs" yaml:"no_object_verbs"`
}

// IncludesDefault reports whether the embedded tables are loaded, which is the default
func (d DictionaryConfig) IncludesDefault() bool {
	return d.IncludeDefault == nil || *d.IncludeDefault
}

// OpenTelemetryConfig holds all OpenTelemetry-related configuration
type OpenTelemetryConfig struct {
	Endpoint       string            `json:"endpoint" yaml:"endpoint"`               // Default: "localhost:4317"
	Protocol       string            `json:"protocol" yaml:"protocol"`               // "grpc" or "http", default: "grpc"
	Insecure       bool              `json:"insecure" yaml:"insecure"`               // Default: true (for localhost)
	Headers        map[string]string `json:"headers" yaml:"headers"`                 // For authenticated endpoints
	ServiceName    string            `json:"service_name" yaml:"service_name"`       // Default: "lazverb"
	ServiceVersion string            `json:"service_version" yaml:"service_version"` // From version package
	EnableTracing  bool              `json:"enable_tracing" yaml:"enable_tracing"`
	EnableMetrics  bool              `json:"enable_metrics" yaml:"enable_metrics"`
	EnableLogging  bool              `json:"enable_logging" yaml:"enable_logging"`
	UseAutoSDK     bool              `json:"use_auto_sdk" yaml:"use_auto_sdk"`
	SamplingRate   float64           `json:"sampling_rate" yaml:"sampling_rate"` // Default: 1.0
}

// DatabaseConfig represents the verb catalog database
type DatabaseConfig struct {
	// URL is a postgres:// URL or a sqlite file path (sqlite:// prefix optional)
	URL             string        `json:"url" yaml:"url"`
	MaxOpenConns    int           `json:"max_open_conns" yaml:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns" yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" yaml:"conn_max_lifetime"`
}

// NewConfig loads configuration from YAML file first, then overrides with environment variables
func NewConfig() (*Config, error) {
	config, err := loadConfigWithOverrides()
	if err != nil {
		return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to load config: %w", err)
	}

	config.overrideFromEnv()
	config.applyDefaults()

	return config, nil
}

// Default returns a configuration with every default applied and no file loaded
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultPort
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.RequestTimeout <= 0 {
		c.Server.RequestTimeout = DefaultRequestTimeout
	}
	if c.Server.SessionSecret == "" {
		c.Server.SessionSecret = DefaultSessionSecret
	}
	if c.Database.URL == "" {
		c.Database.URL = DefaultDatabaseURL
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime <= 0 {
		c.Database.ConnMaxLifetime = DatabaseConnMaxLifetime
	}
	if c.OpenTelemetry.ServiceName == "" {
		c.OpenTelemetry.ServiceName = DefaultServiceName
	}
	if c.OpenTelemetry.Protocol == "" {
		c.OpenTelemetry.Protocol = "grpc"
	}
	if c.OpenTelemetry.SamplingRate == 0 {
		c.OpenTelemetry.SamplingRate = 1.0
	}
}

// overrideFromEnv overrides config values with environment variables using reflection
func (c *Config) overrideFromEnv() {
	overrideStructFromEnv(c, "")
}

func envName(prefix, tag string) string {
	name := strings.ToUpper(strings.ReplaceAll(tag, "-", "_"))
	if prefix != "" {
		return prefix + "_" + name
	}
	return name
}

// overrideStructFromEnv walks the struct and replaces fields whose SECTION_FIELD variable is set.
// Nested structs extend the prefix with their yaml tag.
func overrideStructFromEnv(v interface{}, prefix string) {
	val := reflect.ValueOf(v)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		if !field.CanSet() {
			continue
		}
		tag := strings.Split(typ.Field(i).Tag.Get("yaml"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		key := envName(prefix, tag)

		if field.Kind() == reflect.Struct {
			overrideStructFromEnv(field.Addr().Interface(), key)
			continue
		}
		envVal, ok := os.LookupEnv(key)
		if !ok || envVal == "" {
			continue
		}
		setFromString(field, envVal)
	}
}

func setFromString(field reflect.Value, envVal string) {
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		if d, err := time.ParseDuration(envVal); err == nil {
			field.SetInt(int64(d))
		}
		return
	}
	switch field.Kind() {
	case reflect.String:
		field.SetString(envVal)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if intVal, err := strconv.ParseInt(envVal, 10, 64); err == nil {
			field.SetInt(intVal)
		}
	case reflect.Float32, reflect.Float64:
		if floatVal, err := strconv.ParseFloat(envVal, 64); err == nil {
			field.SetFloat(floatVal)
		}
	case reflect.Bool:
		if boolVal, err := strconv.ParseBool(envVal); err == nil {
			field.SetBool(boolVal)
		}
	case reflect.Ptr:
		if field.Type().Elem().Kind() == reflect.Bool {
			if boolVal, err := strconv.ParseBool(envVal); err == nil {
				field.Set(reflect.ValueOf(&boolVal))
			}
		}
	case reflect.Slice:
		// comma separated, e.g. SERVER_CORS_ORIGINS or DICTIONARY_PATHS
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(envVal, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			field.Set(reflect.ValueOf(parts))
		}
	}
}

// loadConfigWithOverrides loads the file named by LAZVERB_CONFIG_FILE, else config.yaml. A missing
// default file is not an error.
func loadConfigWithOverrides() (*Config, error) {
	if envPath := os.Getenv(ConfigFileEnv); envPath != "" {
		config, err := loadConfigFromFile(envPath)
		if err != nil {
			return nil, contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to load config from %s: %w", envPath, err)
		}
		return config, nil
	}

	config, err := loadConfigFromFile("config.yaml")
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	return config, err
}

func loadConfigFromFile(path string) (*Config, error) {
	yamlFile, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(yamlFile, &config); err != nil {
		return nil, err
	}
	return &config, nil
}
