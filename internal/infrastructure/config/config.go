package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for SimpleHub Link.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Hub      HubConfig      `yaml:"hub"`
	Database DatabaseConfig `yaml:"database"`
	MQTT     MQTTConfig     `yaml:"mqtt"`
	InfluxDB InfluxDBConfig `yaml:"influxdb"`
	Profile  ProfileConfig  `yaml:"profile"`
	Poll     PollConfig     `yaml:"poll"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServiceConfig contains service identity information.
type ServiceConfig struct {
	Name string `yaml:"name"`
}

// HubConfig contains SimpleHub connection settings.
//
// UseSSL is a true boolean: only a value of true selects TLS. The hub
// exposes plain HTTP on 47147 and TLS on 47148; when Port is 0 the
// default for the selected scheme is used.
type HubConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	UseSSL  bool   `yaml:"use_ssl"`
	Timeout int    `yaml:"timeout"` // seconds per request/response exchange
}

// DatabaseConfig contains SQLite database settings.
type DatabaseConfig struct {
	Path        string `yaml:"path"`
	WALMode     bool   `yaml:"wal_mode"`
	BusyTimeout int    `yaml:"busy_timeout"`
}

// MQTTConfig contains MQTT broker connection settings for the host runtime link.
type MQTTConfig struct {
	Broker    MQTTBrokerConfig    `yaml:"broker"`
	Auth      MQTTAuthConfig      `yaml:"auth"`
	QoS       int                 `yaml:"qos"`
	Reconnect MQTTReconnectConfig `yaml:"reconnect"`
}

// MQTTBrokerConfig contains MQTT broker connection details.
type MQTTBrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	TLS      bool   `yaml:"tls"`
	ClientID string `yaml:"client_id"`
}

// MQTTAuthConfig contains MQTT authentication credentials.
type MQTTAuthConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// MQTTReconnectConfig contains MQTT reconnection settings.
type MQTTReconnectConfig struct {
	InitialDelay int `yaml:"initial_delay"`
	MaxDelay     int `yaml:"max_delay"`
	MaxAttempts  int `yaml:"max_attempts"`
}

// InfluxDBConfig contains InfluxDB connection settings for discovery telemetry.
type InfluxDBConfig struct {
	Enabled       bool   `yaml:"enabled"`
	URL           string `yaml:"url"`
	Token         string `yaml:"token"`
	Org           string `yaml:"org"`
	Bucket        string `yaml:"bucket"`
	BatchSize     int    `yaml:"batch_size"`
	FlushInterval int    `yaml:"flush_interval"`
}

// ProfileConfig contains profile document output settings.
type ProfileConfig struct {
	// Dir is the root directory the nls/nodedef/editor tree is written under.
	Dir string `yaml:"dir"`

	// Archive is the path of the generated profile archive.
	Archive string `yaml:"archive"`
}

// PollConfig contains polling intervals.
type PollConfig struct {
	// Short is the node status refresh interval (seconds).
	Short int `yaml:"short"`

	// Long is the full discovery cycle interval (seconds).
	Long int `yaml:"long"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: HUBLINK_SECTION_KEY
// For example: HUBLINK_HUB_HOST, HUBLINK_DATABASE_PATH
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	// Start with defaults
	cfg := defaultConfig()

	// Read and parse YAML file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Name: "hublink",
		},
		Hub: HubConfig{
			Timeout: 10,
		},
		Database: DatabaseConfig{
			Path:        "./data/hublink.db",
			WALMode:     true,
			BusyTimeout: 5,
		},
		MQTT: MQTTConfig{
			Broker: MQTTBrokerConfig{
				Host:     "localhost",
				Port:     1883,
				ClientID: "hublink",
			},
			QoS: 1,
			Reconnect: MQTTReconnectConfig{
				InitialDelay: 1,
				MaxDelay:     60,
				MaxAttempts:  0,
			},
		},
		Profile: ProfileConfig{
			Dir:     "./profile",
			Archive: "./profile.zip",
		},
		Poll: PollConfig{
			Short: 30,
			Long:  300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: HUBLINK_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	// Hub
	if v := os.Getenv("HUBLINK_HUB_HOST"); v != "" {
		cfg.Hub.Host = v
	}
	if v := os.Getenv("HUBLINK_HUB_USE_SSL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Hub.UseSSL = b
		}
	}

	// Database
	if v := os.Getenv("HUBLINK_DATABASE_PATH"); v != "" {
		cfg.Database.Path = v
	}

	// MQTT
	if v := os.Getenv("HUBLINK_MQTT_HOST"); v != "" {
		cfg.MQTT.Broker.Host = v
	}
	if v := os.Getenv("HUBLINK_MQTT_USERNAME"); v != "" {
		cfg.MQTT.Auth.Username = v
	}
	if v := os.Getenv("HUBLINK_MQTT_PASSWORD"); v != "" {
		cfg.MQTT.Auth.Password = v
	}

	// InfluxDB
	if v := os.Getenv("HUBLINK_INFLUXDB_TOKEN"); v != "" {
		cfg.InfluxDB.Token = v
	}
}

// Validate checks the configuration for errors.
//
// The hub host is deliberately not required: the service starts without one
// and raises an operator notice instead, matching the first-run flow where
// the hub address has not been configured yet.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Service.Name == "" {
		errs = append(errs, "service.name is required")
	}

	if c.Hub.Port < 0 || c.Hub.Port > 65535 {
		errs = append(errs, "hub.port must be between 0 and 65535")
	}
	if c.Hub.Timeout <= 0 {
		errs = append(errs, "hub.timeout must be positive")
	}

	if c.Database.Path == "" {
		errs = append(errs, "database.path is required")
	}

	if c.MQTT.QoS < 0 || c.MQTT.QoS > 2 {
		errs = append(errs, "mqtt.qos must be 0, 1, or 2")
	}

	if c.Profile.Dir == "" {
		errs = append(errs, "profile.dir is required")
	}
	if c.Profile.Archive == "" {
		errs = append(errs, "profile.archive is required")
	}

	if c.Poll.Short <= 0 || c.Poll.Long <= 0 {
		errs = append(errs, "poll.short and poll.long must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetHubTimeout returns the hub request timeout as a Duration.
func (c *Config) GetHubTimeout() time.Duration {
	return time.Duration(c.Hub.Timeout) * time.Second
}

// GetShortPoll returns the node status refresh interval as a Duration.
func (c *Config) GetShortPoll() time.Duration {
	return time.Duration(c.Poll.Short) * time.Second
}

// GetLongPoll returns the discovery cycle interval as a Duration.
func (c *Config) GetLongPoll() time.Duration {
	return time.Duration(c.Poll.Long) * time.Second
}
