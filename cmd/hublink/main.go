// SimpleHub Link - SimpleHub node server
//
// This is the main entry point for the SimpleHub Link service. It discovers
// rooms, activities and devices from a SimpleHub over its REST API, keeps
// the host's profile documents in step with the discovered topology, and
// relays commands between the host runtime and the hub.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/simplecontrol/hublink/migrations"

	"github.com/simplecontrol/hublink/internal/controller"
	"github.com/simplecontrol/hublink/internal/hub"
	"github.com/simplecontrol/hublink/internal/infrastructure/config"
	"github.com/simplecontrol/hublink/internal/infrastructure/database"
	"github.com/simplecontrol/hublink/internal/infrastructure/influxdb"
	"github.com/simplecontrol/hublink/internal/infrastructure/logging"
	"github.com/simplecontrol/hublink/internal/infrastructure/mqtt"
	"github.com/simplecontrol/hublink/internal/profile"
	"github.com/simplecontrol/hublink/internal/registry"
	"github.com/simplecontrol/hublink/internal/settings"
)

// Version information - set at build time via ldflags
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123"
var (
	version = "dev"     // Semantic version (e.g., "1.0.0")
	commit  = "unknown" // Git commit hash
	date    = "unknown" // Build date
)

// Default configuration file path
const defaultConfigPath = "configs/config.yaml"

func main() {
	// Create a context that cancels on interrupt signals (Ctrl+C, SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run is the actual application logic, separated from main for testability.
// Returning an error allows main to handle exit codes consistently.
//
// Parameters:
//   - ctx: Context for cancellation and shutdown signals
//
// Returns:
//   - error: nil on clean shutdown, or error describing failure
func run(ctx context.Context) error {
	// Use default logger until config is loaded
	log := logging.Default()
	log.Info("starting SimpleHub Link",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	// Load configuration
	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Info("configuration loaded", "path", configPath)

	// Reinitialise logger with config settings
	log = logging.New(cfg.Logging, version)
	log.Info("logger initialised",
		"level", cfg.Logging.Level,
		"format", cfg.Logging.Format,
	)

	// Open database
	db, err := database.Open(database.Config{
		Path:        cfg.Database.Path,
		WALMode:     cfg.Database.WALMode,
		BusyTimeout: cfg.Database.BusyTimeout,
	})
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database connected", "path", cfg.Database.Path)

	// Run migrations
	if migrateErr := db.Migrate(ctx); migrateErr != nil {
		return fmt.Errorf("running migrations: %w", migrateErr)
	}
	log.Info("database migrations complete")

	// Initialise node registry
	nodeRepo := registry.NewSQLiteRepository(db.DB)
	nodeRegistry := registry.NewRegistry(nodeRepo)
	nodeRegistry.SetLogger(log)

	if refreshErr := nodeRegistry.RefreshCache(ctx); refreshErr != nil {
		return fmt.Errorf("loading node registry: %w", refreshErr)
	}
	log.Info("node registry initialised", "nodes", nodeRegistry.Count())

	// Settings store shares the database
	flags := settings.NewStore(db.DB)

	// Hub client. A missing hub address is not fatal: the service comes up,
	// the controller raises an operator notice, and discovery waits until
	// hub.host is configured.
	var hubAPI controller.HubAPI
	if cfg.Hub.Host != "" {
		hubClient, hubErr := hub.NewClient(hub.Config{
			Host:    cfg.Hub.Host,
			Port:    cfg.Hub.Port,
			TLS:     cfg.Hub.UseSSL,
			Timeout: cfg.GetHubTimeout(),
		})
		if hubErr != nil {
			return fmt.Errorf("creating hub client: %w", hubErr)
		}
		hubAPI = hubClient
		log.Info("hub client ready",
			"host", cfg.Hub.Host,
			"tls", cfg.Hub.UseSSL,
		)
	} else {
		log.Warn("no hub address configured, discovery disabled until hub.host is set")
	}

	// Connect to MQTT broker
	mqttClient, err := mqtt.Connect(cfg.MQTT)
	if err != nil {
		return fmt.Errorf("connecting to MQTT: %w", err)
	}
	defer func() {
		log.Info("disconnecting from MQTT")
		if closeErr := mqttClient.Close(); closeErr != nil {
			log.Error("error closing MQTT", "error", closeErr)
		}
	}()
	mqttClient.SetLogger(log)
	log.Info("MQTT connected",
		"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
		"client_id", cfg.MQTT.Broker.ClientID,
	)

	// Connect to InfluxDB (optional). The zero-value client no-ops every
	// write, so the controller never guards telemetry calls.
	influxClient := &influxdb.Client{}
	if cfg.InfluxDB.Enabled {
		influxClient, err = influxdb.Connect(cfg.InfluxDB)
		if err != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", err)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)

		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
	} else {
		log.Info("InfluxDB disabled")
	}

	// Build the controller
	ctrl := controller.New(controller.Options{
		Hub:         hubAPI,
		Bus:         mqttClient,
		Nodes:       nodeRegistry,
		Flags:       flags,
		Writer:      profile.NewGenerator(cfg.Profile.Dir),
		Telemetry:   influxClient,
		Logger:      log,
		ProfileDir:  cfg.Profile.Dir,
		ArchivePath: cfg.Profile.Archive,
	})

	// Route node commands from the host to the controller
	qos := byte(cfg.MQTT.QoS)
	err = mqttClient.Subscribe(mqtt.Topics{}.AllNodeCommands(), qos, func(topic string, payload []byte) error {
		if cmdErr := ctrl.HandleNodeCommand(ctx, topic, payload); cmdErr != nil {
			log.Error("node command failed", "topic", topic, "error", cmdErr)
			return cmdErr
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("subscribing to node commands: %w", err)
	}
	log.Info("subscribed to node commands")

	// Verify all connections are healthy
	if err := healthCheck(ctx, db, mqttClient, cfg.InfluxDB.Enabled, influxClient); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	log.Info("all health checks passed")

	// Initial discovery. A hub that is down at boot is not fatal: the long
	// poll retries, and the host still sees the service online.
	if discoverErr := ctrl.Discover(ctx, false); discoverErr != nil {
		log.Error("initial discovery failed", "error", discoverErr)
	}

	log.Info("initialisation complete, entering poll loop",
		"short_poll", cfg.GetShortPoll(),
		"long_poll", cfg.GetLongPoll(),
	)

	// Blocks until the context is cancelled
	ctrl.Run(ctx, cfg.GetShortPoll(), cfg.GetLongPoll())

	log.Info("shutdown signal received, cleaning up")

	// Deferred Close() calls will run in reverse order:
	// 1. InfluxDB (if enabled)
	// 2. MQTT
	// 3. Database

	log.Info("SimpleHub Link stopped")
	return nil
}

// getConfigPath returns the configuration file path.
// Uses HUBLINK_CONFIG environment variable if set, otherwise default.
func getConfigPath() string {
	if path := os.Getenv("HUBLINK_CONFIG"); path != "" {
		return path
	}
	return defaultConfigPath
}

// healthCheck verifies all infrastructure connections are healthy.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - db: Database connection to check
//   - mqttClient: MQTT client to check
//   - influxEnabled: Whether InfluxDB is configured
//   - influxClient: InfluxDB client to check when enabled
//
// Returns:
//   - error: First health check failure, or nil if all healthy
func healthCheck(ctx context.Context, db *database.DB, mqttClient *mqtt.Client, influxEnabled bool, influxClient *influxdb.Client) error {
	if err := db.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := mqttClient.HealthCheck(ctx); err != nil {
		return fmt.Errorf("mqtt: %w", err)
	}

	if influxEnabled {
		if err := influxClient.HealthCheck(ctx); err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
	}

	// The hub itself is not health-checked at startup: discovery cycles
	// surface hub availability and retry on the long poll.

	return nil
}
