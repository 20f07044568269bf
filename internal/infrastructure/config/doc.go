// Package config handles loading and validating SimpleHub Link configuration.
//
// This package manages:
//   - Loading configuration from YAML files
//   - Overriding with environment variables
//   - Validation of required fields
//   - Default value handling
//
// Security Considerations:
//   - Sensitive values (MQTT credentials, InfluxDB tokens) should be set via
//     environment variables
//   - The config file should have restricted permissions (0600)
//
// A note on hub.use_ssl: earlier deployments treated the mere presence of the
// parameter as "use TLS", regardless of its value. Here it is a real boolean;
// set it to true for TLS (port 47148) or false for plain HTTP (port 47147).
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Hub.Host)
package config
