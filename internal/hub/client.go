package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Default hub ports. The hub serves plain HTTP and TLS on different ports.
const (
	DefaultPort    = 47147
	DefaultTLSPort = 47148

	defaultTimeout = 10 * time.Second
)

// Config contains SimpleHub connection settings.
type Config struct {
	// Host is the hub's IP address or hostname.
	Host string

	// Port overrides the default port for the selected scheme. Zero
	// selects DefaultPort or DefaultTLSPort depending on TLS.
	Port int

	// TLS selects HTTPS on the hub's TLS port.
	TLS bool

	// Timeout bounds each request/response exchange. Zero selects a
	// 10 second default.
	Timeout time.Duration
}

// Client talks to the SimpleHub REST API.
//
// The hub connection is a scarce resource: every call opens a connection,
// performs one exchange, and closes it again. No connection is held between
// calls, so the client carries no state beyond its configuration and is safe
// for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a hub client for the given configuration.
//
// Parameters:
//   - cfg: Hub connection settings (host required)
//
// Returns:
//   - *Client: Configured client
//   - error: If the host is empty
func NewClient(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		return nil, ErrNoHost
	}

	scheme := "http"
	port := cfg.Port
	if cfg.TLS {
		scheme = "https"
		if port == 0 {
			port = DefaultTLSPort
		}
	} else if port == 0 {
		port = DefaultPort
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, port),
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				// One exchange per connection; never keep the hub's
				// scarce connection open between calls.
				DisableKeepAlives: true,
			},
		},
	}, nil
}

// ListActivities fetches every activity defined on the hub.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - []Activity: Activities in hub order
//   - error: ErrTransport, ErrProtocol, or ErrPayload on failure
func (c *Client) ListActivities(ctx context.Context) ([]Activity, error) {
	var reply envelope[Activity]
	if err := c.get(ctx, "/api/v1/activities", &reply); err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return reply.Data, nil
}

// ListDevices fetches every device known to the hub.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - []Device: Devices in hub order
//   - error: ErrTransport, ErrProtocol, or ErrPayload on failure
func (c *Client) ListDevices(ctx context.Context) ([]Device, error) {
	var reply envelope[Device]
	if err := c.get(ctx, "/api/v1/devices", &reply); err != nil {
		return nil, fmt.Errorf("listing devices: %w", err)
	}
	return reply.Data, nil
}

// RunActivity asks the hub to start the activity with the given identifier.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - activityID: Hub activity UUID (must be non-empty)
//
// Returns:
//   - error: ErrEmptyID for a missing identifier, otherwise
//     ErrTransport/ErrProtocol on failure
func (c *Client) RunActivity(ctx context.Context, activityID string) error {
	if activityID == "" {
		return fmt.Errorf("%w: activity UUID", ErrEmptyID)
	}
	body := runActivityRequest{ActivityUUID: activityID}
	if err := c.post(ctx, "/api/v1/runactivity", body); err != nil {
		return fmt.Errorf("running activity: %w", err)
	}
	return nil
}

// SendCommand sends a single remote-control command to a device.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - deviceID: Hub device UUID (must be non-empty)
//   - command: Command label from the device command catalogue
//     (e.g. "POWER ON")
//
// Returns:
//   - error: ErrEmptyID for a missing identifier, otherwise
//     ErrTransport/ErrProtocol on failure
func (c *Client) SendCommand(ctx context.Context, deviceID, command string) error {
	if deviceID == "" {
		return fmt.Errorf("%w: device UUID", ErrEmptyID)
	}
	body := sendCommandsRequest{
		Commands: []commandEntry{
			{
				Type: "command",
				Params: commandParams{
					Command: command,
					Device:  deviceID,
				},
			},
		},
	}
	if err := c.post(ctx, "/api/v1/sendcommands", body); err != nil {
		return fmt.Errorf("sending command: %w", err)
	}
	return nil
}

// get performs one GET exchange and decodes the JSON response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProtocol, res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrPayload, err)
	}
	return nil
}

// post performs one POST exchange with a JSON body, draining the response.
func (c *Client) post(ctx context.Context, path string, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%w: encoding request: %w", ErrPayload, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer res.Body.Close()

	// Drain so the connection can close cleanly.
	if _, err := io.Copy(io.Discard, res.Body); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrProtocol, res.StatusCode)
	}
	return nil
}
