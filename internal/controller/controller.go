package controller

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/simplecontrol/hublink/internal/hub"
	"github.com/simplecontrol/hublink/internal/profile"
	"github.com/simplecontrol/hublink/internal/registry"
	"github.com/simplecontrol/hublink/internal/settings"
	"github.com/simplecontrol/hublink/internal/topology"
)

// ControllerAddress is the fixed host address of the service's own
// controller node. Room and device node addresses are derived from hub
// identifiers; the controller node has no hub-side entity.
const ControllerAddress = "simplehub"

// Discovery cycle states, tracked for logging and tests.
const (
	StateIdle                = "idle"
	StateFetchingActivities  = "fetching_activities"
	StateFetchingDevices     = "fetching_devices"
	StateGeneratingArtifacts = "generating_artifacts"
	StatePackaging           = "packaging"
	StateUploading           = "uploading"
	StateReconcilingNodes    = "reconciling_nodes"
)

// HubAPI is the hub operations the controller consumes.
// *hub.Client satisfies it.
type HubAPI interface {
	ListActivities(ctx context.Context) ([]hub.Activity, error)
	ListDevices(ctx context.Context) ([]hub.Device, error)
	RunActivity(ctx context.Context, activityID string) error
	SendCommand(ctx context.Context, deviceID, command string) error
}

// Bus is the host message link the controller publishes on.
// *mqtt.Client satisfies it.
type Bus interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
	PublishRetained(topic string, payload []byte) error
}

// NodeStore is the node registry surface consulted during reconciliation.
// *registry.Registry satisfies it.
type NodeStore interface {
	Has(address string) bool
	Get(address string) (*registry.Node, error)
	Register(ctx context.Context, node *registry.Node) error
}

// FlagStore persists the artifacts-up-to-date flag across restarts.
// *settings.Store satisfies it.
type FlagStore interface {
	GetBool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
}

// ProfileWriter renders the profile document tree for a topology.
// *profile.Generator satisfies it.
type ProfileWriter interface {
	Write(topo *topology.Topology) error
}

// Uploader pushes a packaged profile archive to the host. Optional: when
// absent, the host is expected to pick the archive up from the profile
// directory itself and the upload step reduces to the operator notice.
type Uploader interface {
	UploadProfile(ctx context.Context, archivePath string) error
}

// Telemetry records discovery and command metrics.
// *influxdb.Client satisfies it; its zero value no-ops, so the field is
// never nil-checked per call site.
type Telemetry interface {
	WriteDiscoveryMetrics(rooms, activities, devices int, duration time.Duration)
	WriteCommandMetric(address, command string, ok bool)
}

// Logger defines the logging interface used by the Controller.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Controller orchestrates discovery cycles and dispatches node commands.
//
// A cycle fetches activities then devices from the hub, merges them into
// the long-lived topology, regenerates and packages the profile documents
// when they are stale, and reconciles host nodes against the registry.
// Cycles are serialised by a mutex: the periodic poll and an explicit
// re-discover command never overlap.
type Controller struct {
	hub      HubAPI
	bus      Bus
	nodes    NodeStore
	flags    FlagStore
	writer   ProfileWriter
	uploader Uploader
	metrics  Telemetry
	logger   Logger

	topo        *topology.Topology
	catalog     profile.Catalog
	profileDir  string
	archivePath string

	// cycleMu serialises discovery cycles. Topology writes happen only
	// under it.
	cycleMu sync.Mutex

	// topoMu guards the topology maps. Command handlers run on bus
	// goroutines and read the topology while a scheduled cycle may be
	// ingesting into it, so ingestion takes the write lock and handlers
	// the read lock. cycleMu alone does not cover that pairing.
	topoMu sync.RWMutex

	// statusMu guards lastStatus, the most recent ST value published per
	// node address. The short poll republishes these.
	statusMu   sync.Mutex
	lastStatus map[string]int

	stateMu sync.RWMutex
	state   string
}

// Options carries the controller's collaborators and settings.
type Options struct {
	Hub        HubAPI
	Bus        Bus
	Nodes      NodeStore
	Flags      FlagStore
	Writer     ProfileWriter
	Uploader   Uploader // optional
	Telemetry  Telemetry
	Logger     Logger
	ProfileDir string

	// ArchivePath is where the packaged profile is written. Defaults to
	// ArchiveName inside ProfileDir.
	ArchivePath string
}

// New creates a Controller. Uploader and ArchivePath are optional; a nil
// Hub means no hub address is configured yet and discovery is refused
// with a notice until the service is restarted with one.
func New(opts Options) *Controller {
	archivePath := opts.ArchivePath
	if archivePath == "" {
		archivePath = filepath.Join(opts.ProfileDir, profile.ArchiveName)
	}
	return &Controller{
		hub:         opts.Hub,
		bus:         opts.Bus,
		nodes:       opts.Nodes,
		flags:       opts.Flags,
		writer:      opts.Writer,
		uploader:    opts.Uploader,
		metrics:     opts.Telemetry,
		logger:      opts.Logger,
		topo:        topology.New(),
		catalog:     profile.DeviceCommands(),
		profileDir:  opts.ProfileDir,
		archivePath: archivePath,
		lastStatus:  make(map[string]int),
		state:       StateIdle,
	}
}

// requireHub refuses work that needs the hub while no address is
// configured. First-run installs come up hub-less: the service stays
// online so the operator sees the notice and can set hub.host.
func (c *Controller) requireHub() error {
	if c.hub != nil {
		return nil
	}
	c.notice("Hub address not configured. Set hub.host and restart the service.")
	return ErrHubNotConfigured
}

// State returns the current discovery cycle state.
func (c *Controller) State() string {
	c.stateMu.RLock()
	defer c.stateMu.RUnlock()
	return c.state
}

func (c *Controller) setState(state string) {
	c.stateMu.Lock()
	c.state = state
	c.stateMu.Unlock()
	c.logger.Debug("cycle state", "state", state)
}

// Discover runs one discovery cycle.
//
// A hub failure while fetching aborts the cycle: the topology keeps the
// entries already merged (ingestion is per-record idempotent, so the next
// cycle converges), no artifacts are generated from the partial data, and
// the failure is surfaced as an operator notice as well as the returned
// error.
//
// Artifact generation, packaging and upload run only when the persisted
// up-to-date flag is clear. force clears it first, so an explicit
// re-discover always regenerates.
//
// Parameters:
//   - ctx: Context for hub calls and persistence
//   - force: Regenerate artifacts even if the persisted flag says current
//
// Returns:
//   - error: The first failure that aborted the cycle
func (c *Controller) Discover(ctx context.Context, force bool) error {
	c.cycleMu.Lock()
	defer c.cycleMu.Unlock()
	defer c.setState(StateIdle)

	if err := c.requireHub(); err != nil {
		return err
	}

	started := time.Now()

	if force {
		if err := c.flags.SetBool(ctx, settings.KeyProfileDone, false); err != nil {
			return fmt.Errorf("clearing profile flag: %w", err)
		}
	}

	c.setState(StateFetchingActivities)
	activities, err := c.hub.ListActivities(ctx)
	if err != nil {
		c.notice(fmt.Sprintf("Discovery failed fetching activities: %v", err))
		return fmt.Errorf("fetching activities: %w", err)
	}
	c.topoMu.Lock()
	err = c.topo.IngestActivities(activities)
	c.topoMu.Unlock()
	if err != nil {
		c.notice(fmt.Sprintf("Discovery failed: %v", err))
		return fmt.Errorf("ingesting activities: %w", err)
	}

	c.setState(StateFetchingDevices)
	devices, err := c.hub.ListDevices(ctx)
	if err != nil {
		c.notice(fmt.Sprintf("Discovery failed fetching devices: %v", err))
		return fmt.Errorf("fetching devices: %w", err)
	}
	c.topoMu.Lock()
	report := c.topo.IngestDevices(devices)
	c.topoMu.Unlock()
	for _, skipErr := range report.Skipped {
		c.logger.Warn("device skipped", "error", skipErr)
		c.notice(fmt.Sprintf("Device skipped during discovery: %v", skipErr))
	}

	if err := c.refreshArtifacts(ctx); err != nil {
		return err
	}

	c.setState(StateReconcilingNodes)
	if err := c.reconcileNodes(ctx); err != nil {
		return err
	}

	c.metrics.WriteDiscoveryMetrics(
		c.topo.RoomCount(), c.topo.ActivityCount(), c.topo.DeviceCount(),
		time.Since(started))
	c.logger.Info("discovery cycle complete",
		"rooms", c.topo.RoomCount(),
		"activities", c.topo.ActivityCount(),
		"devices", c.topo.DeviceCount(),
		"skipped", len(report.Skipped),
		"duration", time.Since(started))
	return nil
}

// refreshArtifacts regenerates, packages and uploads the profile documents
// if the persisted flag marks them stale.
func (c *Controller) refreshArtifacts(ctx context.Context) error {
	done, err := c.flags.GetBool(ctx, settings.KeyProfileDone)
	if err != nil {
		return fmt.Errorf("reading profile flag: %w", err)
	}
	if done {
		c.logger.Debug("profile documents current, skipping generation")
		return nil
	}

	c.setState(StateGeneratingArtifacts)
	if err := c.writer.Write(c.topo); err != nil {
		c.notice(fmt.Sprintf("Profile generation failed: %v", err))
		return fmt.Errorf("generating profile: %w", err)
	}

	c.setState(StatePackaging)
	archivePath := c.archivePath
	if err := profile.WriteArchive(c.profileDir, archivePath); err != nil {
		c.notice(fmt.Sprintf("Profile packaging failed: %v", err))
		return fmt.Errorf("packaging profile: %w", err)
	}

	c.setState(StateUploading)
	if c.uploader != nil {
		if err := c.uploader.UploadProfile(ctx, archivePath); err != nil {
			c.notice(fmt.Sprintf("Profile upload failed: %v", err))
			return fmt.Errorf("uploading profile: %w", err)
		}
	}

	if err := c.flags.SetBool(ctx, settings.KeyProfileDone, true); err != nil {
		return fmt.Errorf("persisting profile flag: %w", err)
	}
	c.notice("Profile updated. Restart the admin console to load the new documents.")
	c.logger.Info("profile documents regenerated", "archive", archivePath)
	return nil
}

// reconcileNodes creates host nodes for topology entries that do not yet
// have one. Addresses derive deterministically from hub identifiers, so
// entries surviving from earlier runs are found in the registry and left
// alone.
func (c *Controller) reconcileNodes(ctx context.Context) error {
	if err := c.ensureNode(ctx, &registry.Node{
		Address: ControllerAddress,
		Name:    "SimpleHub",
		NodeDef: "SMPLHUB",
		Primary: ControllerAddress,
	}); err != nil {
		return err
	}

	for _, room := range c.topo.RoomsByIndex() {
		address, err := registry.AddressFromID(room.UUID)
		if err != nil {
			c.logger.Warn("room has no usable address", "room", room.Name, "error", err)
			continue
		}
		if err := c.ensureNode(ctx, &registry.Node{
			Address: address,
			Name:    room.Name,
			NodeDef: fmt.Sprintf("ROOM%d", room.Index),
			Primary: ControllerAddress,
			HubID:   room.UUID,
		}); err != nil {
			return err
		}

		for _, dev := range room.Devices() {
			if dev.Type == topology.DeviceTypeVirtual {
				continue
			}
			devAddress, err := registry.AddressFromID(dev.UUID)
			if err != nil {
				c.logger.Warn("device has no usable address", "device", dev.Name, "error", err)
				continue
			}
			if err := c.ensureNode(ctx, &registry.Node{
				Address: devAddress,
				Name:    dev.Name,
				NodeDef: "DEVICE",
				Primary: ControllerAddress,
				HubID:   dev.UUID,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensureNode registers a node if its address is new and announces it on
// the bus. Already-registered addresses are left untouched.
func (c *Controller) ensureNode(ctx context.Context, node *registry.Node) error {
	if c.nodes.Has(node.Address) {
		return nil
	}
	if err := c.nodes.Register(ctx, node); err != nil {
		return fmt.Errorf("registering node %s: %w", node.Address, err)
	}
	c.logger.Info("node created",
		"address", node.Address,
		"nodedef", node.NodeDef,
		"name", node.Name)
	c.publishNodeStatus(node.Address, 0)
	return nil
}
