package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/simplecontrol/hublink/internal/infrastructure/mqtt"
	"github.com/simplecontrol/hublink/internal/registry"
)

// Host command names, as they arrive on node command topics.
const (
	CmdDiscover    = "DISCOVER"
	CmdSetActivity = "SET_ACTIVITY"
	CmdPowerOn     = "DON"
	CmdPowerOff    = "DOF"
	CmdPowerToggle = "PTOGGLE"
	CmdSendCommand = "SEND_CMD"
)

// Hub command labels for the power shortcuts. SEND_CMD goes through the
// catalogue instead.
var powerCommands = map[string]string{
	CmdPowerOn:     "POWER ON",
	CmdPowerOff:    "POWER OFF",
	CmdPowerToggle: "POWER TOGGLE",
}

// commandMessage is the payload of a node command topic.
type commandMessage struct {
	Cmd   string `json:"cmd"`
	Value *int   `json:"value,omitempty"`
}

// statusMessage is the retained payload of a node status topic. ST carries
// the node's last command value.
type statusMessage struct {
	ST int `json:"st"`
}

// noticeMessage is the payload of the operator notice topic.
type noticeMessage struct {
	Message string `json:"message"`
}

// HandleNodeCommand processes one message from a node command topic.
//
// The node address comes from the topic, the command and optional value
// from the JSON payload. Every outcome is observable: success publishes
// the node's new ST value, failure returns the error (logged and, for hub
// failures, surfaced as a notice). Handlers are never fire-and-forget.
//
// Parameters:
//   - ctx: Context for hub calls
//   - topic: The command topic the message arrived on
//   - payload: JSON commandMessage
//
// Returns:
//   - error: ErrUnknownNode, ErrUnknownCommand, ErrBadParameter, or a hub
//     failure
func (c *Controller) HandleNodeCommand(ctx context.Context, topic string, payload []byte) error {
	address, err := addressFromTopic(topic)
	if err != nil {
		return err
	}

	var msg commandMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("%w: %w", ErrBadParameter, err)
	}
	if msg.Cmd == "" {
		return fmt.Errorf("%w: missing cmd", ErrBadParameter)
	}

	c.logger.Debug("node command received", "address", address, "cmd", msg.Cmd)

	if address == ControllerAddress {
		return c.handleControllerCommand(ctx, msg)
	}

	node, err := c.nodes.Get(address)
	if err != nil {
		if errors.Is(err, registry.ErrNodeNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownNode, address)
		}
		return err
	}

	if node.NodeDef == "DEVICE" {
		return c.handleDeviceCommand(ctx, node, msg)
	}
	return c.handleRoomCommand(ctx, node, msg)
}

// handleControllerCommand processes commands addressed to the controller
// node itself.
func (c *Controller) handleControllerCommand(ctx context.Context, msg commandMessage) error {
	if msg.Cmd != CmdDiscover {
		return fmt.Errorf("%w: %s on controller node", ErrUnknownCommand, msg.Cmd)
	}
	c.logger.Info("re-discover requested")
	return c.Discover(ctx, true)
}

// handleRoomCommand resolves a SET_ACTIVITY value to the room's activity
// UUID and runs it on the hub.
func (c *Controller) handleRoomCommand(ctx context.Context, node *registry.Node, msg commandMessage) error {
	if msg.Cmd != CmdSetActivity {
		return fmt.Errorf("%w: %s on room node %s", ErrUnknownCommand, msg.Cmd, node.Address)
	}
	if msg.Value == nil {
		return fmt.Errorf("%w: SET_ACTIVITY requires a value", ErrBadParameter)
	}
	if err := c.requireHub(); err != nil {
		return err
	}

	// Resolve under the read lock and copy out before the hub call: a
	// scheduled discovery cycle may be ingesting into the same room.
	c.topoMu.RLock()
	room, ok := c.topo.Room(node.HubID)
	if !ok {
		c.topoMu.RUnlock()
		return fmt.Errorf("%w: room %s not in topology", ErrUnknownNode, node.Address)
	}
	roomName := room.Name
	activityID, ok := room.ActivityIDByIndex(*msg.Value)
	c.topoMu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: room %s has no activity %d", ErrBadParameter, roomName, *msg.Value)
	}

	err := c.hub.RunActivity(ctx, activityID)
	c.metrics.WriteCommandMetric(node.Address, msg.Cmd, err == nil)
	if err != nil {
		c.notice(fmt.Sprintf("Running activity failed in %s: %v", roomName, err))
		return fmt.Errorf("running activity: %w", err)
	}

	c.publishNodeStatus(node.Address, *msg.Value)
	return nil
}

// handleDeviceCommand maps a device command to its hub label and sends it.
func (c *Controller) handleDeviceCommand(ctx context.Context, node *registry.Node, msg commandMessage) error {
	var label string
	var status int

	switch msg.Cmd {
	case CmdPowerOn, CmdPowerOff, CmdPowerToggle:
		label = powerCommands[msg.Cmd]
		code, _ := c.catalog.Code(label)
		status = code
	case CmdSendCommand:
		if msg.Value == nil {
			return fmt.Errorf("%w: SEND_CMD requires a value", ErrBadParameter)
		}
		var ok bool
		label, ok = c.catalog.Label(*msg.Value)
		if !ok {
			return fmt.Errorf("%w: command code %d", ErrBadParameter, *msg.Value)
		}
		status = *msg.Value
	default:
		return fmt.Errorf("%w: %s on device node %s", ErrUnknownCommand, msg.Cmd, node.Address)
	}

	if err := c.requireHub(); err != nil {
		return err
	}

	err := c.hub.SendCommand(ctx, node.HubID, label)
	c.metrics.WriteCommandMetric(node.Address, msg.Cmd, err == nil)
	if err != nil {
		c.notice(fmt.Sprintf("Sending %s to %s failed: %v", label, node.Name, err))
		return fmt.Errorf("sending command: %w", err)
	}

	c.publishNodeStatus(node.Address, status)
	return nil
}

// addressFromTopic extracts the node address from a command topic
// (hublink/node/{address}/cmd).
func addressFromTopic(topic string) (string, error) {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[3] != "cmd" {
		return "", fmt.Errorf("%w: %s", ErrBadTopic, topic)
	}
	return parts[2], nil
}

// publishNodeStatus publishes a node's ST value, retained so the host sees
// current state on (re)connect. The value is also remembered so the short
// poll can republish it. Publish failures are logged, not returned: the
// hub command already succeeded and must not be reported as failed.
func (c *Controller) publishNodeStatus(address string, value int) {
	c.statusMu.Lock()
	c.lastStatus[address] = value
	c.statusMu.Unlock()

	payload, err := json.Marshal(statusMessage{ST: value})
	if err != nil {
		return
	}
	topic := mqtt.Topics{}.NodeStatus(address)
	if err := c.bus.PublishRetained(topic, payload); err != nil {
		c.logger.Warn("publishing node status failed", "address", address, "error", err)
	}
}

// notice publishes an operator notice. Best-effort: a broken bus must not
// mask the original failure.
func (c *Controller) notice(message string) {
	payload, err := json.Marshal(noticeMessage{Message: message})
	if err != nil {
		return
	}
	if err := c.bus.Publish(mqtt.Topics{}.Notice(), payload, 1, false); err != nil {
		c.logger.Warn("publishing notice failed", "error", err)
	}
}
