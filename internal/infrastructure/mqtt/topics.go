package mqtt

import "fmt"

// Topic prefixes for the SimpleHub Link MQTT scheme.
//
// The host runtime addresses nodes by their derived node address:
//
//	hublink/node/{address}/status  - retained node state (ST driver value)
//	hublink/node/{address}/cmd    - commands from the host to a node
//	hublink/notice                - operator notices
//	hublink/system/status         - service online/offline (LWT)
const (
	// TopicPrefix is the base for all SimpleHub Link topics.
	TopicPrefix = "hublink"

	// TopicPrefixNode is the base for per-node topics.
	TopicPrefixNode = "hublink/node"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "hublink/system"
)

// Topics provides builders for SimpleHub Link MQTT topics.
// Using these helpers ensures consistent topic naming across the codebase.
type Topics struct{}

// NodeStatus returns the retained status topic for a node.
//
// Example: hublink/node/livingroom1234/status
func (Topics) NodeStatus(address string) string {
	return fmt.Sprintf("%s/%s/status", TopicPrefixNode, address)
}

// NodeCommand returns the command topic for a node.
//
// Example: hublink/node/livingroom1234/cmd
func (Topics) NodeCommand(address string) string {
	return fmt.Sprintf("%s/%s/cmd", TopicPrefixNode, address)
}

// AllNodeCommands returns a pattern matching every node command topic.
//
// Pattern: hublink/node/+/cmd
func (Topics) AllNodeCommands() string {
	return fmt.Sprintf("%s/+/cmd", TopicPrefixNode)
}

// Notice returns the operator notice topic.
//
// Example: hublink/notice
func (Topics) Notice() string {
	return fmt.Sprintf("%s/notice", TopicPrefix)
}

// SystemStatus returns the service status topic (online/offline, LWT).
//
// Example: hublink/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
