// Package mqtt provides MQTT client connectivity for SimpleHub Link.
//
// This package manages:
//   - Connection to the host runtime's broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//
// # Architecture
//
// SimpleHub Link sits on the host controller's message bus. The host sends
// node commands (re-discover, run activity, device power commands) on
// hublink/node/{address}/cmd; the service publishes retained node status
// on hublink/node/{address}/status, operator notices on hublink/notice, and
// its own online/offline state on hublink/system/status.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.Subscribe(mqtt.Topics{}.AllNodeCommands(), 1, handler)
package mqtt
