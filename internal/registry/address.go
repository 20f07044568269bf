package registry

import "strings"

// maxAddressLen is the host's node address length limit.
const maxAddressLen = 14

// AddressFromID derives a host node address from a hub identifier.
//
// The host only accepts short lowercase alphanumeric addresses, so the
// identifier is lowercased, stripped of every other character (dashes in
// UUIDs, separators, whitespace) and truncated.
//
// The derivation is deterministic: the same hub identifier always yields
// the same address, which is what lets reconciliation recognise nodes
// created in earlier runs. Truncation makes collisions possible in theory;
// hub UUIDs carry enough leading entropy that this has not been a problem
// in practice.
//
// Parameters:
//   - id: Hub identifier (room or device UUID)
//
// Returns:
//   - string: The derived address
//   - error: ErrEmptyAddress if nothing survives the stripping
func AddressFromID(id string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if b.Len() == maxAddressLen {
			break
		}
	}
	if b.Len() == 0 {
		return "", ErrEmptyAddress
	}
	return b.String(), nil
}
