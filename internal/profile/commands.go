package profile

// Command is one entry of the global device command catalogue.
type Command struct {
	// Code is the 1-based command code used in the DCMD editor range and
	// the DCMD-<code> NLS lines.
	Code int

	// Label is the command string the hub accepts verbatim.
	Label string
}

// Catalog is an ordered device command catalogue. Order is the emission
// order of the DCMD-<code> lines, so it must stay sorted by code.
type Catalog []Command

// DeviceCommands returns the fixed catalogue of remote-control commands
// every SimpleHub device accepts.
//
// This table is a build-time constant, not derived from the hub: the host
// side (SEND_CMD value range, DCMD editor, NLS labels) and the hub side
// (SendCommand labels) both bind to it.
func DeviceCommands() Catalog {
	return Catalog{
		{1, "ENTER"},
		{2, "POWER ON"},
		{3, "POWER OFF"},
		{4, "POWER TOGGLE"},
		{5, "CHANNEL UP"},
		{6, "CHANNEL DOWN"},
		{7, "PAUSE"},
		{8, "PLAY"},
		{9, "RECORD"},
		{10, "DIGIT 0"},
		{11, "DIGIT 1"},
		{12, "DIGIT 2"},
		{13, "DIGIT 3"},
		{14, "DIGIT 4"},
		{15, "DIGIT 5"},
		{16, "DIGIT 6"},
		{17, "DIGIT 7"},
		{18, "DIGIT 8"},
		{19, "DIGIT 9"},
		{20, "STOP"},
		{21, "REVERSE"},
		{22, "FORWARD"},
		{23, "SKIP"},
		{24, "VOLUME UP"},
		{25, "VOLUME DOWN"},
	}
}

// Label resolves a command code to its hub command label.
func (c Catalog) Label(code int) (string, bool) {
	for _, cmd := range c {
		if cmd.Code == code {
			return cmd.Label, true
		}
	}
	return "", false
}

// Code resolves a hub command label back to its code.
func (c Catalog) Code(label string) (int, bool) {
	for _, cmd := range c {
		if cmd.Label == label {
			return cmd.Code, true
		}
	}
	return 0, false
}
