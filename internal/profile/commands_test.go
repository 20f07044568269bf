package profile

import "testing"

func TestDeviceCommands(t *testing.T) {
	catalog := DeviceCommands()

	if len(catalog) != 25 {
		t.Fatalf("len(DeviceCommands()) = %d, want 25", len(catalog))
	}
	for i, cmd := range catalog {
		if cmd.Code != i+1 {
			t.Errorf("catalog[%d].Code = %d, want %d", i, cmd.Code, i+1)
		}
	}
}

func TestCatalogLabel(t *testing.T) {
	catalog := DeviceCommands()

	tests := []struct {
		code  int
		want  string
		found bool
	}{
		{1, "ENTER", true},
		{10, "DIGIT 0", true},
		{25, "VOLUME DOWN", true},
		{0, "", false},
		{26, "", false},
	}

	for _, tt := range tests {
		got, ok := catalog.Label(tt.code)
		if ok != tt.found || got != tt.want {
			t.Errorf("Label(%d) = %q, %v; want %q, %v", tt.code, got, ok, tt.want, tt.found)
		}
	}
}
