package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/simplecontrol/hublink/internal/hub"
	"github.com/simplecontrol/hublink/internal/topology"
)

// testTopology builds a two-room home: Lounge with two activities,
// Kitchen with three.
func testTopology(t *testing.T) *topology.Topology {
	t.Helper()

	topo := topology.New()
	err := topo.IngestActivities([]hub.Activity{
		{UUID: "a-1", Name: "Lounge: Watch TV", RoomUUID: "r-lounge"},
		{UUID: "a-2", Name: "Lounge: Listen to Music", RoomUUID: "r-lounge"},
		{UUID: "a-3", Name: "Kitchen: Radio", RoomUUID: "r-kitchen"},
		{UUID: "a-4", Name: "Kitchen: Podcast", RoomUUID: "r-kitchen"},
		{UUID: "a-5", Name: "Kitchen: News", RoomUUID: "r-kitchen"},
	})
	if err != nil {
		t.Fatalf("IngestActivities() error = %v", err)
	}
	return topo
}

func TestRenderNLS(t *testing.T) {
	g := NewGenerator(t.TempDir())
	out := g.renderNLS(testTopology(t))

	wantLines := []string{
		"ND-SMPLHUB-NAME = SimpleHub",
		"DCMD-1 = ENTER",
		"DCMD-25 = VOLUME DOWN",
		"ND-ROOM0-NAME = Lounge",
		"ND-ROOM0-ICON = GenericRspCtl",
		"ND-ROOM1-NAME = Kitchen",
		"R0ACT-1 = Watch TV",
		"R0ACT-2 = Listen to Music",
		"R1ACT-1 = Radio",
		"R1ACT-2 = Podcast",
		"R1ACT-3 = News",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line+"\n") {
			t.Errorf("renderNLS() missing line %q", line)
		}
	}

	if strings.Contains(out, "R0ACT-3") {
		t.Error("renderNLS() emitted an activity line beyond the room's count")
	}
}

func TestRenderNodeDefs(t *testing.T) {
	g := NewGenerator(t.TempDir())
	out := g.renderNodeDefs(testTopology(t))

	for _, want := range []string{
		`<nodeDef id="SMPLHUB" nls="SHUB">`,
		`<nodeDef id="DEVICE" nls="DEV">`,
		`<nodeDef id="ROOM0" nls="ROOM">`,
		`<nodeDef id="ROOM1" nls="ROOM">`,
		`<st id="ST" editor="R0CMD" />`,
		`<st id="ST" editor="R1CMD" />`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("renderNodeDefs() missing %q", want)
		}
	}

	if !strings.HasPrefix(out, "<nodeDefs>") || !strings.HasSuffix(out, "</nodeDefs>") {
		t.Error("renderNodeDefs() output is not a complete document")
	}
}

func TestRenderEditors(t *testing.T) {
	g := NewGenerator(t.TempDir())
	out := g.renderEditors(testTopology(t))

	for _, want := range []string{
		`<range uom="25" min="1" max="25" nls="DCMD" />`,
		`<editor id="R0CMD">`,
		`<range uom="25" min="1" max="2" nls="R0ACT" />`,
		`<editor id="R1CMD">`,
		`<range uom="25" min="1" max="3" nls="R1ACT" />`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("renderEditors() missing %q", want)
		}
	}
}

// TestDocumentsAgree checks the cross-document contract: every room node
// definition names an editor that exists, and every editor's range is
// covered by localisation lines in its nls group.
func TestDocumentsAgree(t *testing.T) {
	g := NewGenerator(t.TempDir())
	topo := testTopology(t)

	nodeDefs := g.renderNodeDefs(topo)
	editors := g.renderEditors(topo)
	nls := g.renderNLS(topo)

	roomIDs := regexp.MustCompile(`nodeDef id="ROOM(\d+)"`).FindAllStringSubmatch(nodeDefs, -1)
	if len(roomIDs) != topo.RoomCount() {
		t.Fatalf("nodedefs declare %d rooms, topology has %d", len(roomIDs), topo.RoomCount())
	}

	rangeRe := regexp.MustCompile(`<editor id="R(\d+)CMD">\s*<range uom="25" min="1" max="(\d+)" nls="R(\d+)ACT" />`)
	ranges := make(map[string]int)
	for _, m := range rangeRe.FindAllStringSubmatch(editors, -1) {
		if m[1] != m[3] {
			t.Errorf("editor R%sCMD names mismatched nls group R%sACT", m[1], m[3])
		}
		max, _ := strconv.Atoi(m[2])
		ranges[m[1]] = max
	}

	for _, m := range roomIDs {
		idx := m[1]
		max, ok := ranges[idx]
		if !ok {
			t.Errorf("room %s has no matching editor", idx)
			continue
		}
		for n := 1; n <= max; n++ {
			if !strings.Contains(nls, fmt.Sprintf("R%sACT-%d = ", idx, n)) {
				t.Errorf("nls group R%sACT missing entry %d of %d", idx, n, max)
			}
		}
	}
}

// TestBootstrapDocuments covers the first run before any hub is configured:
// a nil topology yields complete documents with the fixed blocks only, and
// repeated renders are byte-identical.
func TestBootstrapDocuments(t *testing.T) {
	g := NewGenerator(t.TempDir())

	nls := g.renderNLS(nil)
	nodeDefs := g.renderNodeDefs(nil)
	editors := g.renderEditors(nil)

	if strings.Contains(nodeDefs, "ROOM0") || strings.Contains(editors, "R0CMD") {
		t.Error("bootstrap documents contain room blocks")
	}
	if !strings.Contains(nodeDefs, `<nodeDef id="DEVICE"`) {
		t.Error("bootstrap nodedefs missing the generic device definition")
	}
	if !strings.Contains(nls, "DCMD-25 = VOLUME DOWN") {
		t.Error("bootstrap nls missing the command catalogue")
	}

	if g.renderNLS(nil) != nls || g.renderNodeDefs(nil) != nodeDefs || g.renderEditors(nil) != editors {
		t.Error("bootstrap documents differ between renders")
	}
}

func TestGeneratorWrite(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)
	topo := testTopology(t)

	if err := g.Write(topo); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	files := map[string]string{
		filepath.Join(dir, "nls", "en_us.txt"):        g.renderNLS(topo),
		filepath.Join(dir, "nodedef", "nodedefs.xml"): g.renderNodeDefs(topo),
		filepath.Join(dir, "editor", "editors.xml"):   g.renderEditors(topo),
	}
	for path, want := range files {
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("reading %s: %v", path, err)
		}
		if string(got) != want {
			t.Errorf("content of %s does not match render output", path)
		}
	}
}

// TestGeneratorWriteStable renders the same topology twice and requires the
// files on disk to be byte-identical between runs.
func TestGeneratorWriteStable(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)
	topo := testTopology(t)

	if err := g.Write(topo); err != nil {
		t.Fatalf("first Write() error = %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, "nls", "en_us.txt"))
	if err != nil {
		t.Fatal(err)
	}

	if err := g.Write(topo); err != nil {
		t.Fatalf("second Write() error = %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, "nls", "en_us.txt"))
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Error("repeated writes produced different documents")
	}
}
