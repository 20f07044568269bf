package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simplecontrol/hublink/internal/topology"
)

// Output layout constants. The directory names and file names are a contract
// with the host's profile loader and must not change.
const (
	nlsDir     = "nls"
	nodeDefDir = "nodedef"
	editorDir  = "editor"

	nlsFile     = "en_us.txt"
	nodeDefFile = "nodedefs.xml"
	editorFile  = "editors.xml"

	outDirPermissions  = 0750
	outFilePermissions = 0644
)

// Generator renders the profile document set from a Topology and the fixed
// device command catalogue.
//
// Generation is a pure function of (topology, catalogue): all three
// documents come out of one pass over the same model, rooms in index order
// and activities index-sorted, so the index-derived identifiers
// (ROOM<i>, R<i>CMD, R<i>ACT) agree across documents and repeated runs are
// byte-identical.
type Generator struct {
	// Dir is the profile root the nls/nodedef/editor tree is written under.
	Dir string

	// Commands is the global device command catalogue.
	Commands Catalog
}

// NewGenerator creates a Generator writing under dir with the standard
// device command catalogue.
func NewGenerator(dir string) *Generator {
	return &Generator{
		Dir:      dir,
		Commands: DeviceCommands(),
	}
}

// Write renders all three profile documents to the generator's directory.
//
// A nil topology is the empty-home bootstrap case: the documents contain
// only the fixed controller/device/catalogue blocks and are still
// syntactically complete, supporting a first run before any hub is
// configured.
//
// Parameters:
//   - topo: Discovered topology, or nil for the bootstrap documents
//
// Returns:
//   - error: If a directory or file cannot be written
func (g *Generator) Write(topo *topology.Topology) error {
	files := map[string]string{
		filepath.Join(nlsDir, nlsFile):         g.renderNLS(topo),
		filepath.Join(nodeDefDir, nodeDefFile): g.renderNodeDefs(topo),
		filepath.Join(editorDir, editorFile):   g.renderEditors(topo),
	}

	for rel, content := range files {
		path := filepath.Join(g.Dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), outDirPermissions); err != nil {
			return fmt.Errorf("creating profile directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(content), outFilePermissions); err != nil {
			return fmt.Errorf("writing %s: %w", rel, err)
		}
	}
	return nil
}

// renderNLS renders the localisation document: fixed header, the global
// command catalogue, then per room the node names and the R<i>ACT-<n>
// activity group consumed by that room's editor.
func (g *Generator) renderNLS(topo *topology.Topology) string {
	var b strings.Builder
	b.WriteString(nlsHeader)

	for _, cmd := range g.Commands {
		fmt.Fprintf(&b, "DCMD-%d = %s\n", cmd.Code, cmd.Label)
	}

	for _, room := range rooms(topo) {
		fmt.Fprintf(&b, nlsRoomTemplate, room.Index, room.Name, room.Index)
		for _, act := range room.ActivitiesByIndex() {
			fmt.Fprintf(&b, "R%dACT-%d = %s\n", room.Index, act.Index, act.Name)
		}
	}

	b.WriteString(nlsFooter)
	return b.String()
}

// renderNodeDefs renders the node-schema document: the static SMPLHUB and
// DEVICE definitions plus one ROOM<i> definition per room, bound to the
// R<i>CMD editor defined in the editor document.
func (g *Generator) renderNodeDefs(topo *topology.Topology) string {
	var b strings.Builder
	b.WriteString(nodeDefHeader)

	for _, room := range rooms(topo) {
		fmt.Fprintf(&b, nodeDefRoomTemplate, room.Index, room.Index, room.Index)
	}

	b.WriteString(nodeDefFooter)
	return b.String()
}

// renderEditors renders the editor-schema document: the DCMD editor spanning
// the command catalogue plus one R<i>CMD editor per room spanning that
// room's activity indices.
func (g *Generator) renderEditors(topo *topology.Topology) string {
	var b strings.Builder
	b.WriteString(editorsHeader)
	fmt.Fprintf(&b, editorDeviceTemplate, len(g.Commands))

	for _, room := range rooms(topo) {
		fmt.Fprintf(&b, editorRoomTemplate, room.Index, 1, room.ActivityCount(), room.Index)
	}

	b.WriteString(editorsFooter)
	return b.String()
}

// rooms returns the index-ordered rooms, or none for a nil topology.
func rooms(topo *topology.Topology) []*topology.Room {
	if topo == nil {
		return nil
	}
	return topo.RoomsByIndex()
}
