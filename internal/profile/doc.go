// Package profile generates the host profile document set describing the
// node types a discovered home exposes.
//
// Three documents are rendered from one pass over a topology: the
// localisation text (nls/en_us.txt), the node schema (nodedef/nodedefs.xml)
// and the editor schema (editor/editors.xml). Per-room identifiers in all
// three derive from the same room index, so a room's node definition, its
// command editor and its activity text group always line up. Output is a
// pure function of the topology and the fixed command catalogue: rendering
// the same topology twice yields byte-identical files.
//
// WriteArchive packages a rendered tree into the zip archive the host's
// profile uploader consumes.
package profile
