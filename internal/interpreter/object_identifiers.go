package interpreter

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// identifier is the opaque shape shared by pids, ports and references.
type identifier struct {
	Origin   string
	Segments [3]int64
	Node     string
}

func (id identifier) identifierKey() string {
	return fmt.Sprintf("%s,%d.%d.%d,%s", id.Origin, id.Segments[0], id.Segments[1], id.Segments[2], id.Node)
}

func (id identifier) equals(other identifier) bool {
	return id.Segments == other.Segments && id.Origin == other.Origin && id.Node == other.Node
}

// Pid
type Pid struct {
	identifier
}

func (p *Pid) Type() TermType { return PID_TERM }

// Port
type Port struct {
	identifier
}

func (p *Port) Type() TermType { return PORT_TERM }

// Reference
type Reference struct {
	identifier
}

func (r *Reference) Type() TermType { return REFERENCE_TERM }

func NewPid(origin string, segments [3]int64, node string) *Pid {
	return &Pid{identifier{Origin: origin, Segments: segments, Node: node}}
}

func NewPort(origin string, segments [3]int64, node string) *Port {
	return &Port{identifier{Origin: origin, Segments: segments, Node: node}}
}

func NewReferenceFrom(origin string, segments [3]int64, node string) *Reference {
	return &Reference{identifier{Origin: origin, Segments: segments, Node: node}}
}

// NewReference returns a reference unique to this node, derived from a random UUID.
func NewReference(node string) *Reference {
	id := uuid.New()
	var segments [3]int64
	segments[0] = int64(binary.BigEndian.Uint32(id[0:4]))
	segments[1] = int64(binary.BigEndian.Uint32(id[4:8]))
	segments[2] = int64(binary.BigEndian.Uint64(id[8:16]) >> 1)
	return &Reference{identifier{Origin: "client", Segments: segments, Node: node}}
}
