package graph

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"go.uber.org/zap"
)

// Binary layout (little-endian), matching the design's storage format:
//
//	MAGIC   "EGRP" (4 bytes)
//	HEADER  u32 node_count, u32 edge_count
//	NODES[] kind(u32) modality(u32) weight(f32) modality_weight(f32)
//	        cross_modal_coherence(f32) ts_created(u64) ts_accessed(u64)
//	        reinforcements(i32, from Node.Usage) len(u32) payload_bytes[len]
//	EDGES[] a(i32) b(i32) kind(u8) rel(u32) w(f32) w_core(f32) w_ctx(f32)
//	        count(u32) successes(u32) failures(u32) leap_score(f32)
//	        ts_last(u64) cross_modal(bool8) cross_modal_bonus(f32)
//
// "weight" and "modality_weight"/"cross_modal_coherence" in the design's
// header line up with Node.Weight and two reserved float slots kept at 0
// for future use; this implementation only populates Weight.
var magic = [4]byte{'E', 'G', 'R', 'P'}

// Save writes the graph to path as a single binary file. Adjacency is not
// serialized; it is rebuilt on Load.
func (g *Graph) Save(path string) error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("graph: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := g.writeLocked(w); err != nil {
		return fmt.Errorf("graph: write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("graph: flush %s: %w", path, err)
	}
	return nil
}

func (g *Graph) writeLocked(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, magic); err != nil {
		return err
	}
	header := struct {
		NodeCount uint32
		EdgeCount uint32
	}{uint32(len(g.nodes)), uint32(len(g.edges))}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return err
	}

	for _, n := range g.nodes {
		rec := struct {
			Kind           uint32
			Modality       uint32
			Weight         float32
			ModalityWeight float32
			CrossModalCoh  float32
			TSCreated      uint64
			TSAccessed     uint64
			Reinforcements int32
			Len            uint32
		}{
			Kind:           uint32(n.Kind),
			Modality:       uint32(n.Modality),
			Weight:         n.Weight,
			TSCreated:      uint64(n.CreatedAt.UnixNano()),
			TSAccessed:     uint64(n.TouchedAt.UnixNano()),
			Reinforcements: n.Usage,
			Len:            uint32(len(n.Payload)),
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return err
		}
		if _, err := w.Write([]byte(n.Payload)); err != nil {
			return err
		}
	}

	for _, e := range g.edges {
		var crossModal uint8
		if e.CrossModal {
			crossModal = 1
		}
		rec := struct {
			A, B       int32
			Kind       uint8
			Rel        uint32
			W          float32
			WCore      float32
			WCtx       float32
			Count      uint32
			Successes  uint32
			Failures   uint32
			LeapScore  float32
			TSLast     uint64
			CrossModal uint8
			CMBonus    float32
		}{
			A: int32(e.A), B: int32(e.B),
			Kind:       uint8(e.Kind),
			Rel:        uint32(e.Rel),
			W:          e.W,
			WCore:      e.WCore,
			WCtx:       e.WCtx,
			Count:      uint32(e.Count),
			Successes:  uint32(e.Successes),
			Failures:   uint32(e.Failures),
			LeapScore:  e.LeapScore,
			TSLast:     uint64(e.LastTouched.UnixNano()),
			CrossModal: crossModal,
			CMBonus:    e.CrossModalBonus,
		}
		if err := binary.Write(w, binary.LittleEndian, rec); err != nil {
			return err
		}
	}
	return nil
}

// nodeRecordFixedSize is the byte length of a node record excluding the
// trailing payload bytes.
const nodeRecordFixedSize = 4 + 4 + 4 + 4 + 4 + 8 + 8 + 4 + 4

// edgeRecordSize is the fixed byte length of one edge record.
const edgeRecordSize = 4 + 4 + 1 + 4 + 4 + 4 + 4 + 4 + 4 + 4 + 4 + 8 + 1 + 4

// Load populates g from path. A missing file leaves g empty and is not an
// error (spec §4.A: "Missing file → start empty, warn not fatal"). A
// malformed header aborts the load and leaves g empty. Truncated trailing
// records are discarded with a warning rather than failing the load.
func (g *Graph) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.log.Warn("graph file missing, starting empty", zap.String("path", path))
			g.resetLocked()
			return nil
		}
		return fmt.Errorf("graph: read %s: %w", path, err)
	}
	return g.loadBytes(data)
}

func (g *Graph) resetLocked() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = nil
	g.edges = nil
	g.payloadIdx = make(map[string]Handle)
	g.adjacency = make(map[Handle][]EdgeID)
	g.edgeIdx = make(map[edgeKey]EdgeID)
}

func (g *Graph) loadBytes(data []byte) error {
	if len(data) < len(magic)+8 {
		g.log.Warn("graph file truncated before header, starting empty")
		g.resetLocked()
		return nil
	}
	if [4]byte(data[:4]) != magic {
		g.resetLocked()
		return fmt.Errorf("graph: bad magic")
	}
	off := 4
	nodeCount := binary.LittleEndian.Uint32(data[off:])
	off += 4
	edgeCount := binary.LittleEndian.Uint32(data[off:])
	off += 4

	nodes := make([]*Node, 0, nodeCount)
	for i := uint32(0); i < nodeCount; i++ {
		if off+nodeRecordFixedSize > len(data) {
			g.log.Warn("graph file truncated mid-node, discarding partial record",
				zap.Uint32("expected", nodeCount), zap.Int("got", len(nodes)))
			nodeCount = uint32(len(nodes))
			break
		}
		kind := binary.LittleEndian.Uint32(data[off:])
		off += 4
		modality := binary.LittleEndian.Uint32(data[off:])
		off += 4
		weight := readFloat32(data, off)
		off += 4
		off += 4 // modality weight, reserved
		off += 4 // cross-modal coherence, reserved
		tsCreated := binary.LittleEndian.Uint64(data[off:])
		off += 8
		tsAccessed := binary.LittleEndian.Uint64(data[off:])
		off += 8
		reinforcements := int32(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		plen := binary.LittleEndian.Uint32(data[off:])
		off += 4
		if off+int(plen) > len(data) {
			g.log.Warn("graph file truncated mid-payload, discarding partial record")
			nodeCount = uint32(len(nodes))
			break
		}
		payload := string(data[off : off+int(plen)])
		off += int(plen)

		n := &Node{
			Handle:    Handle(len(nodes)),
			Payload:   payload,
			Kind:      Kind(kind),
			Modality:  Modality(modality),
			Weight:    weight,
			Usage:     reinforcements,
			CreatedAt: time.Unix(0, int64(tsCreated)),
			TouchedAt: time.Unix(0, int64(tsAccessed)),
		}
		nodes = append(nodes, n)
	}

	edges := make([]*Edge, 0, edgeCount)
	for i := uint32(0); i < edgeCount; i++ {
		if off+edgeRecordSize > len(data) {
			g.log.Warn("graph file truncated mid-edge, discarding partial record",
				zap.Uint32("expected", edgeCount), zap.Int("got", len(edges)))
			break
		}
		a := int32(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		b := int32(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		kind := data[off]
		off++
		rel := binary.LittleEndian.Uint32(data[off:])
		off += 4
		w := readFloat32(data, off)
		off += 4
		wCore := readFloat32(data, off)
		off += 4
		wCtx := readFloat32(data, off)
		off += 4
		count := binary.LittleEndian.Uint32(data[off:])
		off += 4
		successes := binary.LittleEndian.Uint32(data[off:])
		off += 4
		failures := binary.LittleEndian.Uint32(data[off:])
		off += 4
		leapScore := readFloat32(data, off)
		off += 4
		tsLast := binary.LittleEndian.Uint64(data[off:])
		off += 8
		crossModal := data[off] != 0
		off++
		cmBonus := readFloat32(data, off)
		off += 4

		e := &Edge{
			ID:              EdgeID(len(edges)),
			A:               Handle(a),
			B:               Handle(b),
			Rel:             Relation(rel),
			Kind:            EdgeKind(kind),
			Reverse:         -1,
			W:               w,
			WCore:           wCore,
			WCtx:            wCtx,
			Count:           int32(count),
			Successes:       int32(successes),
			Failures:        int32(failures),
			LeapScore:       leapScore,
			LastTouched:     time.Unix(0, int64(tsLast)),
			CrossModal:      crossModal,
			CrossModalBonus: cmBonus,
		}
		edges = append(edges, e)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = nodes
	g.edges = edges
	g.payloadIdx = make(map[string]Handle, len(nodes))
	for _, n := range nodes {
		g.payloadIdx[n.Payload] = n.Handle
	}
	g.adjacency = make(map[Handle][]EdgeID, len(nodes))
	g.edgeIdx = make(map[edgeKey]EdgeID, len(edges))
	for _, e := range edges {
		g.adjacency[e.A] = append(g.adjacency[e.A], e.ID)
		g.edgeIdx[edgeKey{e.A, e.B, e.Rel}] = e.ID
	}
	// Re-pair EXACT edges' reverse links by looking up (b,a,rel).
	for _, e := range edges {
		if e.Kind != EdgeExact {
			continue
		}
		if revID, ok := g.edgeIdx[edgeKey{e.B, e.A, e.Rel}]; ok {
			e.Reverse = revID
		}
	}
	return nil
}

func readFloat32(data []byte, off int) float32 {
	bits := binary.LittleEndian.Uint32(data[off:])
	return math.Float32frombits(bits)
}
