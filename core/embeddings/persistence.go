package embeddings

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/EchoCog/echograph/core/graph"
)

// Binary layout (little-endian), the "parallel optional file" spec §6
// describes alongside the graph's own persistence format:
//
//	HEADER        u32 node_count, u32 token_count, u32 dim
//	NODE ENTRIES   i32 handle, dim*f32
//	TOKEN ENTRIES  u32 len, payload_bytes[len], dim*f32
//
// Node and token tables share one file since they share one dimension;
// Load tolerates either section being empty.
func (b *Bridge) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("embeddings: create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	header := struct {
		NodeCount  uint32
		TokenCount uint32
		Dim        uint32
	}{uint32(len(b.nodeTable)), uint32(len(b.tokenTable)), uint32(b.dim)}
	if err := binary.Write(w, binary.LittleEndian, header); err != nil {
		return fmt.Errorf("embeddings: write %s: %w", path, err)
	}

	for h, v := range b.nodeTable {
		if err := binary.Write(w, binary.LittleEndian, int32(h)); err != nil {
			return fmt.Errorf("embeddings: write %s: %w", path, err)
		}
		if err := writeVector(w, v, b.dim); err != nil {
			return fmt.Errorf("embeddings: write %s: %w", path, err)
		}
	}
	for tok, v := range b.tokenTable {
		if err := binary.Write(w, binary.LittleEndian, uint32(len(tok))); err != nil {
			return fmt.Errorf("embeddings: write %s: %w", path, err)
		}
		if _, err := w.WriteString(tok); err != nil {
			return fmt.Errorf("embeddings: write %s: %w", path, err)
		}
		if err := writeVector(w, v, b.dim); err != nil {
			return fmt.Errorf("embeddings: write %s: %w", path, err)
		}
	}
	return w.Flush()
}

// Load populates b from path. A missing file is not an error — an engine
// may run with no learned embeddings yet — matching the graph's own
// "missing file starts empty" rule.
func (b *Bridge) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("embeddings: read %s: %w", path, err)
	}
	if len(data) < 12 {
		return fmt.Errorf("embeddings: %s: truncated header", path)
	}
	off := 0
	nodeCount := binary.LittleEndian.Uint32(data[off:])
	off += 4
	tokenCount := binary.LittleEndian.Uint32(data[off:])
	off += 4
	dim := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	if dim <= 0 {
		return fmt.Errorf("embeddings: %s: invalid dimension %d", path, dim)
	}

	nodeTable := make(map[graph.Handle][]float32, nodeCount)
	for i := uint32(0); i < nodeCount; i++ {
		if off+4+dim*4 > len(data) {
			return fmt.Errorf("embeddings: %s: truncated node entry %d", path, i)
		}
		handle := graph.Handle(int32(binary.LittleEndian.Uint32(data[off:])))
		off += 4
		nodeTable[handle] = readVector(data, off, dim)
		off += dim * 4
	}

	tokenTable := make(map[string][]float32, tokenCount)
	for i := uint32(0); i < tokenCount; i++ {
		if off+4 > len(data) {
			return fmt.Errorf("embeddings: %s: truncated token entry %d", path, i)
		}
		l := int(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		if off+l+dim*4 > len(data) {
			return fmt.Errorf("embeddings: %s: truncated token entry %d", path, i)
		}
		tok := string(data[off : off+l])
		off += l
		tokenTable[tok] = readVector(data, off, dim)
		off += dim * 4
	}

	b.dim = dim
	b.nodeTable = nodeTable
	b.tokenTable = tokenTable
	return nil
}

func writeVector(w io.Writer, v []float32, dim int) error {
	for i := 0; i < dim; i++ {
		var x float32
		if i < len(v) {
			x = v[i]
		}
		if err := binary.Write(w, binary.LittleEndian, math.Float32bits(x)); err != nil {
			return err
		}
	}
	return nil
}

func readVector(data []byte, off, dim int) []float32 {
	v := make([]float32, dim)
	for i := 0; i < dim; i++ {
		bits := binary.LittleEndian.Uint32(data[off+i*4:])
		v[i] = math.Float32frombits(bits)
	}
	return v
}
