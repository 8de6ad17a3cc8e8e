package telemetry

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitWritesOneJSONLinePerEvent(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)

	s.Emit("leap_create", map[string]interface{}{"support": 4})
	s.Emit("abstain", nil)

	scanner := bufio.NewScanner(&buf)
	var lines []Event
	for scanner.Scan() {
		var ev Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		lines = append(lines, ev)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "leap_create", lines[0].Type)
	assert.NotEmpty(t, lines[0].ID)
	assert.Equal(t, "abstain", lines[1].Type)
}

func TestNilSinkEmitIsANoOp(t *testing.T) {
	var s *Sink
	assert.NotPanics(t, func() { s.Emit("anything", nil) })
}

func TestZeroValueSinkEmitIsANoOp(t *testing.T) {
	var s Sink
	assert.NotPanics(t, func() { s.Emit("anything", nil) })
}

func TestTimerEmitsNamedDurationEvent(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)

	stop := s.Timer("diffuse")
	stop()

	var ev Event
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "timer", ev.Type)
	assert.Equal(t, "diffuse", ev.Fields["name"])
	assert.Contains(t, ev.Fields, "ms")
}

func TestOpenAppendsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "telemetry.jsonl")

	s1, err := Open(path)
	require.NoError(t, err)
	s1.Emit("first", nil)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	s2.Emit("second", nil)
	require.NoError(t, s2.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var types []string
	for scanner.Scan() {
		var ev Event
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &ev))
		types = append(types, ev.Type)
	}
	assert.Equal(t, []string{"first", "second"}, types)
}
