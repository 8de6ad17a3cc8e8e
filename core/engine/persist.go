package engine

import "fmt"

// embeddingSuffix names the parallel embedding-table file alongside the
// graph's own binary artifact (spec §6's "parallel optional file").
const embeddingSuffix = ".emb"

// Save writes the graph to path and, when the embedding bridge is
// enabled, the learned node/token vectors to path+".emb".
func (e *Engine) Save(path string) error {
	stop := e.Sink.Timer("save")
	defer stop()

	if err := e.Graph.Save(path); err != nil {
		return fmt.Errorf("engine: save %s: %w", path, err)
	}
	if e.Config.EnableEmbeddingBridge {
		if err := e.Bridge.Save(path + embeddingSuffix); err != nil {
			return fmt.Errorf("engine: save %s: %w", path+embeddingSuffix, err)
		}
	}
	return nil
}

// Load populates the graph (and, when enabled, the embedding bridge) from
// path. A missing graph file starts empty, per §4.A; a missing embedding
// file simply leaves the bridge untrained.
func (e *Engine) Load(path string) error {
	stop := e.Sink.Timer("load")
	defer stop()

	if err := e.Graph.Load(path); err != nil {
		return fmt.Errorf("engine: load %s: %w", path, err)
	}
	if e.Config.EnableEmbeddingBridge {
		if err := e.Bridge.Load(path + embeddingSuffix); err != nil {
			return fmt.Errorf("engine: load %s: %w", path+embeddingSuffix, err)
		}
	}
	return nil
}

// Decay runs one decay tick over the graph at rate r, then prunes any
// edge that has fallen below the pruning threshold as a result, emitting
// a leap_decay telemetry event with how many were pruned.
func (e *Engine) Decay(r float32) int {
	stop := e.Sink.Timer("decay")
	defer stop()

	e.Graph.Decay(r)
	pruned := e.Graph.Prune()
	e.Sink.Emit("leap_decay", map[string]interface{}{"rate": r, "pruned": pruned})
	return pruned
}
