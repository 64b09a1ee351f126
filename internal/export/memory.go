package export

import (
	"sync"

	"github.com/Faultbox/terragen/internal/editor"
	"github.com/Faultbox/terragen/pkg/terrain"
)

// MemorySink keeps the most recent replacement. It is safe for concurrent
// use.
type MemorySink struct {
	mu       sync.Mutex
	heights  *terrain.Heightfield
	weights  *terrain.BlendWeights
	layers   terrain.LayerBinding
	info     editor.RunInfo
	replaced int
}

// BeginRun records the run description.
func (m *MemorySink) BeginRun(info editor.RunInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.info = info
}

// Replace swaps in the new tile.
func (m *MemorySink) Replace(heights *terrain.Heightfield, weights *terrain.BlendWeights, layers terrain.LayerBinding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.heights, m.weights, m.layers = heights, weights, layers
	m.replaced++
	return nil
}

// Tile returns the last tile, or nil grids before the first Replace.
func (m *MemorySink) Tile() (*terrain.Heightfield, *terrain.BlendWeights, terrain.LayerBinding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heights, m.weights, m.layers
}

// Info returns the last run description.
func (m *MemorySink) Info() editor.RunInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.info
}

// Replaced returns how many tiles have been delivered.
func (m *MemorySink) Replaced() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.replaced
}
