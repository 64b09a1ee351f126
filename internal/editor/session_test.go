package editor

import (
	"errors"
	"math/rand/v2"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/terragen/pkg/terrain"
)

type memorySink struct {
	info    *RunInfo
	heights *terrain.Heightfield
	calls   int
	err     error
}

func (m *memorySink) BeginRun(info RunInfo) { m.info = &info }

func (m *memorySink) Replace(h *terrain.Heightfield, _ *terrain.BlendWeights, _ terrain.LayerBinding) error {
	m.calls++
	m.heights = h
	return m.err
}

func newSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	if cfg.Width == 0 {
		cfg.Width, cfg.Height = 24, 24
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return s
}

func TestSelectPresetResets(t *testing.T) {
	s := newSession(t, Config{Preset: terrain.Grasslands, Seed: 9, CliffLayer: terrain.CliffLayer})

	for _, p := range terrain.Presets {
		if err := s.SelectPreset(p); err != nil {
			t.Fatalf("SelectPreset(%v) failed: %v", p, err)
		}
		want, _ := terrain.ResetForPreset(p)
		params := s.Params()
		if params.Scale != want.Scale || params.WaterLevel != want.WaterLevel ||
			params.Lakes != want.Lakes || params.LakeRadius != want.LakeRadius {
			t.Errorf("%v: expected defaults %+v, got %+v", p, want, params)
		}
		if s.Dimensions().Depth != want.Depth {
			t.Errorf("%v: expected depth %f, got %f", p, want.Depth, s.Dimensions().Depth)
		}
		if params.Seed != 9 {
			t.Errorf("%v: seed should survive a reset, got %d", p, params.Seed)
		}
		if s.Layers().Channels[0] != want.BaseLayer {
			t.Errorf("%v: expected base layer %s, got %s", p, want.BaseLayer, s.Layers().Channels[0])
		}
	}
}

func TestSelectSamePresetDiscardsEdits(t *testing.T) {
	s := newSession(t, Config{Preset: terrain.Desert})

	s.Edit(func(dims *terrain.Dimensions, params *terrain.Parameters) {
		params.Scale = 3
		dims.Depth = 99
	})
	if s.Params().Scale != 3 {
		t.Fatalf("edit not applied")
	}

	if err := s.SelectPreset(terrain.Desert); err != nil {
		t.Fatalf("SelectPreset failed: %v", err)
	}
	if s.Params().Scale != 150 || s.Dimensions().Depth != 25 {
		t.Errorf("expected desert defaults after reselect, got %+v depth %f", s.Params(), s.Dimensions().Depth)
	}
}

func TestSelectUnknownPreset(t *testing.T) {
	s := newSession(t, Config{Preset: terrain.Lake})
	before := s.Params()

	if err := s.SelectPreset(terrain.Preset(99)); !errors.Is(err, terrain.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
	if s.Preset() != terrain.Lake || s.Params() != before {
		t.Error("failed selection should leave the session unchanged")
	}

	if _, err := New(Config{Preset: terrain.Preset(-1), Width: 8, Height: 8}); err == nil {
		t.Error("expected New to reject an unknown preset")
	}
}

func TestLayerOverrides(t *testing.T) {
	s := newSession(t, Config{
		Preset:     terrain.Canyons,
		WaterLayer: "river",
		BaseLayer: func(p terrain.Preset, fallback string) string {
			if p == terrain.Canyons {
				return "redrock"
			}
			return fallback
		},
	})

	layers := s.Layers()
	if layers.Channels[layers.Base] != "redrock" || layers.Channels[layers.Water] != "river" {
		t.Errorf("unexpected channels %v", layers.Channels)
	}
	if layers.HasCliff() {
		t.Error("expected no cliff channel without a cliff name")
	}
}

func TestGenerateDelivers(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := newSession(t, Config{Preset: terrain.Mountainous, Seed: 31, Log: zap.New(core)})

	sink := &memorySink{}
	run, err := s.Generate(sink)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if sink.calls != 1 || sink.heights != run.Result.Heights {
		t.Error("sink did not receive the result")
	}
	if sink.info == nil || sink.info.ID != run.Info.ID || run.Info.ID == "" {
		t.Error("sink did not observe the run")
	}
	if !run.Info.PresetChanged {
		t.Error("first run should count as a preset change")
	}
	if run.Info.Params.Seed != 31 {
		t.Errorf("expected seed 31, got %d", run.Info.Params.Seed)
	}

	second, _ := s.Generate(sink)
	if second.Info.PresetChanged {
		t.Error("second run with the same preset should not be a change")
	}
	if second.Info.ID == run.Info.ID {
		t.Error("runs should get distinct ids")
	}

	s.SelectPreset(terrain.Canyons)
	third, _ := s.Generate(sink)
	if !third.Info.PresetChanged {
		t.Error("run after switching preset should be a change")
	}

	if n := logs.FilterMessage("terrain generated").Len(); n != 3 {
		t.Errorf("expected 3 run log entries, got %d", n)
	}
	entry := logs.FilterMessage("terrain generated").All()[0]
	if entry.ContextMap()["seed"] != int64(31) {
		t.Errorf("expected seed field, got %v", entry.ContextMap())
	}
}

func TestGenerateDeterministicAcrossSessions(t *testing.T) {
	a := newSession(t, Config{Preset: terrain.Lake, Seed: 5})
	b := newSession(t, Config{Preset: terrain.Lake, Seed: 5})
	for _, s := range []*Session{a, b} {
		s.Edit(func(_ *terrain.Dimensions, params *terrain.Parameters) { params.LakeRadius = 4 })
	}

	ra, err := a.Generate(&memorySink{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	rb, _ := b.Generate(&memorySink{})

	for i := range ra.Result.Heights.Values {
		if ra.Result.Heights.Values[i] != rb.Result.Heights.Values[i] {
			t.Fatalf("texel %d differs between sessions", i)
		}
	}
}

func TestRandomSeed(t *testing.T) {
	seeds := []int64{11, 22}
	next := 0
	s := newSession(t, Config{
		Preset:     terrain.Grasslands,
		Seed:       1,
		RandomSeed: true,
		Seeds: func() int64 {
			v := seeds[next]
			next++
			return v
		},
	})

	r1, _ := s.Generate(&memorySink{})
	r2, _ := s.Generate(&memorySink{})
	if r1.Info.Params.Seed != 11 || r2.Info.Params.Seed != 22 {
		t.Errorf("expected seeds 11 and 22, got %d and %d", r1.Info.Params.Seed, r2.Info.Params.Seed)
	}
	if s.Params().Seed != 22 {
		t.Errorf("session should keep the last drawn seed, got %d", s.Params().Seed)
	}

	s.SetRandomSeed(false)
	r3, _ := s.Generate(&memorySink{})
	if r3.Info.Params.Seed != 22 {
		t.Errorf("expected seed to stay 22, got %d", r3.Info.Params.Seed)
	}
}

func TestRandomSeedsRange(t *testing.T) {
	src := RandomSeeds(rand.New(rand.NewPCG(1, 2)))
	for range 1000 {
		if v := src(); v < 0 || v >= MaxRandomSeed {
			t.Fatalf("seed %d outside [0, %d)", v, MaxRandomSeed)
		}
	}

	global := RandomSeeds(nil)
	if v := global(); v < 0 || v >= MaxRandomSeed {
		t.Errorf("seed %d outside [0, %d)", v, MaxRandomSeed)
	}
}

func TestGenerateErrors(t *testing.T) {
	s := newSession(t, Config{Preset: terrain.Grasslands, Width: 0})
	s.Edit(func(dims *terrain.Dimensions, _ *terrain.Parameters) { dims.Width = -1 })

	sink := &memorySink{}
	if _, err := s.Generate(sink); !errors.Is(err, terrain.ErrInvalidDimensions) {
		t.Errorf("expected ErrInvalidDimensions, got %v", err)
	}
	if sink.calls != 0 {
		t.Error("sink should not be called for rejected requests")
	}

	ok := newSession(t, Config{Preset: terrain.Grasslands})
	failing := &memorySink{err: errors.New("read-only")}
	if _, err := ok.Generate(failing); err == nil {
		t.Error("expected sink error")
	}
}
