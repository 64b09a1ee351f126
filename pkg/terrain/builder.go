package terrain

import (
	"fmt"
	"math/rand/v2"

	tmath "github.com/Faultbox/terragen/pkg/math"
	"github.com/Faultbox/terragen/pkg/noise"
)

// Synthesis constants.
const (
	detailWeight     = 0.1
	grassDetailScale = 0.5
	grassLerp        = 0.5

	mountainFrequency = 0.3
	mountainDetail    = 50.0
	mountainLerp      = 0.1

	duneFrequency = 0.1
	duneMaxHeight = 0.1

	CanyonBaseHeight = 0.4
	CanyonThreshold  = 0.4
	canyonTerrain    = 0.5
	canyonFrequency  = 2.0

	LakeFalloff = 0.8

	lakeStream = 0x6c616b65
)

// BuildRaw synthesizes the unprocessed grid for preset. It does not carve
// water or smooth; see Generate for the full pipeline.
func BuildRaw(preset Preset, dims Dimensions, params Parameters, field noise.Field, workers int) (*Heightfield, error) {
	switch preset {
	case Grasslands:
		return BuildGrasslands(dims, params, field, workers), nil
	case Desert:
		return BuildDesert(dims, params, field, workers), nil
	case Mountainous:
		return BuildMountainous(dims, params, field, workers), nil
	case Lake:
		return BuildLake(dims, params, field, workers), nil
	case Canyons:
		return BuildCanyons(dims, params, field, workers), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, preset)
	}
}

// tileCoords maps a texel to noise space: x/W·scale + offset.
func tileCoords(x, z int, dims Dimensions, params Parameters, frequency float64) (float64, float64) {
	seed := params.Offset()
	xc := float64(x)/float64(dims.Width)*params.Scale*frequency + seed
	zc := float64(z)/float64(dims.Height)*params.Scale*frequency + seed
	return xc, zc
}

func fill(dims Dimensions, workers int, texel func(x, z int) float64) *Heightfield {
	hf := NewHeightfield(dims.Width, dims.Height)
	forEachRow(dims.Height, workers, func(z int) {
		for x := range dims.Width {
			hf.Set(x, z, texel(x, z))
		}
	})
	return hf
}

// BuildGrasslands blends a coarse base signal with a faint fine detail signal.
func BuildGrasslands(dims Dimensions, params Parameters, field noise.Field, workers int) *Heightfield {
	seed := params.Offset()
	detailScale := params.Scale * grassDetailScale

	return fill(dims, workers, func(x, z int) float64 {
		xc, zc := tileCoords(x, z, dims, params, 1)
		base := field.Sample(xc, zc)
		detail := field.Sample(xc*detailScale+seed, zc*detailScale+seed) * detailWeight
		return tmath.Lerp(base, detail+base*detailWeight, grassLerp)
	})
}

// BuildDesert produces low rolling dunes in texel space. Heights are divided
// by depth so the dunes keep their world height when the tile is scaled.
func BuildDesert(dims Dimensions, params Parameters, field noise.Field, workers int) *Heightfield {
	seed := params.Offset()
	duneScale := params.Scale * duneFrequency
	maxHeight := dims.Depth * duneMaxHeight

	return fill(dims, workers, func(x, z int) float64 {
		xc := (float64(x) + seed) / duneScale
		zc := (float64(z) + seed) / duneScale
		dune := field.Sample(xc, zc) * maxHeight
		dune += field.Sample(xc*2, zc*2) * (maxHeight / 3)
		return dune / dims.Depth
	})
}

// BuildMountainous uses a lower base frequency and lets a high frequency
// detail signal through at 10%.
func BuildMountainous(dims Dimensions, params Parameters, field noise.Field, workers int) *Heightfield {
	return fill(dims, workers, func(x, z int) float64 {
		xc, zc := tileCoords(x, z, dims, params, mountainFrequency)
		base := field.Sample(xc, zc)
		detail := field.Sample(xc*mountainDetail, zc*mountainDetail) * detailWeight
		return tmath.Lerp(base, detail, mountainLerp)
	})
}

// BuildLake starts from grasslands and sinks circular basins into it.
func BuildLake(dims Dimensions, params Parameters, field noise.Field, workers int) *Heightfield {
	hf := BuildGrasslands(dims, params, field, workers)
	CarveLakes(hf, LakeCenters(dims, params), params.LakeRadius, workers)
	return hf
}

// BuildCanyons lifts the terrain onto a plateau and cuts it wherever the
// higher frequency canyon signal drops below CanyonThreshold.
func BuildCanyons(dims Dimensions, params Parameters, field noise.Field, workers int) *Heightfield {
	return fill(dims, workers, func(x, z int) float64 {
		xc, zc := tileCoords(x, z, dims, params, 1)
		terrain := field.Sample(xc, zc)
		canyon := field.Sample(xc*canyonFrequency, zc*canyonFrequency)
		return CanyonHeight(terrain, canyon, dims.Depth)
	})
}

// CanyonHeight combines a terrain sample and a canyon sample into one texel.
func CanyonHeight(terrain, canyon, depth float64) float64 {
	h := terrain*canyonTerrain + CanyonBaseHeight
	if canyon < CanyonThreshold {
		h -= (CanyonThreshold - canyon) * depth
		if h < 0 {
			h = 0
		}
	}
	return h
}

// LakeCenters draws params.Lakes centers, each coordinate uniform in
// [radius, dimension-radius). The draw is seeded by params.Seed.
func LakeCenters(dims Dimensions, params Parameters) []tmath.Vec2 {
	if params.Lakes <= 0 {
		return nil
	}
	r := params.LakeRadius
	rng := rand.New(rand.NewPCG(uint64(params.Seed), lakeStream))

	centers := make([]tmath.Vec2, 0, params.Lakes)
	for range params.Lakes {
		cx := r + rng.IntN(dims.Width-2*r)
		cz := r + rng.IntN(dims.Height-2*r)
		centers = append(centers, tmath.Vec2{X: float64(cx), Z: float64(cz)})
	}
	return centers
}
