// Package config handles terrain configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// Config holds all terrain settings.
type Config struct {
	World   WorldConfig   `yaml:"world"`
	Noise   NoiseConfig   `yaml:"noise"`
	Terrain TerrainConfig `yaml:"terrain"`
	LOD     LODConfig     `yaml:"lod"`
	Workers WorkersConfig `yaml:"workers"`
	Cache   CacheConfig   `yaml:"cache"`
	Preview PreviewConfig `yaml:"preview"`
	Driver  DriverConfig  `yaml:"driver"`
	Logging LoggingConfig `yaml:"logging"`
}

// WorldConfig holds the chunk grid layout.
type WorldConfig struct {
	SizeInChunks  int     `yaml:"size_in_chunks"`
	ChunkVertices int     `yaml:"chunk_vertices"` // vertices per side at full detail; faces + 1
	Scale         float32 `yaml:"scale"`
}

// NoiseConfig holds fractal noise parameters.
type NoiseConfig struct {
	Seed        int64        `yaml:"seed"`
	Scale       float64      `yaml:"scale"`
	Octaves     int          `yaml:"octaves"`
	Persistence float64      `yaml:"persistence"`
	Lacunarity  float64      `yaml:"lacunarity"`
	Offset      OffsetConfig `yaml:"offset"`
	Normalize   string       `yaml:"normalize"` // local | global
	Primitive   string       `yaml:"primitive"` // value | perlin
}

// OffsetConfig is a ground-plane offset added to every chunk center before sampling noise.
type OffsetConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// TerrainConfig holds height shaping and coloring.
type TerrainConfig struct {
	HeightMultiplier float32        `yaml:"height_multiplier"`
	HeightCurve      []CurveKey     `yaml:"height_curve"`
	Regions          []RegionConfig `yaml:"regions"` // ascending by height
}

// CurveKey is one point of the height curve.
type CurveKey struct {
	T float32 `yaml:"t"`
	V float32 `yaml:"v"`
}

// RegionConfig is one color band.
type RegionConfig struct {
	Name   string  `yaml:"name"`
	Height float32 `yaml:"height"`
	Color  string  `yaml:"color"` // #rrggbb
}

// LODConfig holds detail levels and collision settings.
type LODConfig struct {
	Levels            []LevelConfig `yaml:"levels"`
	ColliderStride    int           `yaml:"collider_stride"`
	CollisionDistance float32       `yaml:"collision_distance"`
	MoveThreshold     float32       `yaml:"move_threshold"`
}

// LevelConfig is one detail level.
type LevelConfig struct {
	Stride   int     `yaml:"stride"`
	Distance float32 `yaml:"distance"`
}

// WorkersConfig holds the generation pool size.
type WorkersConfig struct {
	Count int `yaml:"count"` // 0 uses one worker per CPU
}

// CacheConfig holds the ground-query cache budget.
type CacheConfig struct {
	MaxCostMB int `yaml:"max_cost_mb"` // 0 disables the cache
}

// PreviewConfig holds PNG preview output settings.
type PreviewConfig struct {
	Dir      string `yaml:"dir"`
	Upscale  int    `yaml:"upscale"`
	DrawMode string `yaml:"draw_mode"` // noise | color | mesh; empty writes no previews
	LOD      int    `yaml:"lod"`
}

// DriverConfig holds the headless walk used by the terrain command.
type DriverConfig struct {
	Ticks        int           `yaml:"ticks"`
	Speed        float32       `yaml:"speed"`   // world units per tick
	Heading      float32       `yaml:"heading"` // degrees, 0 walks along +X
	TickInterval time.Duration `yaml:"tick_interval"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			SizeInChunks:  30,
			ChunkVertices: 49,
			Scale:         1,
		},
		Noise: NoiseConfig{
			Seed:        42,
			Scale:       50,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2,
			Normalize:   "global",
			Primitive:   "value",
		},
		Terrain: TerrainConfig{
			HeightMultiplier: 30,
			HeightCurve: []CurveKey{
				{T: 0, V: 0},
				{T: 0.45, V: 0.05},
				{T: 1, V: 1},
			},
			Regions: []RegionConfig{
				{Name: "deep water", Height: 0, Color: "#1f3f8f"},
				{Name: "water", Height: 0.3, Color: "#3163c8"},
				{Name: "sand", Height: 0.4, Color: "#d2cf7f"},
				{Name: "grass", Height: 0.45, Color: "#579d1a"},
				{Name: "forest", Height: 0.55, Color: "#3e6b14"},
				{Name: "rock", Height: 0.7, Color: "#5f4a3c"},
				{Name: "mountain", Height: 0.8, Color: "#4a3c34"},
				{Name: "snow", Height: 0.9, Color: "#f5f5f5"},
			},
		},
		LOD: LODConfig{
			Levels: []LevelConfig{
				{Stride: 1, Distance: 100},
				{Stride: 2, Distance: 200},
				{Stride: 4, Distance: 300},
				{Stride: 6, Distance: 400},
			},
			ColliderStride:    2,
			CollisionDistance: 100,
			MoveThreshold:     1,
		},
		Workers: WorkersConfig{
			Count: 0,
		},
		Cache: CacheConfig{
			MaxCostMB: 16,
		},
		Preview: PreviewConfig{
			Dir:      "previews",
			Upscale:  4,
			DrawMode: "",
			LOD:      1,
		},
		Driver: DriverConfig{
			Ticks:        600,
			Speed:        2,
			Heading:      45,
			TickInterval: 0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// HighestLOD returns the largest stride any level or the collider uses.
func (c *Config) HighestLOD() int {
	highest := max(c.LOD.ColliderStride, 1)
	for _, l := range c.LOD.Levels {
		highest = max(highest, l.Stride)
	}
	return highest
}

// ParseColor parses a #rrggbb string into an opaque color.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: color %q, want #rrggbb", ErrInvalidParameter, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalidParameter, s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
