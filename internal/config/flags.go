package config

import (
	"flag"
	"time"
)

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagLogFile     = flag.String("log-file", "", "Write logs to this file as well")
	flagSeed        = flag.Int64("seed", 0, "Noise seed")
	flagWorkers     = flag.Int("workers", 0, "Generation workers (0 = one per CPU)")
	flagSize        = flag.Int("size", 0, "World size in chunks")
	flagPreviewDir  = flag.String("preview-dir", "", "Directory for PNG previews")
	flagDraw        = flag.String("draw", "", "Write a preview of the origin chunk: noise, color or mesh")
	flagTicks       = flag.Int("ticks", -1, "Number of ticks to simulate")
	flagSpeed       = flag.Float64("speed", 0, "Viewer speed in world units per tick")
	flagInterval    = flag.Duration("tick-interval", 0, "Wall time between ticks")
	flagWriteConfig = flag.String("write-config", "", "Write the effective config to this path and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the path given to --write-config, if any.
func WriteConfigPath() string {
	return *flagWriteConfig
}

// flagSet reports whether a flag was given on the command line.
func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
	if flagSet("seed") {
		cfg.Noise.Seed = *flagSeed
	}
	if *flagWorkers > 0 {
		cfg.Workers.Count = *flagWorkers
	}
	if *flagSize > 0 {
		cfg.World.SizeInChunks = *flagSize
	}
	if *flagPreviewDir != "" {
		cfg.Preview.Dir = *flagPreviewDir
	}
	if *flagDraw != "" {
		cfg.Preview.DrawMode = *flagDraw
	}
	if *flagTicks >= 0 {
		cfg.Driver.Ticks = *flagTicks
	}
	if *flagSpeed > 0 {
		cfg.Driver.Speed = float32(*flagSpeed)
	}
	if *flagInterval > time.Duration(0) {
		cfg.Driver.TickInterval = *flagInterval
	}
}
