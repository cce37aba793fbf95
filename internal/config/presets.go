package config

// Presets are named sweep configurations for the CLI.
var Presets = map[string]*Config{
	// quick is a smoke-test sweep for development machines.
	"quick": {
		Methods:   []string{"one", "span"},
		Sizes:     []int{1, 16, 256, 4096},
		Reps:      3,
		Warmup:    1,
		Dt:        DefaultDt,
		Processes: []string{"energy_loss"},
	},
	// full is the complete four-method sweep over all sizes.
	"full": {
		Methods:   []string{"one", "span", "variant-one", "variant-span"},
		MaxSize:   DefaultMaxSize,
		Reps:      DefaultReps,
		Warmup:    DefaultWarmup,
		Dt:        DefaultDt,
		Processes: []string{"energy_loss"},
	},
	// dispatch isolates the tagged-union overhead by comparing the two
	// variant methods on a longer process list.
	"dispatch": {
		Methods:   []string{"variant-one", "variant-span"},
		MaxSize:   DefaultMaxSize,
		Reps:      DefaultReps,
		Warmup:    DefaultWarmup,
		Dt:        DefaultDt,
		Processes: []string{"energy_loss", "drift", "noop"},
	},
}

// GetPreset returns the named preset, or nil if it does not exist.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the available preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
