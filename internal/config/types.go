package config

// Config is the root configuration structure
type Config struct {
	Settings Settings `yaml:"settings" json:"settings" toml:"settings"`
}

// Settings holds the values a flag can also set. Flags win over the file,
// the file wins over built-in defaults.
type Settings struct {
	// Grid shape as "RxC", e.g. "2x3"
	Grid string `yaml:"grid" json:"grid" toml:"grid"`
	// StateFile is where window cycle positions are persisted
	StateFile string `yaml:"stateFile" json:"stateFile" toml:"stateFile"`
	// YabaiPath is the yabai binary name or absolute path
	YabaiPath string `yaml:"yabaiPath" json:"yabaiPath" toml:"yabaiPath"`
	// Timeout per yabai call in Go duration syntax; empty means none
	Timeout string `yaml:"timeout,omitempty" json:"timeout,omitempty" toml:"timeout,omitempty"`
}
