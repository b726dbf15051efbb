package config

// CatalogConfig is the top-level YAML structure.
type CatalogConfig struct {
	Version    string        `yaml:"version"`
	Server     ServerConf    `yaml:"server"`
	Registry   RegistryConf  `yaml:"registry"`
	Activities []ActivityDef `yaml:"activities"`
}

// ServerConf holds HTTP listener settings.
type ServerConf struct {
	Addr              string `yaml:"addr"`
	StaticDir         string `yaml:"static_dir"` // empty = embedded UI
	ReadTimeoutMs     int    `yaml:"read_timeout_ms"`
	WriteTimeoutMs    int    `yaml:"write_timeout_ms"`
	IdleTimeoutMs     int    `yaml:"idle_timeout_ms"`
	ShutdownTimeoutMs int    `yaml:"shutdown_timeout_ms"`
}

// RegistryConf holds enrollment policy toggles.
type RegistryConf struct {
	EnforceCapacity bool `yaml:"enforce_capacity"`
}

// ActivityDef seeds one catalog entry.
type ActivityDef struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}
