package cfg

type Cfg struct {
	// Storage
	DataDir string
	DBPath  string

	// Feed presets
	PresetFile  string
	WatchPreset bool
	MaxEntries  int

	// Background scanning
	SyncInterval int // seconds, 0 disables

	// HTTP server
	Port       string
	BaseUrl    string
	CacheTTL   int     // seconds, 0 disables
	RenderRate float64 // requests per second, 0 disables

	// Application metadata
	Timezone string
	Debug    bool
	Version  string
}
