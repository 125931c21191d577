package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage
	DataDir string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory whose files are published as entries"`
	DBPath  string `long:"db-path" env:"DB_PATH" default:"./dirfeed.db" description:"SQLite database recording when files were first seen"`

	// Feed presets
	PresetFile  string `long:"preset" env:"PRESET_FILE" default:"./feed.yml" description:"YAML file with the default feed metadata"`
	WatchPreset bool   `long:"watch-preset" env:"WATCH_PRESET" description:"Reload the preset file when it changes"`
	MaxEntries  int    `long:"max-entries" env:"MAX_ENTRIES" default:"0" description:"Maximum number of entries per feed (0 for no limit)"`

	// Background scanning
	SyncInterval int `long:"sync-interval" env:"SYNC_INTERVAL" default:"300" description:"Seconds between background scans recording new files (0 disables)"`

	// HTTP server
	Port       string  `long:"port" env:"PORT" default:"1338" description:"HTTP server port"`
	BaseUrl    string  `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://notes.example.com/), used as xml:base"`
	CacheTTL   int     `long:"cache-ttl" env:"CACHE_TTL" default:"5" description:"Seconds a rendered feed or listing is served from memory (0 disables)"`
	RenderRate float64 `long:"render-rate" env:"RENDER_RATE" default:"10" description:"Requests per second accepted by /api/render (0 disables the limit)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for the HTML listing (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	return parse(nil)
}

// parse reads args (os.Args when nil) and the environment.
func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if raw.MaxEntries < 0 {
		return nil, fmt.Errorf("max entries must be non-negative, got %d", raw.MaxEntries)
	}

	if raw.SyncInterval < 0 {
		return nil, fmt.Errorf("sync interval must be non-negative, got %d", raw.SyncInterval)
	}

	if raw.CacheTTL < 0 {
		return nil, fmt.Errorf("cache ttl must be non-negative, got %d", raw.CacheTTL)
	}

	if raw.RenderRate < 0 {
		return nil, fmt.Errorf("render rate must be non-negative, got %g", raw.RenderRate)
	}

	cfg := &Cfg{
		DataDir:      raw.DataDir,
		DBPath:       raw.DBPath,
		PresetFile:   raw.PresetFile,
		WatchPreset:  raw.WatchPreset,
		MaxEntries:   raw.MaxEntries,
		SyncInterval: raw.SyncInterval,
		Port:         raw.Port,
		BaseUrl:      raw.BaseUrl,
		CacheTTL:     raw.CacheTTL,
		RenderRate:   raw.RenderRate,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
