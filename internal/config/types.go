package config

// Config is marquee's whole configuration file (YAML or JSON).
//
// The venue sections (hours, auditoriums, movies) mirror the shape the
// box-office tooling exports; the rest configures the daemon around the
// engine.
type Config struct {
	Logging LoggingConfig  `json:"logging"`
	Storage *StorageConfig `json:"storage,omitempty"`
	Planner PlannerConfig  `json:"planner"`
	Engine  EngineConfig   `json:"engine"`

	Hours       []HoursEntry      `json:"hours"`
	Auditoriums []AuditoriumEntry `json:"auditoriums"`
	Movies      []MovieEntry      `json:"movies"`
}

type LoggingConfig struct {
	Level   string      `json:"level"`
	Console bool        `json:"console"`
	File    LoggingFile `json:"file"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// StorageConfig controls the optional schedule archive.
//
// Example:
//
//	"storage": { "driver": "sqlite", "path": "./marquee.db" }
type StorageConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}

// PlannerConfig controls the regeneration daemon.
//
// Spec accepts robfig/cron syntax including descriptors ("@daily",
// "@every 6h"). Days is the forward horizon regenerated on each trigger.
type PlannerConfig struct {
	Enabled  bool   `json:"enabled"`
	Spec     string `json:"spec,omitempty"`     // default "@daily"
	Days     int    `json:"days,omitempty"`     // default 7
	Timezone string `json:"timezone,omitempty"` // IANA TZ, e.g. "Europe/Madrid"

	// ReloadMinInterval is a Go duration string bounding how often a config
	// hot reload may trigger regeneration. Default "30s".
	ReloadMinInterval string `json:"reload_min_interval,omitempty"`
}

// EngineConfig tunes schedule generation.
type EngineConfig struct {
	Seed       int64 `json:"seed,omitempty"`
	MaxRetries int   `json:"max_retries,omitempty"`
	Workers    int   `json:"workers,omitempty"`
}

// HoursEntry is one operating window: Day is "Weekday" or "Weekend",
// Open/Close are "HH:MM".
type HoursEntry struct {
	Day   string `json:"day"`
	Open  string `json:"open"`
	Close string `json:"close"`
}

type AuditoriumEntry struct {
	Room     int `json:"room"`
	SizeRank int `json:"size_rank"`
}

// MovieEntry is one catalog row. Runtime is whole minutes; ReleaseDate is
// "2006-01-02".
type MovieEntry struct {
	Title       string `json:"title"`
	Runtime     int    `json:"runtime"`
	ReleaseDate string `json:"release_date"`
	Weeks       int    `json:"weeks"`
}
