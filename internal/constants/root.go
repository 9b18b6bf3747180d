package constants

const (
	AppName            = "cockpit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/cockpit/cockpit.db"
	Version            = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultHeatmapDays is the trailing window rendered by skill heatmaps
	DefaultHeatmapDays = 90

	// DefaultDailyTargetMin is the practice target (minutes/day) used when a
	// skill defines no target of its own
	DefaultDailyTargetMin = 30

	DefaultSnoozeDays = 3
)

// SnoozeOptions are the deadline extensions (in days) offered by the
// decision workflow.
var SnoozeOptions = []int{1, 3, 7}
