package constants

// Frequency represents how often a habit is expected to be done
type Frequency string

// CompletionState represents the rollup state of a habit for a single day
type CompletionState int

const (
	AppName            = "garden"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/garden/garden.db"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DBConnectionEnvVar overrides the stored database connection string
	DBConnectionEnvVar = "GARDEN_DB_CONNECTION"

	// DefaultHabitColor is the accent assigned to habits created without one
	DefaultHabitColor = "#22c55e"

	// DefaultGoalPerWeek applies to weekly habits created without a goal
	DefaultGoalPerWeek = 1

	// Frequency constants
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"

	// Settings keys
	SettingCurrentSong = "current_song"

	// Completion states
	CompletionNone CompletionState = iota
	CompletionPartial
	CompletionComplete
)

// Valid reports whether f is a known frequency.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

func (s CompletionState) String() string {
	switch s {
	case CompletionPartial:
		return "partial"
	case CompletionComplete:
		return "complete"
	default:
		return "none"
	}
}
