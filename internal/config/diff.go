package config

// ConfigDiff describes what changed between two configs.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	// SettingsChanged is true when the alert, border or layout sections
	// differ. These apply to a running plugin at the next frame.
	SettingsChanged bool

	// ListsChanged is true when a list path changed. Lists are loaded once
	// at startup, so this needs a restart.
	ListsChanged bool

	// MetricsChanged is true when the metrics section changed. This needs a
	// restart.
	MetricsChanged bool
}

// Any reports whether anything changed.
func (d ConfigDiff) Any() bool {
	return d.LogLevelChanged || d.SettingsChanged || d.ListsChanged || d.MetricsChanged
}

// NeedsRestart reports whether a change cannot be applied to a running
// engine.
func (d ConfigDiff) NeedsRestart() bool {
	return d.ListsChanged || d.MetricsChanged
}

// Diff compares old and new configs and returns what changed.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	d.SettingsChanged = old.Alert != new.Alert ||
		old.Border != new.Border ||
		old.Layout != new.Layout
	d.ListsChanged = old.Lists != new.Lists
	d.MetricsChanged = old.Metrics != new.Metrics

	return d
}
