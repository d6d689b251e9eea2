package config_test

import (
	"testing"

	"github.com/krfshft/PoeHud-Sunbeam/internal/config"
)

func TestDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		mutate      func(*config.Config)
		want        config.ConfigDiff
		wantRestart bool
	}{
		{
			name:   "no changes",
			mutate: func(*config.Config) {},
		},
		{
			name:   "log level",
			mutate: func(c *config.Config) { c.Server.LogLevel = config.LogDebug },
			want:   config.ConfigDiff{LogLevelChanged: true, NewLogLevel: config.LogDebug},
		},
		{
			name:   "alert rule",
			mutate: func(c *config.Config) { c.Alert.QualityItems.Flask.MinQuality = 20 },
			want:   config.ConfigDiff{SettingsChanged: true},
		},
		{
			name:   "border color",
			mutate: func(c *config.Config) { c.Border.Color = config.Color{R: 1, A: 255} },
			want:   config.ConfigDiff{SettingsChanged: true},
		},
		{
			name:   "layout anchor",
			mutate: func(c *config.Config) { c.Layout.Anchor.X = 10 },
			want:   config.ConfigDiff{SettingsChanged: true},
		},
		{
			name:        "list path",
			mutate:      func(c *config.Config) { c.Lists.Currency = "other.txt" },
			want:        config.ConfigDiff{ListsChanged: true},
			wantRestart: true,
		},
		{
			name:        "metrics address",
			mutate:      func(c *config.Config) { c.Metrics.ListenAddr = ":9100" },
			want:        config.ConfigDiff{MetricsChanged: true},
			wantRestart: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			old, new := config.Default(), config.Default()
			tc.mutate(new)

			d := config.Diff(old, new)
			if d != tc.want {
				t.Errorf("Diff = %+v, want %+v", d, tc.want)
			}
			if d.NeedsRestart() != tc.wantRestart {
				t.Errorf("NeedsRestart = %v, want %v", d.NeedsRestart(), tc.wantRestart)
			}
			if d.Any() == (tc.want == config.ConfigDiff{}) {
				t.Errorf("Any = %v for %+v", d.Any(), d)
			}
		})
	}
}
