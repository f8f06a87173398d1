package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildInfoFillsDefaults(t *testing.T) {
	info := Info{Version: "dev", Commit: "none", BuildDate: "unknown"}
	fillFromBuildInfo(&info, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-10-01T00:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	assert.Equal(t, "v0.3.0", info.Version)
	assert.Equal(t, "abc123", info.Commit)
	assert.Equal(t, "2026-10-01T00:00:00Z", info.BuildDate)
	assert.Contains(t, info.String(), "abc123 (modified)")
}

func TestLinkerValuesWin(t *testing.T) {
	info := Info{Version: "v1.0.0", Commit: "feed", BuildDate: "today"}
	fillFromBuildInfo(&info, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "other"}},
	})

	assert.Equal(t, "v1.0.0", info.Version)
	assert.Equal(t, "feed", info.Commit)
	assert.Equal(t, "today", info.BuildDate)
	assert.False(t, info.Modified)
}
