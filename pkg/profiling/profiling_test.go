package profiling

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock advances one millisecond per reading.
func fakeClock() func() time.Time {
	t := time.Unix(0, 0)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func TestNestedSpans(t *testing.T) {
	p := &Profiler{now: fakeClock()}
	p.Enable()

	outer := p.Start("replay")
	inner := p.Start("step 0")
	inner.Stop()
	outer.Stop()
	p.Start("after").Stop()

	var buf bytes.Buffer
	p.Summarize(&buf)
	out := buf.String()

	assert.Contains(t, out, "- replay (")
	assert.Contains(t, out, "  - step 0 (")
	assert.Contains(t, out, "- after (")
	assert.Less(t, strings.Index(out, "replay"), strings.Index(out, "after"))
}

func TestOutOfOrderStopClosesChildren(t *testing.T) {
	p := &Profiler{now: fakeClock()}
	p.Enable()

	outer := p.Start("outer")
	p.Start("leaked")
	outer.Stop()
	p.Start("sibling").Stop()

	require.Len(t, p.root.children, 2)
	assert.Equal(t, "sibling", p.root.children[1].name)
}

func TestDisabledProfilerIsSilent(t *testing.T) {
	var p Profiler
	p.Start("ignored").Stop()

	var buf bytes.Buffer
	p.Summarize(&buf)
	assert.Empty(t, buf.String())
}

func TestCobraProfilerWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")

	root := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	NewCobraProfiler().Attach(root)
	var errOut bytes.Buffer
	root.SetErr(&errOut)
	root.SetArgs([]string{"--cpu-profile", cpu, "--mem-profile", mem})

	require.NoError(t, root.Execute())
	assert.FileExists(t, cpu)
	info, err := os.Stat(mem)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
	assert.Contains(t, errOut.String(), "Memory profile written")
}
