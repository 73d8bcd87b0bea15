package walkthrough_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/dustin/go-humanize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fstour/pkg/fstour"
	"github.com/arthur-debert/fstour/pkg/fstour/config"
	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/testutil"
	"github.com/arthur-debert/fstour/pkg/fstour/walkthrough"
)

func tourConfig(h *testutil.RealFSTestHelper) config.Config {
	h.Mkdir("tmp")
	cfg := config.Default()
	cfg.WorkDir = h.TempDir()
	cfg.TempDir = h.Path("tmp")
	cfg.RelativizeBase = h.TempDir()
	return cfg
}

func lines(out string) []string {
	return strings.Split(strings.TrimRight(out, "\n"), "\n")
}

// section returns the lines after header up to the first line for which
// stop returns true.
func section(t *testing.T, all []string, header string, stop func(string) bool) []string {
	t.Helper()
	for i, l := range all {
		if l != header {
			continue
		}
		var out []string
		for _, next := range all[i+1:] {
			if stop(next) {
				break
			}
			out = append(out, next)
		}
		return out
	}
	t.Fatalf("header %q not found in output", header)
	return nil
}

func startsWith(prefix string) func(string) bool {
	return func(s string) bool { return strings.HasPrefix(s, prefix) }
}

func TestRunner_FullTour(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t).WithAssets()
	require.NoError(t, os.Chmod(h.Path("assets/notes.txt"), 0o640))
	cfg := tourConfig(h)

	var out bytes.Buffer
	runner := walkthrough.NewRunner(h.FileSystem(), cfg, &out, fstour.NewTestLogger(io.Discard, 0))

	result, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success())
	assert.Len(t, result.Steps, 16)
	assert.NotEmpty(t, result.RunID)

	got := lines(out.String())
	assert.Equal(t, "assets/notes.txt", got[0])
	assert.Equal(t, "Absolute path: "+h.Path("assets/notes.txt"), got[1])
	assert.True(t, strings.HasPrefix(got[2], "Last modified time: "), got[2])

	size := len(testutil.NotesContent)
	for _, want := range []string{
		"Exists: true",
		fmt.Sprintf("Size: %s (%d bytes)", humanize.Bytes(uint64(size)), size),
		"Mismatch index: -1",
		"Temp file deleted",
		"Temp directory deleted",
		"Directory created: assets/tasks",
		"File created: assets/tasks/task.txt",
		"Permissions: [OWNER_READ, OWNER_WRITE, GROUP_READ]",
		"File content: Hello World!",
		"File (auto created and edited) content: this is my string ää öö üü",
		"Relative path: ./assets/tasks is absolute: false",
		"Absolute path: " + h.TempDir() + "/./assets/tasks is absolute: true",
		"Normalized path: " + h.TempDir() + "/assets/tasks is absolute: true",
		"Relativized path: assets/tasks is absolute: false",
		"Moved file: assets/tasks/to-be-moved.txt to: assets/new-tasks/moved.txt",
		"Directory deleted: assets/tasks",
	} {
		assert.Contains(t, got, want)
	}

	var checksums []string
	for _, l := range got {
		if strings.HasPrefix(l, "Checksum ") {
			checksums = append(checksums, l[strings.LastIndex(l, " ")+1:])
		}
		if strings.HasPrefix(l, "Temp file: ") || strings.HasPrefix(l, "Temp directory: ") {
			assert.Contains(t, l, h.Path("tmp")+"/temp")
		}
		if strings.HasPrefix(l, "Owner: ") {
			assert.NotEqual(t, "Owner: ", l)
		}
	}
	require.Len(t, checksums, 2)
	assert.Equal(t, checksums[0], checksums[1])

	tasks := []string{"assets/tasks/task.txt", "assets/tasks/auto-created.txt"}
	assert.ElementsMatch(t, tasks,
		section(t, got, "Files in directory (assets/tasks): ", startsWith("Files in directory")))
	assert.ElementsMatch(t, tasks,
		section(t, got, "Files in directory (assets/tasks) using a directory stream with a glob pattern: ", startsWith("Files in directory")))
	assert.ElementsMatch(t, []string{
		"assets",
		"assets/notes.txt",
		"assets/notes-copy.txt",
		"assets/tasks",
		"assets/tasks/task.txt",
		"assets/tasks/auto-created.txt",
	}, section(t, got, "Files in directory (assets) recursively: ", startsWith("Relative path:")))

	assert.False(t, h.Exists("assets/tasks"))
	assert.True(t, h.Exists("assets/new-tasks/moved.txt"))
	assert.True(t, h.Exists("assets/notes.txt"))

	entries, err := os.ReadDir(h.Path("tmp"))
	require.NoError(t, err)
	assert.Empty(t, entries, "temp entries are removed")
}

func TestRunner_SecondRunIsIdempotent(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t).WithAssets()
	cfg := tourConfig(h)
	runner := walkthrough.NewRunner(h.FileSystem(), cfg, io.Discard, fstour.NewTestLogger(io.Discard, 0))

	_, err := runner.Run(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	runner = walkthrough.NewRunner(h.FileSystem(), cfg, &out, fstour.NewTestLogger(io.Discard, 0))
	_, err = runner.Run(context.Background(), "move", "cleanup")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Directory created: assets/tasks",
		"File created: assets/tasks/task.txt",
		"Moved file: assets/tasks/to-be-moved.txt to: assets/new-tasks/moved.txt",
		"Directory deleted: assets/tasks",
	}, lines(out.String()))
	assert.True(t, h.Exists("assets/new-tasks/moved.txt"))
	assert.False(t, h.Exists("assets/tasks"))
}

func TestRunner_CancelledContext(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t).WithAssets()
	cfg := tourConfig(h)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	runner := walkthrough.NewRunner(h.FileSystem(), cfg, &out, fstour.NewTestLogger(io.Discard, 0))
	result, err := runner.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result.Steps)
	assert.Empty(t, out.String())
	assert.False(t, h.Exists("assets/tasks"))
}

func TestRunner_CancelBetweenSteps(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t)
	ctx, cancel := context.WithCancel(context.Background())

	var ran []string
	reg := walkthrough.NewRegistry()
	require.NoError(t, reg.Register(
		walkthrough.Step{Name: "one", Run: func(*walkthrough.Tour) error {
			ran = append(ran, "one")
			cancel()
			return nil
		}},
		walkthrough.Step{Name: "two", Run: func(*walkthrough.Tour) error {
			ran = append(ran, "two")
			return nil
		}},
	))

	runner := walkthrough.NewRunner(h.FileSystem(), tourConfig(h), io.Discard, fstour.NewTestLogger(io.Discard, 0)).
		WithRegistry(reg)
	_, err := runner.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"one"}, ran)
}

func TestRunner_FirstErrorAborts(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t)
	boom := errors.New("boom")

	var ran []string
	reg := walkthrough.NewRegistry()
	require.NoError(t, reg.Register(
		walkthrough.Step{Name: "fail", Run: func(*walkthrough.Tour) error {
			ran = append(ran, "fail")
			return boom
		}},
		walkthrough.Step{Name: "after", Run: func(*walkthrough.Tour) error {
			ran = append(ran, "after")
			return nil
		}},
	))

	runner := walkthrough.NewRunner(h.FileSystem(), tourConfig(h), io.Discard, fstour.NewTestLogger(io.Discard, 0)).
		WithRegistry(reg)
	result, err := runner.Run(context.Background())

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step fail:")
	assert.Equal(t, []string{"fail"}, ran)
	assert.False(t, result.Success())
	require.Len(t, result.Steps, 1)
	assert.ErrorIs(t, result.Steps[0].Error, boom)
}

func TestRunner_MissingAssets(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t)
	var out bytes.Buffer
	runner := walkthrough.NewRunner(h.FileSystem(), tourConfig(h), &out, fstour.NewTestLogger(io.Discard, 0))

	_, err := runner.Run(context.Background(), "size", "exists")
	require.Error(t, err)
	assert.True(t, core.IsNotFound(err), "got %v", err)
	assert.Contains(t, err.Error(), "step size:")
	assert.Equal(t, "Exists: false\n", out.String())
}

func TestRunner_LogsStepsWithRunID(t *testing.T) {
	h := testutil.NewRealFSTestHelper(t)
	var logs bytes.Buffer
	runner := walkthrough.NewRunner(h.FileSystem(), tourConfig(h), io.Discard, fstour.NewTestLogger(&logs, 2))

	result, err := runner.Run(context.Background(), "paths")
	require.NoError(t, err)

	assert.Contains(t, logs.String(), "step started")
	assert.Contains(t, logs.String(), "step finished")
	assert.Contains(t, logs.String(), "step=paths")
	assert.Contains(t, logs.String(), "run="+result.RunID)
}
