package feeder_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/oconnor663/founder/internal/feeder"
	"github.com/oconnor663/founder/internal/history"
	"github.com/oconnor663/founder/internal/paths"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const (
	home = "/home/u"
	cwd  = "/home/u/p"
)

func newFeeder(localOnly bool) *feeder.Feeder {
	return feeder.New(paths.NewNormalizer(home), feeder.Options{Cwd: cwd, LocalOnly: localOnly})
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestEmptyHistoryPassesScanThrough(t *testing.T) {
	f := newFeeder(false)
	var out bytes.Buffer

	require.NoError(t, f.WriteHistory(&out, history.NewLog().NewestFirst()))
	require.NoError(t, f.Stream(&out, strings.NewReader("a.txt\nb/c.txt\n")))

	assert.Equal(t, "a.txt\nb/c.txt\n", out.String())
}

func TestDuplicateHistoryRelativizedOnce(t *testing.T) {
	f := newFeeder(false)
	var out bytes.Buffer

	log := history.NewLog("/home/u/p/a.txt", "/home/u/p/a.txt")
	require.NoError(t, f.WriteHistory(&out, log.NewestFirst()))
	require.NoError(t, f.Stream(&out, strings.NewReader("a.txt\nb.txt\n")))

	assert.Equal(t, "a.txt\nb.txt\n", out.String())
}

func TestDuplicateHistoryInHomeRelativizedOnce(t *testing.T) {
	for _, localOnly := range []bool{false, true} {
		f := feeder.New(paths.NewNormalizer(home), feeder.Options{Cwd: home, LocalOnly: localOnly})
		var out bytes.Buffer

		log := history.NewLog("/home/u/x.txt", "/home/u/x.txt")
		require.NoError(t, f.WriteHistory(&out, log.NewestFirst()))
		assert.Equal(t, "x.txt\n", out.String(), "localOnly=%v", localOnly)

		require.NoError(t, f.Stream(&out, strings.NewReader("x.txt\n./x.txt\ny.txt\n")))
		assert.Equal(t, "x.txt\ny.txt\n", out.String(), "localOnly=%v", localOnly)
	}
}

func TestHistoryOrderAndDisplay(t *testing.T) {
	tests := []struct {
		name      string
		localOnly bool
		records   []string
		want      []string
	}{
		{
			name:    "global shows everything newest first",
			records: []string{"/etc/hosts", "/home/u/q/x", "/home/u/p/a.txt"},
			want:    []string{"a.txt", "~/q/x", "/etc/hosts"},
		},
		{
			name:      "local hides entries outside cwd",
			localOnly: true,
			records:   []string{"/etc/hosts", "/home/u/q/x", "/home/u/p/a.txt", "/home/u/p/b/c"},
			want:      []string{"b/c", "a.txt"},
		},
		{
			name:      "local rejects sibling with shared prefix",
			localOnly: true,
			records:   []string{"/home/u/pp/x", "/home/u/p/y"},
			want:      []string{"y"},
		},
		{
			name:    "duplicates keep newest position",
			records: []string{"/home/u/p/a", "/home/u/p/b", "/home/u/p/a"},
			want:    []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFeeder(tt.localOnly)
			var out bytes.Buffer

			require.NoError(t, f.WriteHistory(&out, history.NewLog(tt.records...).NewestFirst()))
			if diff := cmp.Diff(tt.want, lines(out.String())); diff != "" {
				t.Errorf("WriteHistory() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanLinesDeduplicated(t *testing.T) {
	f := newFeeder(false)
	var out bytes.Buffer

	log := history.NewLog("/home/u/p/b.txt", "/elsewhere/z")
	require.NoError(t, f.WriteHistory(&out, log.NewestFirst()))

	scan := "a.txt\nb.txt\n./a.txt\n\nc.txt\nc.txt\n~/weird\nlast"
	require.NoError(t, f.Stream(&out, strings.NewReader(scan)))

	want := []string{"/elsewhere/z", "b.txt", "a.txt", "c.txt", "./~/weird", "last"}
	if diff := cmp.Diff(want, lines(out.String())); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}

	// No relativized path appears twice.
	got := lines(out.String())
	sorted := slices.Clone(got)
	slices.Sort(sorted)
	assert.Equal(t, len(sorted), len(slices.Compact(sorted)))
	assert.Equal(t, len(got), f.Seen())
}

// closedWriter fails every write the way a pipe does once the reader exits.
type closedWriter struct{ err error }

func (w closedWriter) Write([]byte) (int, error) { return 0, w.err }

func TestBrokenPipeIsNotAnError(t *testing.T) {
	for _, err := range []error{
		syscall.EPIPE,
		&os.PathError{Op: "write", Path: "|1", Err: syscall.EPIPE},
		io.ErrClosedPipe,
		os.ErrClosed,
	} {
		t.Run(err.Error(), func(t *testing.T) {
			f := newFeeder(false)
			w := closedWriter{err: err}

			assert.NoError(t, f.WriteHistory(w, history.NewLog("/a").NewestFirst()))
			assert.NoError(t, f.Stream(w, strings.NewReader("x\ny\n")))
		})
	}
}

func TestOtherWriteErrorsPropagate(t *testing.T) {
	f := newFeeder(false)
	boom := errors.New("disk on fire")

	err := f.Stream(closedWriter{err: boom}, strings.NewReader("x\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

// TestConcurrentPipeline runs Stream on its own goroutine against a reader
// that stops early, the way the selector does.
func TestConcurrentPipeline(t *testing.T) {
	scanR, scanW := io.Pipe()
	selR, selW := io.Pipe()

	f := newFeeder(false)

	var g errgroup.Group
	g.Go(func() error {
		for i := range 10000 {
			if _, err := fmt.Fprintf(scanW, "file%d\n", i); err != nil {
				return nil
			}
		}
		return scanW.Close()
	})

	g.Go(func() error {
		defer selW.Close()
		// io.Pipe has no buffer, so history is written here rather than
		// before the reader starts.
		if err := f.WriteHistory(selW, history.NewLog("/home/u/p/file3").NewestFirst()); err != nil {
			return err
		}
		return f.Stream(selW, scanR)
	})

	// Read a few lines then hang up, like a selector that accepted early.
	buf := make([]byte, 64)
	n, err := io.ReadAtLeast(selR, buf, 16)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(buf[:n]), "file3\n"))
	require.NoError(t, selR.Close())

	// Killing the scanner unblocks its writer.
	_ = scanR.Close()

	require.NoError(t, g.Wait())
}

func TestIsBrokenPipe(t *testing.T) {
	assert.True(t, feeder.IsBrokenPipe(fmt.Errorf("wrapped: %w", syscall.EPIPE)))
	assert.True(t, feeder.IsBrokenPipe(io.ErrClosedPipe))
	assert.False(t, feeder.IsBrokenPipe(io.EOF))
	assert.False(t, feeder.IsBrokenPipe(nil))
}
