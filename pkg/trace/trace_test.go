package trace

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/runner"
	"github.com/matzehuels/stepsort/pkg/sorter"
)

func newTestRunner(seed uint64) *runner.Runner {
	r := runner.NewRunner(log.New(io.Discard), 0)
	r.Seed = seed
	return r
}

func record(t *testing.T, r *runner.Runner, a sorter.Algorithm, input []uint32, maxFrames int) *Trace {
	t.Helper()
	rec := NewRecorder(a, input, maxFrames)
	res, err := r.RunTrace(context.Background(), a, input, rec.Record)
	require.NoError(t, err)
	return rec.Finish(res, r.Seed)
}

func TestRecorder(t *testing.T) {
	tr := record(t, newTestRunner(0), sorter.Bubble, []uint32{5, 2, 6}, 0)

	assert.Equal(t, "bubble", tr.Algorithm)
	assert.Equal(t, []uint32{5, 2, 6}, tr.Input)
	assert.Equal(t, []uint32{2, 5, 6}, tr.Output)
	assert.Len(t, tr.Frames, tr.Steps-1)
	assert.Zero(t, tr.Seed, "seed is only recorded for bogo sort")

	first := tr.Frames[0]
	assert.Equal(t, 1, first.Step)
	assert.Equal(t, [2]int{0, 1}, first.Special)
	assert.Equal(t, "comparing", first.Reason)
}

func TestRecorderFramesAreSnapshots(t *testing.T) {
	tr := record(t, newTestRunner(0), sorter.Insertion, []uint32{3, 2, 1}, 0)

	last := tr.Frames[len(tr.Frames)-1].Seq
	assert.NotEqual(t, tr.Frames[0].Seq, last)
	assert.Equal(t, []uint32{3, 2, 1}, tr.Frames[0].Seq, "first frame compares without writing")
}

func TestRecorderTruncates(t *testing.T) {
	tr := record(t, newTestRunner(0), sorter.Quick, []uint32{9, 8, 7, 6, 5, 4, 3, 2, 1}, 3)

	assert.Len(t, tr.Frames, 3)
	assert.True(t, tr.Truncated)
	require.NoError(t, tr.Replay(context.Background(), newTestRunner(0)))
}

func TestJSONRoundTripAndReplay(t *testing.T) {
	tr := record(t, newTestRunner(0), sorter.Heap, []uint32{4, 10, 3, 5, 1}, 0)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(tr, &buf))
	assert.Contains(t, buf.String(), `"algorithm": "heap"`)

	got, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.Equal(t, tr, got)
	assert.NoError(t, got.Replay(context.Background(), newTestRunner(0)))
}

func TestReplayDetectsTampering(t *testing.T) {
	tr := record(t, newTestRunner(0), sorter.Selection, []uint32{3, 1, 2}, 0)
	tr.Frames[1].Seq[0] += 100

	err := tr.Replay(context.Background(), newTestRunner(0))
	assert.True(t, errors.Is(err, errors.ErrCodeInvariantViolated), "err = %v", err)
}

func TestReplayBogo(t *testing.T) {
	tr := record(t, newTestRunner(99), sorter.Bogo, []uint32{3, 1, 2, 4}, 0)
	assert.Equal(t, uint64(99), tr.Seed)
	assert.NoError(t, tr.Replay(context.Background(), newTestRunner(0)))

	tr.Seed = 0
	err := tr.Replay(context.Background(), newTestRunner(0))
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported), "err = %v", err)
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"malformed", `{"algorithm":`, errors.ErrCodeInvalidFormat},
		{"unknown algorithm", `{"algorithm":"sleep","input":[1]}`, errors.ErrCodeInvalidAlgorithm},
		{"frame length", `{"algorithm":"bubble","input":[2,1],"frames":[{"step":1,"seq":[2]}]}`, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			assert.True(t, errors.Is(err, tt.code), "err = %v, want %s", err, tt.code)
		})
	}
}

func TestExportImportJSON(t *testing.T) {
	tr := record(t, newTestRunner(0), sorter.Merge, []uint32{2, 1}, 0)
	path := filepath.Join(t.TempDir(), "merge.json")

	require.NoError(t, ExportJSON(tr, path))
	got, err := ImportJSON(path)
	require.NoError(t, err)
	assert.Equal(t, tr.Frames, got.Frames)

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}
