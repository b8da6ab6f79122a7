package render_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-seqlength/internal/artifact"
	"github.com/askiada/go-seqlength/internal/failure"
	"github.com/askiada/go-seqlength/internal/partition"
	"github.com/askiada/go-seqlength/internal/render"
)

type recordingViewer struct {
	shown []string
	err   error
}

func (v *recordingViewer) Show(_ context.Context, path string) error {
	v.shown = append(v.shown, path)

	return v.err
}

func decode(t *testing.T, path string) image.Image {
	t.Helper()

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)

	return img
}

// countPixels counts the pixels where channel main dominates the other two.
func countPixels(img image.Image, main int) int {
	total := 0
	b := img.Bounds()

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			ch := [3]uint32{r >> 8, g >> 8, bl >> 8}

			dominant := ch[main] > 100
			for i, v := range ch {
				if i != main && v+60 > ch[main] {
					dominant = false
				}
			}

			if dominant {
				total++
			}
		}
	}

	return total
}

const (
	red = iota
	green
	blue
)

func TestJobs(t *testing.T) {
	t.Parallel()

	set := artifact.New("out", 200, artifact.Nucleotide)
	res := partition.Result{Above: []int{250, 200}, Below: []int{150}}

	jobs := render.Jobs(set, res)
	require.Len(t, jobs, 4)

	assert.Equal(t, "Seq Length Distribution Above 199 bp", jobs[0].Title)
	assert.Equal(t, set.AboveHistogram(), jobs[0].Path)
	assert.Equal(t, render.Linear, jobs[0].Scale)
	assert.Equal(t, res.Above, jobs[0].Lengths)

	assert.Equal(t, "Seq Length Distribution Below 200 bp", jobs[1].Title)
	assert.Equal(t, set.BelowHistogram(), jobs[1].Path)
	assert.Equal(t, res.Below, jobs[1].Lengths)

	assert.Equal(t, "Log-Scale Distribution Above 199 bp", jobs[2].Title)
	assert.Equal(t, set.AboveLogHistogram(), jobs[2].Path)
	assert.Equal(t, render.Log, jobs[2].Scale)

	assert.Equal(t, "Log-Scale Distribution Below 200 bp", jobs[3].Title)
	assert.Equal(t, set.BelowLogHistogram(), jobs[3].Path)
	assert.Equal(t, render.Log, jobs[3].Scale)
	assert.Equal(t, res.Below, jobs[3].Lengths)
}

func TestRender(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		lengths   []int
		scale     render.Scale
		fill      int
		expFilled bool
	}{
		"linear":       {lengths: []int{200, 250, 250, 300, 1000, 1000, 1000}, scale: render.Linear, fill: blue, expFilled: true},
		"log":          {lengths: []int{200, 250, 250, 300, 1000, 1000, 1000}, scale: render.Log, fill: green, expFilled: true},
		"single value": {lengths: []int{42}, scale: render.Log, fill: green, expFilled: true},
		"linear empty": {scale: render.Linear, fill: blue},
		"log empty":    {scale: render.Log, fill: green},
	}

	for name, tc := range tcs {
		name, tc := name, tc

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "hist.png")
			r := render.NewRenderer(log.New(io.Discard))

			err := r.Render(context.Background(), render.Job{Lengths: tc.lengths, Title: name, Path: path, Scale: tc.scale})
			require.NoError(t, err)

			img := decode(t, path)
			assert.Equal(t, 640, img.Bounds().Dx())
			assert.Equal(t, 480, img.Bounds().Dy())

			if tc.expFilled {
				assert.Positive(t, countPixels(img, tc.fill))
			} else {
				assert.Zero(t, countPixels(img, tc.fill))
			}

			assert.Zero(t, countPixels(img, red))
		})
	}
}

func TestRenderOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o600))

	r := render.NewRenderer(log.New(io.Discard))
	require.NoError(t, r.Render(context.Background(), render.Job{Lengths: []int{1, 2, 3}, Title: "overwrite", Path: path}))

	decode(t, path)
}

func TestRenderUnwritable(t *testing.T) {
	t.Parallel()

	r := render.NewRenderer(log.New(io.Discard))
	err := r.Render(context.Background(), render.Job{Title: "nowhere", Path: filepath.Join(t.TempDir(), "missing", "hist.png")})
	assert.ErrorIs(t, err, failure.ErrOutputWriteFailure)
}

func TestRenderShowsWithViewer(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	dir := t.TempDir()
	viewer := &recordingViewer{err: assert.AnError}
	r := render.NewRenderer(log.New(&logs), render.WithViewer(viewer))

	jobs := render.Jobs(artifact.New(dir, 10, artifact.AminoAcid), partition.Result{Above: []int{10, 20}, Below: []int{}})
	require.NoError(t, r.RenderAll(context.Background(), jobs))

	require.Len(t, viewer.shown, 4)

	for i, job := range jobs {
		assert.Equal(t, job.Path, viewer.shown[i])
		assert.FileExists(t, job.Path)
	}

	assert.Contains(t, logs.String(), "unable to show histogram")
}

func TestRenderViewerWarningFitsOnOneLine(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	viewer := &recordingViewer{err: errors.Wrap(errors.New("exit status 1"), "xdg-open failed")}
	r := render.NewRenderer(log.New(&logs), render.WithViewer(viewer))

	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, r.Render(context.Background(), render.Job{Lengths: []int{5}, Title: "one", Path: path}))

	lines := strings.Split(strings.TrimRight(logs.String(), "\n"), "\n")
	require.Len(t, lines, 2, "one info and one warning")
	assert.Contains(t, lines[1], "xdg-open failed: exit status 1")
	assert.NotContains(t, logs.String(), "runtime.")
}

func TestRenderAllCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := filepath.Join(t.TempDir(), "hist.png")
	r := render.NewRenderer(log.New(io.Discard))

	err := r.RenderAll(ctx, []render.Job{{Path: path}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}
