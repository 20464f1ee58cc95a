// Package progress reports the progress of photo downloads.
package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
)

// Reporter follows one download run: Start once, Saved per written file,
// Done once with the run's outcome.
type Reporter interface {
	Start(total int)
	Saved(name string, size int64)
	Done(err error)
}

// NewReporter writes to stderr: plain lines when running under CI, a
// progress bar otherwise.
func NewReporter() Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &LineReporter{Out: os.Stderr}
	}
	return &BarReporter{Out: os.Stderr}
}

// tally counts what a run has saved so far.
type tally struct {
	total int
	saved int
	bytes int64
}

func (t *tally) add(size int64) {
	t.saved++
	t.bytes += size
}

func (t *tally) summary(err error) string {
	if err != nil {
		return fmt.Sprintf("Stopped after %d of %d photos: %v", t.saved, t.total, err)
	}
	return fmt.Sprintf("Saved %d photos (%s)", t.saved, humanize.Bytes(uint64(t.bytes)))
}

// BarReporter draws a progress bar counting saved photos.
type BarReporter struct {
	Out io.Writer
	bar *progressbar.ProgressBar
	tally
}

func (r *BarReporter) Start(total int) {
	r.tally = tally{total: total}
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(r.Out),
		progressbar.OptionSetDescription("Saving photos"),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *BarReporter) Saved(name string, size int64) {
	r.add(size)
	if r.bar != nil {
		r.bar.Describe(name)
		_ = r.bar.Add(1)
	}
}

func (r *BarReporter) Done(err error) {
	if r.bar != nil {
		if err != nil {
			_ = r.bar.Exit()
		} else {
			_ = r.bar.Finish()
		}
	}
	fmt.Fprintln(r.Out, r.summary(err))
}

// LineReporter prints one line per saved photo, for logs without a terminal.
type LineReporter struct {
	Out io.Writer
	tally
}

func (r *LineReporter) Start(total int) {
	r.tally = tally{total: total}
	fmt.Fprintf(r.Out, "Saving %d photos\n", total)
}

func (r *LineReporter) Saved(name string, size int64) {
	r.add(size)
	fmt.Fprintf(r.Out, "[%d/%d] %s (%s)\n", r.saved, r.total, name, humanize.Bytes(uint64(size)))
}

func (r *LineReporter) Done(err error) {
	fmt.Fprintln(r.Out, r.summary(err))
}
