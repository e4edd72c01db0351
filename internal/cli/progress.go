package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// migrationProgress renders a batch progress bar. The bar is created on the
// first callback, once the total is known.
type migrationProgress struct {
	quiet bool
	bar   *progressbar.ProgressBar
}

func newMigrationProgress(quiet bool) *migrationProgress {
	return &migrationProgress{quiet: quiet}
}

// onFile matches the migrate.Options.Progress signature.
func (p *migrationProgress) onFile(done, total int, path string) {
	if p.quiet {
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetDescription("Migrating files"),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("files/s"),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionOnCompletion(func() {
				fmt.Println()
			}),
		)
	}
	p.bar.Add(1)
}

func (p *migrationProgress) finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}
