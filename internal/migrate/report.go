package migrate

import (
	"time"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
)

// Status labels the outcome of one file's migration.
type Status int

const (
	// StatusMigrated means the output file was written.
	StatusMigrated Status = iota
	// StatusFailed means the file was reported and the batch continued.
	StatusFailed
)

func (s Status) String() string {
	if s == StatusMigrated {
		return "migrated"
	}
	return "failed"
}

// FileResult is the outcome of one file in a batch.
type FileResult struct {
	Source       string
	Output       string
	Status       Status
	Err          error
	SkippedSpans []ast.SkippedSpan
}

// Report summarizes one migration run.
type Report struct {
	RunID     string
	StartedAt time.Time
	Elapsed   time.Duration
	Results   []FileResult
}

// Migrated counts files whose output was written.
func (r *Report) Migrated() int {
	n := 0
	for _, res := range r.Results {
		if res.Status == StatusMigrated {
			n++
		}
	}
	return n
}

// Failed counts files that were reported and skipped.
func (r *Report) Failed() int { return len(r.Results) - r.Migrated() }

// SkippedSpans counts declarations the parsers could not understand across
// the whole run.
func (r *Report) SkippedSpans() int {
	n := 0
	for _, res := range r.Results {
		n += len(res.SkippedSpans)
	}
	return n
}
