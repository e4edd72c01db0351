// Package migrate orchestrates the parse-emit pipeline over files and
// directory trees: discovery, per-file best-effort migration, output
// placement, and watch-mode re-migration gated by a content-hash cache.
package migrate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gobwas/glob"
	"github.com/google/uuid"
	"github.com/maypok86/otter"
	"go.uber.org/zap"

	"github.com/aseio6668/PolyType-sub001/internal/emit"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/registry"
	"github.com/aseio6668/PolyType-sub001/internal/validate"
)

// hashCacheSize bounds the content-hash cache used by watch mode.
const hashCacheSize = 8192

// Options configures a migration run. The zero value migrates next to the
// sources with default emitter settings.
type Options struct {
	// OutputDir receives the generated files; empty means next to each
	// source file.
	OutputDir string
	// PackageName, when set, is emitted as a package declaration at the top
	// of every output file.
	PackageName string
	// Recursive extends directory discovery into subdirectories.
	Recursive bool
	// IgnorePatterns are glob patterns matched against slash-separated
	// paths relative to the migration root, and against base names.
	IgnorePatterns []string
	// EmitterOptions overlays the emitter's defaults key by key.
	EmitterOptions emit.Options
	// ValidateOutput gates each output through the Java grammar before it
	// is written.
	ValidateOutput bool
	// Debounce is the watch-mode quiet period; zero means 500ms.
	Debounce time.Duration
	// Progress, when set, is invoked after each file in a batch.
	Progress func(done, total int, path string)
}

// Service runs migrations. Construct with NewService; the zero value is
// unusable.
type Service struct {
	reg    *registry.Registry
	logger *zap.Logger
	hashes otter.Cache[string, string]
}

// NewService creates a migration service. A nil registry gets the full
// built-in one; a nil logger disables logging.
func NewService(reg *registry.Registry, logger *zap.Logger) (*Service, error) {
	if reg == nil {
		reg = registry.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	hashes, err := otter.MustBuilder[string, string](hashCacheSize).Build()
	if err != nil {
		return nil, errors.Wrap(err, "building content-hash cache")
	}
	return &Service{reg: reg, logger: logger, hashes: hashes}, nil
}

// Close releases the content-hash cache.
func (s *Service) Close() { s.hashes.Close() }

// MigrateFile migrates one source file and writes its Java counterpart.
func (s *Service) MigrateFile(ctx context.Context, path string, opts Options) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parser, err := s.reg.ParserForPath(path)
	if err != nil {
		return nil, err
	}
	emitter, err := s.reg.EmitterFor(parser.Language())
	if err != nil {
		return nil, err
	}

	program, err := parser.ParseFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	for _, span := range program.Skipped {
		s.logger.Warn("skipped declaration",
			zap.String("file", path),
			zap.Int("line", span.Line),
			zap.String("reason", span.Reason))
	}

	text, err := emitter.Emit(program, s.emitterOptions(emitter, opts))
	if err != nil {
		return nil, errors.Wrapf(err, "emitting %s", path)
	}
	if opts.ValidateOutput {
		if err := validate.Java(withPackage(opts.PackageName, text)); err != nil {
			return nil, errors.Wrapf(err, "validating output for %s", path)
		}
	}

	outPath := outputPath(path, opts)
	if err := writeJavaFile(outPath, opts.PackageName, text); err != nil {
		return nil, err
	}

	s.logger.Info("migrated file",
		zap.String("source", path),
		zap.String("output", outPath),
		zap.String("language", parser.Language().String()),
		zap.Int("skipped", len(program.Skipped)))
	return &FileResult{
		Source:       path,
		Output:       outPath,
		Status:       StatusMigrated,
		SkippedSpans: program.Skipped,
	}, nil
}

// MigrateDir migrates every supported file under dir. Per-file failures are
// recorded and the batch continues; only discovery errors and context
// cancellation abort the run.
func (s *Service) MigrateDir(ctx context.Context, dir string, opts Options) (*Report, error) {
	files, err := s.discover(dir, opts)
	if err != nil {
		return nil, err
	}

	report := &Report{RunID: uuid.NewString(), StartedAt: time.Now()}
	s.logger.Info("starting migration run",
		zap.String("run_id", report.RunID),
		zap.String("dir", dir),
		zap.Int("files", len(files)))

	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := s.MigrateFile(ctx, path, opts)
		if err != nil {
			s.logger.Warn("migration failed", zap.String("file", path), zap.Error(err))
			report.Results = append(report.Results, FileResult{Source: path, Status: StatusFailed, Err: err})
		} else {
			report.Results = append(report.Results, *res)
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(files), path)
		}
	}

	report.Elapsed = time.Since(report.StartedAt)
	s.logger.Info("migration run finished",
		zap.String("run_id", report.RunID),
		zap.Int("migrated", report.Migrated()),
		zap.Int("failed", report.Failed()),
		zap.Duration("elapsed", report.Elapsed))
	return report, nil
}

// discover lists the supported source files under dir in sorted order.
func (s *Service) discover(dir string, opts Options) ([]string, error) {
	globs := make([]glob.Glob, 0, len(opts.IgnorePatterns))
	for _, pat := range opts.IgnorePatterns {
		g, err := glob.Compile(pat)
		if err != nil {
			return nil, errors.Wrapf(err, "ignore pattern %q", pat)
		}
		globs = append(globs, g)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !opts.Recursive || ignored(globs, rel, d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if ignored(globs, rel, d.Name()) {
			return nil
		}
		if _, err := lang.FromPath(path); err != nil {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "discovering sources under %s", dir)
	}
	sort.Strings(files)
	return files, nil
}

func ignored(globs []glob.Glob, rel, base string) bool {
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// emitterOptions overlays run-level emitter overrides onto the emitter's
// defaults.
func (s *Service) emitterOptions(emitter emit.Emitter, opts Options) emit.Options {
	out := emitter.DefaultOptions()
	for k, v := range opts.EmitterOptions {
		out = out.With(k, v)
	}
	return out
}

// outputPath derives the target file path: PascalCase base name with a
// .java suffix, in the output dir or next to the source.
func outputPath(src string, opts Options) string {
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(src)
	}
	return filepath.Join(dir, javaClassName(src)+".java")
}

// javaClassName converts a source file name to a Java type name: the base
// name without extension, PascalCased across -, _, . and space separators.
func javaClassName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	var b strings.Builder
	for _, part := range strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	}) {
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	if b.Len() == 0 {
		return "Generated"
	}
	return b.String()
}

// writeJavaFile writes content to path, creating parent directories and
// prepending a package declaration when one is configured.
func writeJavaFile(path, packageName, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating output directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(withPackage(packageName, content)), 0o644); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

func withPackage(packageName, content string) string {
	if packageName == "" {
		return content
	}
	return "package " + packageName + ";\n\n" + content
}

// changed records the file's content hash and reports whether it differs
// from the last recorded one. Unreadable files report unchanged.
func (s *Service) changed(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	if prev, ok := s.hashes.Get(path); ok && prev == digest {
		return false
	}
	s.hashes.Set(path, digest)
	return true
}
