package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aseio6668/PolyType-sub001/internal/config"
	"github.com/aseio6668/PolyType-sub001/internal/emit"
	"github.com/aseio6668/PolyType-sub001/internal/migrate"
)

var quietFlag bool

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate [path]",
	Short: "Migrate a source file or directory to Java",
	Long: `Migrate parses the declarations in a source file or directory tree and
writes Java skeleton files.

Examples:
  # Migrate a single file next to itself
  polytype migrate src/main.rs

  # Migrate a tree into a package
  polytype migrate ./src -o generated -p com.example.app -r

  # Migrate and check every output against the Java grammar
  polytype migrate ./src --validate
`,
	Args:    cobra.ExactArgs(1),
	PreRunE: bindMigrationFlags,
	RunE:    runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	addMigrationFlags(migrateCmd)
	migrateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	migrateCmd.Flags().Bool("validate", false, "Check emitted Java against the Java grammar")
}

// addMigrationFlags registers the flags shared by migrate and watch.
func addMigrationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "Output directory (default: next to each source)")
	cmd.Flags().StringP("package", "p", "", "Java package declared in every output file")
	cmd.Flags().BoolP("recursive", "r", true, "Descend into subdirectories")
	cmd.Flags().StringSlice("ignore", nil, "Glob patterns to exclude from discovery")
	cmd.Flags().Bool("javadoc", false, "Emit Javadoc blocks above declarations")
	cmd.Flags().Int("indent", 0, "Indent width in spaces (default 4)")
}

// bindMigrationFlags binds this command's flags to viper at invocation time.
// migrate and watch share key names, so binding cannot happen in init.
func bindMigrationFlags(cmd *cobra.Command, _ []string) error {
	bindings := map[string]string{
		"output_dir": "out",
		"package":    "package",
		"recursive":  "recursive",
		"ignore":     "ignore",
	}
	if cmd.Flags().Lookup("validate") != nil {
		bindings["validate"] = "validate"
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, opts, err := migrationOptions(cmd)
	if err != nil {
		return err
	}
	opts.ValidateOutput = cfg.Validate

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	svc, err := migrate.NewService(nil, logger)
	if err != nil {
		return err
	}
	defer svc.Close()

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	if !info.IsDir() {
		res, err := svc.MigrateFile(ctx, path, opts)
		if err != nil {
			return err
		}
		if !quietFlag {
			fmt.Printf("✓ %s → %s\n", res.Source, res.Output)
		}
		return nil
	}

	progress := newMigrationProgress(quietFlag)
	opts.Progress = progress.onFile

	report, err := svc.MigrateDir(ctx, path, opts)
	if err != nil {
		return err
	}
	progress.finish()

	if !quietFlag {
		fmt.Printf("✓ Migration %s: %d migrated, %d failed, %d declarations skipped (%.1fs)\n",
			report.RunID, report.Migrated(), report.Failed(), report.SkippedSpans(),
			report.Elapsed.Seconds())
		for _, res := range report.Results {
			if res.Status == migrate.StatusFailed {
				fmt.Fprintf(os.Stderr, "  failed: %s: %v\n", res.Source, res.Err)
			}
		}
	}
	return nil
}

// migrationOptions merges config file, env, and flags into service options.
func migrationOptions(cmd *cobra.Command) (*config.Config, migrate.Options, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, migrate.Options{}, err
	}

	emitterOpts := emit.Options{}
	for k, v := range cfg.Emitter {
		emitterOpts[k] = v
	}
	if javadoc, err := cmd.Flags().GetBool("javadoc"); err == nil && javadoc {
		emitterOpts[emit.OptGenerateJavadoc] = true
	}
	if indent, err := cmd.Flags().GetInt("indent"); err == nil && indent > 0 {
		emitterOpts[emit.OptIndentSize] = indent
	}

	return cfg, migrate.Options{
		OutputDir:      cfg.OutputDir,
		PackageName:    cfg.PackageName,
		Recursive:      cfg.Recursive,
		IgnorePatterns: cfg.IgnorePatterns,
		EmitterOptions: emitterOpts,
	}, nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
