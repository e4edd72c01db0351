package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aseio6668/PolyType-sub001/internal/migrate"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Migrate a directory and re-migrate files as they change",
	Long: `Watch migrates the directory once, then watches it for changes and
re-migrates modified files. Files whose content has not changed are
skipped. Stop with Ctrl+C.

Examples:
  polytype watch ./src -o generated -p com.example.app
`,
	Args:    cobra.ExactArgs(1),
	PreRunE: bindMigrationFlags,
	RunE:    runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addMigrationFlags(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	_, opts, err := migrationOptions(cmd)
	if err != nil {
		return err
	}

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

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	return svc.Watch(ctx, args[0], opts)
}
