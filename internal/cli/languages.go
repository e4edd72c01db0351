package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aseio6668/PolyType-sub001/internal/registry"
)

// languagesCmd represents the languages command
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the supported source languages",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, l := range registry.New().Languages() {
			fmt.Fprintf(out, "%-12s %s\n", l, strings.Join(l.Extensions(), " "))
		}
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
