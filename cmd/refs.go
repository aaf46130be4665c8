package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var refsCmd = &cobra.Command{
	Use:   "refs [jsdoc.json]",
	Short: "List the longnames that resolve to internal links",
	Args:  cobra.MaximumNArgs(1),
	Run:   runRefs,
}

func runRefs(cmd *cobra.Command, args []string) {
	m, _, err := loadModel(args)
	if err != nil {
		slog.Error("failed to build documentation", "error", err)
		os.Exit(1)
	}
	for _, name := range m.References.Sorted() {
		fmt.Println(name)
	}
}
