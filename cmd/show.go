package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/jcdickinson/jsdocgen/internal/cas"
)

var showCmd = &cobra.Command{
	Use:   "show <hash>",
	Short: "Print a reference stored with --archive",
	Example: `  jsdocgen show 3f2a9c
  jsdocgen show 3f2a9c0d41e8b7...`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func runShow(cmd *cobra.Command, args []string) {
	hash, err := cas.Expand(args[0])
	if err != nil {
		log.Fatalf("lookup failed: %v", err)
	}

	content, format, err := cas.Read(hash)
	if err != nil {
		log.Fatalf("read failed: %v", err)
	}
	if debug {
		fmt.Fprintf(os.Stderr, "%s (%s)\n", hash, format)
	}
	os.Stdout.Write(content)
}
