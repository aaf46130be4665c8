package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/jcdickinson/jsdocgen/internal/cas"
	"github.com/jcdickinson/jsdocgen/internal/config"
	"github.com/jcdickinson/jsdocgen/internal/docs"
	"github.com/jcdickinson/jsdocgen/internal/jsdoc"
	"github.com/jcdickinson/jsdocgen/internal/markdown"
)

var (
	debug          bool
	packageVersion string
	outputPath     string
	archive        bool
)

var rootCmd = &cobra.Command{
	Use:   "jsdocgen [jsdoc.json]",
	Short: "Generate an API reference from a JSDoc JSON dump",
	Long: `Read the JSON produced by "jsdoc -X" (optionally zstd-compressed) from a
file or stdin, resolve type references and render the reference as Markdown,
HTML, JSON or YAML.`,
	Example: `  jsdoc -X src | jsdocgen --package-version 1.4.x > reference.md
  jsdocgen --google-maps --format html -o reference.html jsdoc.json
  jsdocgen --format json --archive jsdoc.json.zst`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRun:  setupLogging,
	SilenceUsage:      true,
	Run:               runGenerate,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func init() {
	persistent := rootCmd.PersistentFlags()
	persistent.BoolVar(&debug, "debug", false, "log pipeline details to stderr")
	persistent.StringVar(&packageVersion, "package-version", "", `package version, "1.4.x" is shortened to "1.4"`)
	persistent.Bool("google-maps", false, "link google.maps.* types to the Google Maps reference")
	persistent.String("labels", "short", "internal link labels: short or full")
	persistent.Bool("experimental", false, "mark the reference as documenting an experimental release")

	flags := rootCmd.Flags()
	flags.StringVarP(&outputPath, "output", "o", "", "write to file instead of stdout")
	flags.BoolVar(&archive, "archive", false, "store the rendered output in the local archive and print its hash")
	flags.StringP("format", "f", "markdown", "output format: markdown, html, json or yaml")

	viper.BindPFlag("links.external_namespace", persistent.Lookup("google-maps"))
	viper.BindPFlag("links.labels", persistent.Lookup("labels"))
	viper.BindPFlag("output.experimental", persistent.Lookup("experimental"))
	viper.BindPFlag("output.format", flags.Lookup("format"))

	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(refsCmd)
}

func setupLogging(cmd *cobra.Command, args []string) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadModel reads records from args[0] or stdin and builds the model.
func loadModel(args []string) (*docs.Model, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	var in io.Reader = os.Stdin
	source := "stdin"
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, nil, fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		in, source = f, args[0]
	}

	records, err := jsdoc.Decode(in)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", source, err)
	}
	slog.Debug("records decoded", "source", source, "count", len(records))

	m := docs.Generate(records, docs.Options{
		Version:      config.Version(packageVersion),
		Experimental: cfg.Output.Experimental,
		Links:        cfg.LinkConfig(),
		TreeRoot:     cfg.Tree.Root,
	})
	return m, cfg, nil
}

// render encodes m in format and returns the bytes with the archive extension.
func render(ctx context.Context, m *docs.Model, format string) ([]byte, string, error) {
	switch format {
	case "markdown":
		out, err := markdown.NewRenderer(m).Document(ctx, m)
		return []byte(out), "md", err
	case "html":
		out, err := markdown.NewRenderer(m).HTML(ctx, m)
		return out, "html", err
	case "json":
		out, err := json.MarshalIndent(m, "", "  ")
		return append(out, '\n'), "json", err
	case "yaml":
		out, err := yaml.Marshal(m)
		return out, "yaml", err
	default:
		return nil, "", fmt.Errorf("unknown output format %q", format)
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	m, cfg, err := loadModel(args)
	if err != nil {
		slog.Error("failed to build documentation", "error", err)
		os.Exit(1)
	}

	out, ext, err := render(cmd.Context(), m, cfg.Output.Format)
	if err != nil {
		slog.Error("failed to render documentation", "format", cfg.Output.Format, "error", err)
		os.Exit(1)
	}

	if archive {
		hash, err := cas.Write(out, ext)
		if err != nil {
			slog.Error("failed to archive output", "error", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "archived %s\n", hash)
	}

	if outputPath == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		slog.Error("failed to write output", "path", outputPath, "error", err)
		os.Exit(1)
	}
	slog.Debug("output written", "path", outputPath, "bytes", len(out))
}
