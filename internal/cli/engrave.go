package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/staveline/staveline/pkg/pipeline"
	"github.com/staveline/staveline/pkg/scorefile"
)

// engraveCommand creates the engrave command for rendering score files.
func (c *CLI) engraveCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
		redisURL   string
	)
	opts := pipeline.Options{}
	setCLIDefaults(&opts)

	cmd := &cobra.Command{
		Use:   "engrave [score.toml]",
		Short: "Engrave a score file as sheet music",
		Long: `Engrave a score file as sheet music.

The engrave command parses a TOML score file, lays out the notation on a
grand staff, and renders the result to SVG, PNG, PDF, or JSON. Each stage
is cached locally so repeated runs over the same score are fast.

Use 'inspect' to examine a score without rendering it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			ctx := withLogger(cmd.Context(), c.Logger)
			return c.runEngrave(ctx, args[0], opts, output, noCache, redisURL)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for shared caching (default: local file cache)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass cache")

	// Render flags
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().StringVar(&opts.Background, "background", opts.Background, "background color")
	cmd.Flags().StringVar(&opts.Ink, "ink", opts.Ink, "stroke and glyph color")
	cmd.Flags().BoolVar(&opts.NoTitle, "no-title", opts.NoTitle, "omit the score title")

	return cmd
}

// runEngrave reads the score file, runs the full pipeline, and writes artifacts.
func (c *CLI) runEngrave(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool, redisURL string) error {
	logger := loggerFromContext(ctx)

	data, err := scorefile.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read score %s: %w", input, err)
	}
	opts.Source = string(data)
	opts.Logger = logger

	runner, err := c.newRunner(ctx, noCache, redisURL)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	p := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Engraving %s...", filepath.Base(input)))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Engraving failed")
		return fmt.Errorf("engrave: %w", err)
	}
	spinner.Stop()
	p.done(fmt.Sprintf("Engraved %d measures", result.Stats.MeasureCount))

	title := result.Score.Title
	if title == "" {
		title = filepath.Base(input)
	}
	printSuccess("Engraved %s", title)
	printStats(result.Stats.MeasureCount, result.Stats.NoteCount, result.CacheInfo.RenderHit)

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    output,
	})
}

// =============================================================================
// Artifact Output
// =============================================================================

// artifactWriteParams bundles the inputs for writeArtifacts.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
}

// writeArtifacts writes each rendered artifact to disk.
// A single format with an explicit output path is written exactly there;
// otherwise paths are derived from the base path, one file per format.
func writeArtifacts(params artifactWriteParams) error {
	if len(params.formats) == 1 && params.output != "" {
		return writeArtifact(params.artifacts[params.formats[0]], params.output)
	}

	base := basePath(params.output, params.input)
	for _, format := range params.formats {
		path := base + "." + format
		if err := writeArtifact(params.artifacts[format], path); err != nil {
			return err
		}
	}
	return nil
}

// writeArtifact writes a single artifact and prints the output line.
func writeArtifact(data []byte, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
// This is used when generating multiple files (e.g., score.svg, score.png).
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	// Strip known format extensions from output path
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// nopCloser wraps an io.Writer with a no-op Close method.
// It is used to make os.Stdout compatible with io.WriteCloser.
type nopCloser struct{ io.Writer }

// Close implements io.Closer with a no-op.
func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
// Otherwise, it creates the file at path, overwriting if it exists.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
