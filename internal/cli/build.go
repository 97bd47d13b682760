package cli

import (
	"context"
	"fmt"
	neturl "net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/slidegen/pkg/errors"
	"github.com/matzehuels/slidegen/pkg/highlight"
	"github.com/matzehuels/slidegen/pkg/pipeline"
)

// buildOpts holds the flags of the build command.
type buildOpts struct {
	output   string // output file, or base path when several formats are requested
	formats  string // comma separated: pptx (default), json, md
	noCache  bool
	refresh  bool
	style    string // chroma style overriding code.style
	language string // fallback code language overriding code.language
}

func (c *CLI) buildCommand() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [outline]",
		Short: "Render an outline as a presentation",
		Long: `Render a JSON, TOML, or YAML outline (a file or an http(s) URL) as a
PowerPoint presentation. With several formats, --output names the base path
and each format gets its own extension.

When the outline or the output name is missing and stdin is a terminal,
slidegen asks for them.`,
		Example: `  slidegen build talk.json
  slidegen build talk.yaml -o out/talk.pptx --style github
  slidegen build https://example.com/talk.json -f pptx,md`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input string
			if len(args) == 1 {
				input = args[0]
			}
			return c.runBuild(cmd.Context(), input, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (one format) or base path (several)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.DefaultFormat, "output format(s): pptx, json, md (comma-separated)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts and outlines")
	cmd.Flags().StringVar(&opts.style, "style", "", "code highlighting style (see 'slidegen styles')")
	cmd.Flags().StringVar(&opts.language, "language", "", "language for code blocks without a fence language")
	_ = cmd.RegisterFlagCompletionFunc("style", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return highlight.Styles(), cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{pipeline.FormatPPTX, pipeline.FormatJSON, pipeline.FormatMarkdown}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runBuild(ctx context.Context, input string, opts buildOpts) error {
	formats := pipeline.ParseFormats(opts.formats)
	if len(formats) == 0 {
		formats = []string{pipeline.DefaultFormat}
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}

	theme := c.cfg.Theme()
	if opts.style != "" {
		if !highlight.HasStyle(opts.style) {
			return apperrors.New(apperrors.ErrCodeInvalidTheme, "unknown style %q (see 'slidegen styles')", opts.style)
		}
		theme.Code.Style = opts.style
	}
	if opts.language != "" {
		theme.Code.Language = opts.language
	}

	interactive := stdinIsTerminal()
	if input == "" {
		if !interactive {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "outline path required")
		}
		v, err := prompt(os.Stdin, os.Stderr, "Outline file", "slides.json", validateInput)
		if err != nil {
			return err
		}
		input = v
	}
	if opts.output == "" && interactive {
		validate := func(s string) error {
			if err := apperrors.ValidateOutputPath(s); err != nil {
				return err
			}
			return checkOverwrite(outputPath(s, input, formats[0], false), input)
		}
		v, err := prompt(os.Stdin, os.Stderr, "Output file", outputPath("", input, formats[0], false), validate)
		if err != nil {
			return err
		}
		opts.output = v
	}
	multi := len(formats) > 1
	for _, format := range formats {
		if err := checkOverwrite(outputPath(opts.output, input, format, multi), input); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if !c.verbose && isatty.IsTerminal(os.Stderr.Fd()) {
		spin = newSpinnerWithContext(ctx, "Building "+input)
		spin.Start()
	}
	prog := newProgress(loggerFromContext(ctx))
	res, err := runner.Execute(ctx, pipeline.Options{
		Input:   input,
		Formats: formats,
		Theme:   theme,
		Refresh: opts.refresh,
		Logger:  loggerFromContext(ctx),
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Built %s", plural(res.Stats.Slides, "slide")))

	for _, w := range res.Warnings {
		printWarning("%s", w)
	}
	for _, format := range formats {
		out := outputPath(opts.output, input, format, multi)
		if err := writeArtifact(out, res.Artifacts[format]); err != nil {
			return err
		}
		printSuccess("Saved as %s", out)
	}
	fmt.Println(statsLine(res.Stats.Slides, len(res.Warnings), res.CacheInfo.RenderHit))
	return nil
}

// validateInput accepts http(s) URLs and existing files.
func validateInput(s string) error {
	if apperrors.IsURL(s) {
		return apperrors.ValidateURL(s)
	}
	info, err := os.Stat(s)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeFileNotFound, "%s not found", s)
	}
	if info.IsDir() {
		return apperrors.New(apperrors.ErrCodeInvalidPath, "%s is a directory", s)
	}
	return nil
}

// outputPath picks the file for one format. Without an explicit output the
// name derives from the input, with a ".deck" infix when the plain name
// would be the input itself.
func outputPath(output, input, format string, multi bool) string {
	ext := pipeline.Extension(format)
	switch {
	case output == "":
		if name := baseName(input) + ext; !samePath(name, input) {
			return name
		}
		return baseName(input) + ".deck" + ext
	case multi:
		return strings.TrimSuffix(output, filepath.Ext(output)) + ext
	case filepath.Ext(output) == "":
		return output + ext
	default:
		return output
	}
}

// baseName returns the input's file name without extension, or "slides".
func baseName(input string) string {
	var name string
	if apperrors.IsURL(input) {
		if u, err := neturl.Parse(input); err == nil {
			name = path.Base(u.Path)
		}
	} else {
		name = filepath.Base(input)
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." || name == "/" {
		return "slides"
	}
	return name
}

// checkOverwrite rejects an output that would replace the outline.
func checkOverwrite(out, input string) error {
	if samePath(out, input) {
		return apperrors.New(apperrors.ErrCodeInvalidPath, "output %s would overwrite the outline", out)
	}
	return nil
}

// samePath reports whether a and b name the same local file.
func samePath(a, b string) bool {
	if apperrors.IsURL(a) || apperrors.IsURL(b) {
		return false
	}
	if ai, err := os.Stat(a); err == nil {
		if bi, err := os.Stat(b); err == nil {
			return os.SameFile(ai, bi)
		}
	}
	aa, err := filepath.Abs(a)
	if err != nil {
		return false
	}
	bb, err := filepath.Abs(b)
	return err == nil && aa == bb
}

func writeArtifact(path string, data []byte) error {
	if err := apperrors.ValidateOutputPath(path); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
