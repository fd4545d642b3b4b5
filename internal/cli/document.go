package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/httputil"
	bloomio "github.com/matzehuels/bloom/pkg/io"
	"github.com/matzehuels/bloom/pkg/samples"
	"github.com/matzehuels/bloom/pkg/screen"
)

// fetch downloads documents for import --url. Tests replace it.
var fetch = httputil.Fetch

// =============================================================================
// import
// =============================================================================

func (c *CLI) importCommand() *cobra.Command {
	var (
		url    string
		sample string
	)

	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Load a screen document into the local session",
		Long: `Load a screen document into the local session, replacing the current one
and clearing the selection. The document comes from a file ("-" for stdin),
a URL (--url) or an embedded sample (--sample).`,
		Example: `  bloom import screen.json
  bloom import --sample mobile-shop
  curl -s https://example.com/screen.json | bloom import -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			raw, source, err := readSource(ctx, args, url, sample)
			if err != nil {
				return err
			}
			logger.Debug("read document", "source", source, "bytes", len(raw))

			ed, closeAll, err := c.newEditor(ctx)
			if err != nil {
				return err
			}
			defer closeAll()

			prog := newProgress(logger)
			st, err := ed.Import(ctx, scope, raw)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Imported %d components", st.Screen.Count()))

			printSuccess("Loaded %s from %s", StyleHighlight.Render(st.Screen.Name), source)
			printStatus(st)
			printNextStep("Inspect the tree", "bloom inspect")
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "download the document from a URL")
	cmd.Flags().StringVar(&sample, "sample", "", "load an embedded sample (see 'bloom samples')")
	cmd.MarkFlagsMutuallyExclusive("url", "sample")
	_ = cmd.RegisterFlagCompletionFunc("sample", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return samples.Names(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// readSource returns the raw document and a description of where it came
// from.
func readSource(ctx context.Context, args []string, url, sample string) ([]byte, string, error) {
	switch {
	case sample != "":
		if len(args) > 0 {
			return nil, "", errors.New(errors.ErrCodeInvalidInput, "a file argument cannot be combined with --sample")
		}
		data, err := samples.Get(sample)
		return data, "sample " + sample, err

	case url != "":
		if len(args) > 0 {
			return nil, "", errors.New(errors.ErrCodeInvalidInput, "a file argument cannot be combined with --url")
		}
		data, err := withSpinner(ctx, "Downloading "+url, func(ctx context.Context) ([]byte, error) {
			return fetch(ctx, url)
		})
		return data, url, err

	case len(args) == 1 && args[0] == "-":
		data, err := readAllLimited(os.Stdin)
		return data, "stdin", err

	case len(args) == 1:
		f, err := os.Open(args[0])
		if err != nil {
			return nil, "", errors.Wrap(errors.ErrCodeNotFound, err, "open %s", args[0])
		}
		defer f.Close()
		data, err := readAllLimited(f)
		return data, args[0], err
	}
	return nil, "", errors.New(errors.ErrCodeInvalidInput, "nothing to import: pass a file, --url or --sample")
}

func readAllLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, httputil.MaxDocumentSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document")
	}
	if len(data) > httputil.MaxDocumentSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document exceeds %d bytes", httputil.MaxDocumentSize)
	}
	return data, nil
}

// =============================================================================
// export
// =============================================================================

func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current document as JSON",
		Long: `Write the current document as indented JSON. Without -o the file is named
bloom-screen-<timestamp>.json in the current directory; "-o -" writes to
stdout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed, closeAll, err := c.newEditor(ctx)
			if err != nil {
				return err
			}
			defer closeAll()

			data, err := ed.Export(ctx, scope)
			if err != nil {
				return err
			}
			if output == "" {
				output = bloomio.ExportFilename(time.Now())
			}
			if err := writeOutput(output, data); err != nil {
				return err
			}
			if output != "-" {
				printSuccess("Exported document")
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (\"-\" for stdout)")
	return cmd
}

// =============================================================================
// select
// =============================================================================

func (c *CLI) selectCommand() *cobra.Command {
	var clearSelection bool

	cmd := &cobra.Command{
		Use:   "select <id>",
		Short: "Select a component by id",
		Args: func(cmd *cobra.Command, args []string) error {
			if clearSelection {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed, closeAll, err := c.newEditor(ctx)
			if err != nil {
				return err
			}
			defer closeAll()

			id := ""
			if !clearSelection {
				id = args[0]
			}
			st, err := ed.Select(ctx, scope, id)
			if err != nil {
				return err
			}
			printStatus(st)
			return nil
		},
	}

	cmd.Flags().BoolVar(&clearSelection, "clear", false, "clear the selection")
	return cmd
}

// =============================================================================
// style
// =============================================================================

func (c *CLI) styleCommand() *cobra.Command {
	var (
		id      string
		opacity int
	)

	cmd := &cobra.Command{
		Use:   "style [key=value...]",
		Short: "Merge style values into a component",
		Long: `Merge style values into a component. Only the given keys change; an empty
value such as "padding=" clears that key. Without --id the selected
component is edited.

Keys use the document's camelCase names (see 'bloom presets --keys').`,
		Example: `  bloom style --id cta backgroundColor=#4f46e5 color=#ffffff
  bloom style paddingTop=16px paddingBottom=16px
  bloom style --id header padding=
  bloom style --opacity 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			hasOpacity := cmd.Flags().Changed("opacity")
			if len(args) == 0 && !hasOpacity {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to change: pass key=value pairs or --opacity")
			}
			update, err := screen.ParseStyleAssignments(args)
			if err != nil {
				return err
			}

			ed, closeAll, err := c.newEditor(ctx)
			if err != nil {
				return err
			}
			defer closeAll()

			changed := false
			if hasOpacity {
				st, err := ed.SetOpacityPercent(ctx, scope, id, opacity)
				if err != nil {
					return err
				}
				changed = st.Dirty
			}
			st, err := ed.ApplyStyle(ctx, scope, id, update)
			if err != nil {
				return err
			}
			changed = changed || st.Dirty

			target := id
			if target == "" {
				target = st.SelectedID
			}
			switch {
			case target == "":
				printWarning("No component selected; nothing changed")
			case !changed:
				printWarning("Component %s unchanged", target)
			default:
				printSuccess("Updated %s", StyleHighlight.Render(target))
			}
			printStatus(st)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "component to edit (default: the selection)")
	cmd.Flags().IntVar(&opacity, "opacity", 100, "opacity in percent (0-100)")
	return cmd
}

// =============================================================================
// validate
// =============================================================================

func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a screen document without importing it",
		Long: `Check a screen document without importing it. The document must decode and
pass strict validation: every component needs a unique id and a known type.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := bloomio.ImportJSON(args[0])
			if err != nil {
				return err
			}
			if err := screen.Validate(s); err != nil {
				return err
			}
			printSuccess("%s is valid", args[0])
			printDetail("%s · %s", s.Name, plural(s.Count(), "component"))
			return nil
		},
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, strings.TrimSuffix(word, "s"))
}
