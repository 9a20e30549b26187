package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/atomicstack/pman/internal/apperr"
	"github.com/atomicstack/pman/internal/keybind"
	"github.com/atomicstack/pman/internal/pathutil"
)

var executable = os.Executable

func newInstallCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Add pman popup bindings to the tmux config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			exe, err := executable()
			if err != nil {
				return apperr.IO(err)
			}
			path := a.cfg.Keybind.TmuxConf
			changed, err := keybind.InstallFile(path, exe, a.cfg.Keybind.Popup)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !changed {
				fmt.Fprintln(out, "pman keybindings are already installed.")
				fmt.Fprintln(out, "Run 'pman uninstall' first to update.")
				return nil
			}
			printMarkdown(out, installSummary(pathutil.ShortenUser(path)))
			return nil
		},
	}
}

func newUninstallCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove pman popup bindings from the tmux config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.cfg.Keybind.TmuxConf
			changed, err := keybind.UninstallFile(path)
			if err != nil {
				return err
			}
			short := pathutil.ShortenUser(path)
			if !changed {
				fmt.Fprintf(cmd.OutOrStdout(), "No pman keybindings found in %s\n", short)
				return nil
			}
			printMarkdown(cmd.OutOrStdout(), uninstallSummary(short))
			return nil
		},
	}
}

func installSummary(path string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# pman keybindings installed\n\nWritten to `%s`. Reload tmux with:\n\n", path)
	fmt.Fprintf(&b, "```sh\ntmux source-file %s\n```\n\n", path)
	b.WriteString("| Keys | Opens |\n| --- | --- |\n")
	for _, k := range keybind.Bindings {
		fmt.Fprintf(&b, "| Prefix + %s | %s |\n", k.Key, k.Description)
	}
	return b.String()
}

func uninstallSummary(path string) string {
	return fmt.Sprintf("# pman keybindings removed\n\nRemoved from `%s`. Reload tmux with:\n\n```sh\ntmux source-file %s\n```\n", path, path)
}

// printMarkdown renders md for the terminal, falling back to the raw text
// when rendering fails.
func printMarkdown(w io.Writer, md string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(markdownStyle(w)),
		glamour.WithWordWrap(80),
	)
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Fprint(w, out)
			return
		}
	}
	fmt.Fprint(w, md)
}

// markdownStyle picks a fixed style; auto detection queries the terminal
// and can block.
func markdownStyle(w io.Writer) string {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) || termenv.EnvNoColor() {
		return styles.NoTTYStyle
	}
	return styles.DarkStyle
}
