package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HendryAvila/jumble/internal/descriptor"
	"github.com/HendryAvila/jumble/internal/workspace"
)

// errDiagnostics makes check exit non-zero once its report is printed.
var errDiagnostics = errors.New("workspace has load errors")

var (
	okStyle     = color.New(color.FgGreen)
	errorStyle  = color.New(color.FgRed)
	headerStyle = color.New(color.Bold)
	dimStyle    = color.New(color.Faint)
)

func newCheckCmd(a *app) *cobra.Command {
	var printDescriptors bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Scan the workspace once and report projects and load errors",
		Long: `Scan the workspace once, the same way the server does, and list every
project found and every descriptor that failed to load. Exits 1 when any
descriptor failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, err := workspace.Build(cmd.Context(), a.cfg.Root, a.cfg.WorkspaceOptions(a.log))
			if err != nil {
				return errors.Wrap(err, "loading workspace")
			}
			return report(cmd.OutOrStdout(), ws, printDescriptors)
		},
	}
	cmd.Flags().BoolVar(&printDescriptors, "print", false, "print each project's normalized descriptor")
	return cmd
}

// report writes the check output for ws. It returns errDiagnostics when
// the workspace has load errors.
func report(w io.Writer, ws *workspace.Workspace, printDescriptors bool) error {
	names := ws.Names()
	headerStyle.Fprintf(w, "Workspace %s\n", ws.Root)
	if ws.Info != nil && ws.Info.Name != "" {
		fmt.Fprintf(w, "  %s\n", ws.Info.Name)
	}
	fmt.Fprintf(w, "\n%d project(s)\n", len(names))

	for _, name := range names {
		d := ws.Projects[name]
		okStyle.Fprint(w, "  ✓ ")
		fmt.Fprintf(w, "%s  %s ", name, d.Description)
		dimStyle.Fprintf(w, "(%s)\n", relDir(ws.Root, d.Dir))
	}

	if printDescriptors {
		for _, name := range names {
			data, err := descriptor.Encode(ws.Projects[name])
			if err != nil {
				return errors.Wrapf(err, "encoding %s", name)
			}
			headerStyle.Fprintf(w, "\n# %s\n", name)
			fmt.Fprintf(w, "%s", data)
		}
	}

	if len(ws.LoadErrors) == 0 {
		return nil
	}
	fmt.Fprintf(w, "\n%d load error(s)\n", len(ws.LoadErrors))
	for _, diag := range ws.LoadErrors {
		errorStyle.Fprint(w, "  ✗ ")
		fmt.Fprintf(w, "%s\n      %s\n", relDir(ws.Root, diag.Path), diag.Message)
	}
	return errDiagnostics
}

func relDir(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
