package cli

import (
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PrismCut/internal/export"
	"github.com/piwi3910/PrismCut/internal/material"
)

func newMaterialsCmd(configDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Manage the saved material library",
	}

	cmd.AddCommand(newMaterialsListCmd(configDir))
	cmd.AddCommand(newMaterialsImportCmd(configDir))
	cmd.AddCommand(newMaterialsRemoveCmd(configDir))

	return cmd
}

func libraryPath(configDir string) string {
	return filepath.Join(configDir, "materials.json")
}

func newMaterialsListCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the saved materials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lib, err := material.LoadLibrary(libraryPath(*configDir))
			if err != nil {
				return err
			}
			renderLibrary(cmd.OutOrStdout(), lib)
			return nil
		},
	}
}

func newMaterialsImportCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <library.xlsx>",
		Short: "Import materials from an Excel workbook into the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			result := export.ImportMaterialLibrary(args[0])
			for _, w := range result.Warnings {
				logger.Warn(w)
			}
			if len(result.Errors) > 0 {
				for _, e := range result.Errors {
					logger.Error(e)
				}
				return fmt.Errorf("%d rows could not be imported", len(result.Errors))
			}

			path := libraryPath(*configDir)
			lib, err := material.LoadLibrary(path)
			if err != nil {
				return err
			}
			added := 0
			for _, m := range result.Materials {
				if lib.Find(m.Name) != nil {
					logger.Debugf("skipping existing material %s", m.Name)
					continue
				}
				if err := lib.Add(m); err != nil {
					return err
				}
				added++
			}
			if err := material.SaveLibrary(path, lib); err != nil {
				return err
			}
			logger.Infof("Imported %d materials (%d already present)", added, len(result.Materials)-added)
			return nil
		},
	}
}

func newMaterialsRemoveCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a material from the library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := libraryPath(*configDir)
			lib, err := material.LoadLibrary(path)
			if err != nil {
				return err
			}
			if err := lib.Remove(args[0]); err != nil {
				return err
			}
			if err := material.SaveLibrary(path, lib); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Infof("Removed material %s", args[0])
			return nil
		},
	}
}

func renderLibrary(w io.Writer, lib material.Library) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tCATEGORY\tDENSITY (g/cc)\tTEMPERATURE (K)")
	for _, m := range lib.Materials {
		fmt.Fprintf(tw, "%s\t%s\t%.6g\t%.6g\n", m.Name, m.Category, m.Density, m.Temperature)
	}
	tw.Flush()
}
