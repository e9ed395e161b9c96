package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/piwi3910/PrismCut/internal/config"
)

func newProfilesCmd(configDir *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage build profiles",
	}

	cmd.AddCommand(newProfilesListCmd(configDir))
	cmd.AddCommand(newProfilesSaveCmd(configDir))
	cmd.AddCommand(newProfilesDeleteCmd(configDir))

	return cmd
}

func newProfilesListCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and custom build profiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, err := config.AllProfiles(profilesPath(*configDir))
			if err != nil {
				return err
			}
			renderProfileTable(cmd.OutOrStdout(), profiles)
			return nil
		},
	}
}

func newProfilesSaveCmd(configDir *string) *cobra.Command {
	var profile config.BuildProfile

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Create or update a custom build profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile.Name = args[0]
			if err := config.UpsertProfile(profilesPath(*configDir), profile); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Infof("Saved profile %s", profile.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&profile.Description, "description", "", "profile description")
	cmd.Flags().Float64Var(&profile.Height, "height", 0, "build height")
	cmd.Flags().Float64Var(&profile.TargetAxial, "target-axial", 0, "target axial cell thickness")
	cmd.Flags().Float64Var(&profile.TargetCartesian, "target-cartesian", 0, "target cartesian cell thickness")
	cmd.Flags().Float64Var(&profile.TargetRadial, "target-radial", 0, "target radial cell thickness")
	cmd.Flags().Float64Var(&profile.TargetAzimuthal, "target-azimuthal", 0, "target azimuthal cell arc length")
	cmd.Flags().BoolVar(&profile.DivideIntoQuadrants, "quadrants", false, "divide block modules into quadrants")
	cmd.Flags().IntVar(&profile.Workers, "workers", 0, "concurrent sub-element builds")

	return cmd
}

func newProfilesDeleteCmd(configDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a custom build profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.DeleteProfile(profilesPath(*configDir), args[0]); err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Infof("Deleted profile %s", args[0])
			return nil
		},
	}
}

func renderProfileTable(w io.Writer, profiles []config.BuildProfile) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tHEIGHT\tCART\tRADIAL\tAZI\tAXIAL\tDESCRIPTION")
	for _, p := range profiles {
		kind := "custom"
		if p.IsBuiltIn {
			kind = "built-in"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			p.Name, kind,
			formatTarget(p.Height), formatTarget(p.TargetCartesian),
			formatTarget(p.TargetRadial), formatTarget(p.TargetAzimuthal),
			formatTarget(p.TargetAxial), p.Description)
	}
	tw.Flush()
}

// formatTarget renders a target thickness, showing "-" when unset.
func formatTarget(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.4g", v)
}
