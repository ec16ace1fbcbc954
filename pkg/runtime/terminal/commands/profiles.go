package commands

import (
	"fmt"

	"github.com/de-tools/posture-report/pkg/services/config"
	"github.com/spf13/cobra"
)

type ProfilesCmd struct{}

func NewProfilesCmd() *cobra.Command {
	pc := &ProfilesCmd{}
	return &cobra.Command{
		Use:   "profiles",
		Short: "List profiles defined in the config file",
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}
}

func (pc *ProfilesCmd) run(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}

	registry, err := config.NewRegistry(path)
	if err != nil {
		return err
	}

	names, err := registry.GetProfiles(cmd.Context())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No profiles found in %s\n", path)
		return nil
	}

	for _, name := range names {
		profile, err := registry.GetProfile(cmd.Context(), name)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s]\n", profile.Name)
		if profile.Host != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  host   = %s\n", profile.Host)
		}
		if profile.Output != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  output = %s\n", profile.Output)
		}
	}
	return nil
}
