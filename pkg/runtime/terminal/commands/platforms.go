package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/de-tools/posture-report/pkg/store/client"
	"github.com/spf13/cobra"
)

type PlatformsCmd struct{}

func NewPlatformsCmd() *cobra.Command {
	pc := &PlatformsCmd{}
	return &cobra.Command{
		Use:   "platforms",
		Short: "List supported platforms with their account endpoint and rule bundle",
		Args:  cobra.NoArgs,
		RunE:  pc.run,
	}
}

func (pc *PlatformsCmd) run(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PLATFORM\tACCOUNTS\tBUNDLE")
	for _, p := range domain.Platforms() {
		path, err := client.AccountListingPath(p)
		if err != nil {
			return err
		}
		bundle, err := p.BundleID()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", p, path, bundle)
	}
	return w.Flush()
}
