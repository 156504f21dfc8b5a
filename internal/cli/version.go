package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/tilegrid/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(ver string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), ver)
				return err
			}
			info := version.Get()
			info.Version = ver
			out := info.String()
			if version.IsDevelopment(ver) {
				out += " [development build]"
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")
	return cmd
}
