package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newVersionCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printVersion(deps.Stdout)
		},
	}
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "cvischat %s (built %s)\n", Version, BuildTime)
}
