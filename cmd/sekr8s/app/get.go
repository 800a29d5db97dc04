package app

import (
	"github.com/spf13/cobra"

	"github.com/Nordstrom/sekr8s/pkg/secret"
)

func newGetCommand() *cobra.Command {
	var decode bool
	var quiet bool

	cmd := &cobra.Command{
		Use:   "get <name> [key...]",
		Short: "Print keys of a secret",
		Long: `Print the data of the named secret. With no keys, every key is printed in
the order the cluster tool emits them; with keys, only those keys are
printed, in the order given. A requested key that does not exist aborts the
command without printing anything.

Values are printed base64-encoded as stored; use --decode for the raw
values. Use --quiet to print bare values only, for piping into other
commands.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newManager().Get(cmd.Context(), args[0], args[1:], secret.GetOptions{
				Decode: decode,
				Quiet:  quiet,
			})
		},
	}

	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "Print base64-decoded values")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print bare values only, newline-joined")

	return cmd
}
