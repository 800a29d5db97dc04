package app

import (
	"github.com/spf13/cobra"

	"github.com/Nordstrom/sekr8s/pkg/secret"
)

func newSetCommand() *cobra.Command {
	var skipEncode bool

	cmd := &cobra.Command{
		Use:   "set <name> [key...]",
		Short: "Update keys of a secret",
		Long: `Update the named secret, prompting for one value per key. With no keys,
every key currently on the secret is prompted for, in the order the cluster
tool emits them.

Values may be typed at the prompts, pasted all at once, or piped in, one
line per key:

    printf 'admin\nhunter2\n' | sekr8s set db-creds username password

Values are base64-encoded before they are written; use --skip-encode when
the input is already encoded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newManager().Set(cmd.Context(), args[0], args[1:], secret.SetOptions{
				SkipEncode: skipEncode,
			})
		},
	}

	cmd.Flags().BoolVarP(&skipEncode, "skip-encode", "s", false, "Store input verbatim instead of base64-encoding it")

	return cmd
}
