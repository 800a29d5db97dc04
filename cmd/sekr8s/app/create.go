package app

import (
	"github.com/spf13/cobra"

	"github.com/Nordstrom/sekr8s/pkg/secret"
)

func newCreateCommand() *cobra.Command {
	var skipEncode bool

	cmd := &cobra.Command{
		Use:   "create <name> [key...]",
		Short: "Create a secret",
		Long: `Create the named secret, empty at first, then collect a value per requested
key exactly like set. With no keys the empty secret is the whole result.

If collecting or writing the values fails after the secret was created, the
secret is left as-is; it is not rolled back.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newManager().Create(cmd.Context(), args[0], args[1:], secret.CreateOptions{
				SkipEncode: skipEncode,
			})
		},
	}

	cmd.Flags().BoolVarP(&skipEncode, "skip-encode", "s", false, "Store input verbatim instead of base64-encoding it")

	return cmd
}
