package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/envbridge/core/bootstrap"
)

func printCmd() *cobra.Command {
	var namesOnly bool

	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print resolved constants in dotenv format",
		Long: `Resolve every configured source and print the defined constants to stdout
in dotenv format. With --names-only only the constant names are printed, which
is safe to use in CI logs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := resolve(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			return r.boot(cmd.Context(), printEntrypoint(cmd.OutOrStdout(), namesOnly))
		},
	}

	cmd.Flags().BoolVar(&namesOnly, "names-only", false, "print constant names without values")
	return cmd
}

func printEntrypoint(w io.Writer, namesOnly bool) bootstrap.Entrypoint {
	return func(_ context.Context, res *bootstrap.Result) error {
		if namesOnly {
			_, err := fmt.Fprintln(w, strings.Join(res.Constants.Names(), "\n"))
			return err
		}

		out, err := godotenv.Marshal(res.Constants.Strings())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	}
}
