package main

import (
	"context"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/envbridge/core/bootstrap"
	"github.com/dmitrymomot/envbridge/core/logger"
)

func execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec -- <command> [args...]",
		Short: "Run a command with the resolved constants as its environment",
		Long: `Resolve every configured source, then run the given command with the
defined constants (and the resolved WP_TABLE_PREFIX) as its environment.
The command's exit code becomes envbridge's exit code.

Example:
  envbridge exec -- php-fpm -F
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := resolve(cmd.Context())
			if err != nil {
				return err
			}
			defer r.Close()

			return r.boot(cmd.Context(), func(ctx context.Context, res *bootstrap.Result) error {
				c := exec.CommandContext(ctx, args[0], args[1:]...)
				c.Env = childEnv(res)
				c.Stdin = os.Stdin
				c.Stdout = cmd.OutOrStdout()
				c.Stderr = cmd.ErrOrStderr()

				r.log.Debug("starting downstream command",
					logger.Component("envbridge"),
					logger.Key("command", args[0]),
					logger.Count("constants", res.Constants.Len()),
				)
				return c.Run()
			})
		},
	}
}

// childEnv renders the constants for a child process. The resolved table
// prefix is appended when no constant carries it.
func childEnv(res *bootstrap.Result) []string {
	env := res.Constants.Environ()
	if !res.Constants.Defined(bootstrap.TablePrefixEnv) {
		env = append(env, bootstrap.TablePrefixEnv+"="+res.TablePrefix)
	}
	return env
}
