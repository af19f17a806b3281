package main

import (
	"errors"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/envbridge/core/logger"
)

var version = "0.0.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "envbridge",
		Short: "Expose deployment environment as write-once application constants",
		Long: `envbridge reads the process environment (plus optional dotenv files, an S3
object and a Redis hash), upper-cases every key and defines it as a constant
unless it is already defined. It then hands control to a downstream entry point.

Configuration comes from the environment:
  BOOTSTRAP_PROFILE     per-request profile for serve: server | env (default server)
  BOOTSTRAP_DIR         directory ABSPATH is derived from
  BOOTSTRAP_ENV_FILES   comma separated dotenv files
  BOOTSTRAP_S3_*        dotenv object in S3
  REDIS_URL, BOOTSTRAP_REDIS_KEY  Redis hash source
  WP_TABLE_PREFIX       table prefix (default wp_)
`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	root.AddCommand(printCmd())
	root.AddCommand(execCmd())
	root.AddCommand(serveCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		newLogger(appConfig{}).Error("envbridge failed", logger.Error(err))
		os.Exit(1)
	}
}
