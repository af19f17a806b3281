// Package bootstrap turns deployment inputs into defined constants before the
// application starts.
//
// A Loader runs one deterministic pass over its inputs:
//
//  1. Resolve the table prefix from WP_TABLE_PREFIX (default "wp_").
//  2. In the server profile, define WP_AUTO_UPDATE_CORE=false.
//  3. Promote every source key to an upper-cased constant. Names that are
//     already defined are skipped. The server profile only promotes scalars.
//  4. Set HTTPS="on" in the request-context mapping when X-Forwarded-Proto
//     contains "https".
//  5. Define ABSPATH as the bootstrap directory with a trailing separator,
//     unless it is already defined.
//
// The pass cannot fail. Boot runs the pass and then hands control to a
// downstream Entrypoint exactly once:
//
//	reg := constants.New()
//	l := bootstrap.New(bootstrap.WithBaseDir("/srv/www"))
//	err := l.Boot(ctx, reg, bootstrap.Input{Env: env}, func(ctx context.Context, res *bootstrap.Result) error {
//		return startApp(ctx, res.Constants, res.TablePrefix)
//	})
package bootstrap
