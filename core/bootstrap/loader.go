package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dmitrymomot/envbridge/core/constants"
	"github.com/dmitrymomot/envbridge/core/logger"
)

// Input holds the mappings a single pass reads.
type Input struct {
	// Env is the environment source mapping. Promoted in ProfileEnv and
	// consulted for the table prefix in both profiles.
	Env map[string]string

	// Server is the request-context mapping. Promoted in ProfileServer
	// (scalars only). Forwarded-proto normalization writes HTTPS into it.
	Server map[string]any
}

// Result is what a pass produced. It is handed to the Entrypoint.
type Result struct {
	Profile     Profile
	Constants   *constants.Registry
	TablePrefix string
	Server      map[string]any

	// Promotion details the source keys handled by this pass.
	Promotion Promotion
	// AutoUpdateDisabled is true when this pass defined WP_AUTO_UPDATE_CORE.
	AutoUpdateDisabled bool
	// Secure is true when the forwarded protocol set HTTPS=on.
	Secure bool
	// BasePathDefined is true when this pass defined ABSPATH.
	BasePathDefined bool
}

// Entrypoint receives control once the pass has completed.
type Entrypoint func(ctx context.Context, res *Result) error

// Loader runs the bootstrap pass. Safe for concurrent use once constructed.
type Loader struct {
	profile Profile
	baseDir string
	logger  *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithProfile sets the profile. Default: ProfileEnv.
func WithProfile(p Profile) Option {
	return func(l *Loader) {
		l.profile = p
	}
}

// WithBaseDir sets the directory ABSPATH is derived from.
// Default: the directory of the running executable.
func WithBaseDir(dir string) Option {
	return func(l *Loader) {
		if dir != "" {
			l.baseDir = dir
		}
	}
}

// WithLogger sets the logger. Default: discard.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// New creates a Loader.
func New(opts ...Option) *Loader {
	l := &Loader{
		profile: ProfileEnv,
		logger:  logger.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.baseDir == "" {
		l.baseDir = executableDir()
	}
	return l
}

// Profile returns the configured profile.
func (l *Loader) Profile() Profile {
	return l.profile
}

// Seed returns a new registry holding base's constants for a per-request pass.
// The server profile drops WP_AUTO_UPDATE_CORE from the copy so a value
// promoted from the environment at process level cannot outlive the policy.
// base is never modified.
func (l *Loader) Seed(base *constants.Registry) *constants.Registry {
	if base == nil {
		return constants.New()
	}
	seed := base.All()
	if l.profile == ProfileServer {
		delete(seed, AutoUpdateCoreConstant)
	}
	return constants.NewFrom(seed)
}

// Run executes one pass against reg. It never fails.
// in.Server is modified in place when forwarded-proto normalization applies.
func (l *Loader) Run(reg *constants.Registry, in Input) *Result {
	res := &Result{
		Profile:     l.profile,
		Constants:   reg,
		TablePrefix: ResolveTablePrefix(in.Env),
		Server:      in.Server,
	}

	switch l.profile {
	case ProfileServer:
		res.AutoUpdateDisabled = DisableAutoUpdate(reg)
		if !res.AutoUpdateDisabled {
			l.logger.Warn("auto-update flag already defined, leaving it unchanged",
				logger.Constant(AutoUpdateCoreConstant))
		}
		res.Promotion = Promote(reg, in.Server, l.profile.filter())
	default:
		res.Promotion = Promote(reg, in.Env, l.profile.filter())
	}

	res.Secure = NormalizeForwardedProto(in.Server)
	res.BasePathDefined = DefineBasePath(reg, l.baseDir)

	for _, name := range res.Promotion.Skipped {
		l.logger.Debug("constant already defined", logger.Constant(name))
	}
	l.logger.Debug("bootstrap pass complete",
		logger.Component("bootstrap"),
		logger.Profile(l.profile.String()),
		logger.Count("defined", len(res.Promotion.Defined)),
		logger.Count("skipped", len(res.Promotion.Skipped)),
		logger.Count("filtered", len(res.Promotion.Filtered)),
		slog.String("table_prefix", res.TablePrefix),
		slog.Bool("secure", res.Secure),
	)

	return res
}

// Boot runs a pass and then passes control to next exactly once.
// Errors come only from next and are wrapped with ErrEntrypoint.
func (l *Loader) Boot(ctx context.Context, reg *constants.Registry, in Input, next Entrypoint) error {
	if next == nil {
		return ErrNoEntrypoint
	}
	res := l.Run(reg, in)
	if err := next(ctx, res); err != nil {
		return fmt.Errorf("%w: %w", ErrEntrypoint, err)
	}
	return nil
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}
