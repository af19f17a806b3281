package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envbridge/core/bootstrap"
	"github.com/dmitrymomot/envbridge/core/constants"
	"github.com/dmitrymomot/envbridge/middleware"
)

func TestBootstrapPerRequest(t *testing.T) {
	t.Parallel()

	base := constants.NewFrom(map[string]any{
		"DB_HOST":        "db",
		"REQUEST_METHOD": "pinned",
	})
	loader := bootstrap.New(
		bootstrap.WithProfile(bootstrap.ProfileServer),
		bootstrap.WithBaseDir(t.TempDir()),
	)

	var res *bootstrap.Result
	h := middleware.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var ok bool
			res, ok = middleware.GetBootstrapResult(r.Context())
			require.True(t, ok)
		}),
		middleware.ForwardedProto(),
		middleware.Bootstrap(middleware.BootstrapConfig{
			Loader: loader,
			Base:   base,
			Env:    map[string]string{"WP_TABLE_PREFIX": "blog_"},
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/xmlrpc.php?a+b", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, res)
	assert.Equal(t, "blog_", res.TablePrefix)

	reg := res.Constants
	method, _ := reg.Get("REQUEST_METHOD")
	assert.Equal(t, "pinned", method, "base constants win over request metadata")
	assert.True(t, reg.Defined("DB_HOST"))
	assert.True(t, reg.Defined("HTTP_X_FORWARDED_PROTO"))
	assert.False(t, reg.Defined("HTTPS"), "normalization never reaches the registry")
	assert.True(t, res.Secure)
	assert.False(t, reg.Defined("ARGV"), "structured values are never promoted")
	autoUpdate, _ := reg.Get("WP_AUTO_UPDATE_CORE")
	assert.Equal(t, false, autoUpdate)
	assert.True(t, reg.Defined("ABSPATH"))

	assert.False(t, base.Defined("HTTP_X_FORWARDED_PROTO"), "base registry is never written")
	assert.False(t, base.Defined("WP_AUTO_UPDATE_CORE"))
}

func TestBootstrapWithoutForwardedProto(t *testing.T) {
	t.Parallel()

	var res *bootstrap.Result
	h := middleware.Bootstrap(middleware.BootstrapConfig{})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, _ = middleware.GetBootstrapResult(r.Context())
			_, ok := middleware.GetServerVars(r.Context())
			assert.True(t, ok)
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-Proto", "https")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, res)
	assert.Equal(t, "wp_", res.TablePrefix)
	assert.True(t, res.Secure)
	assert.Equal(t, "on", res.Server["HTTPS"])
	assert.False(t, res.Constants.Defined("HTTPS"), "flag is set after promotion")
}

func TestBootstrapOverEnvPromotedBase(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := constants.New()
	bootstrap.New(bootstrap.WithBaseDir(dir)).Run(base, bootstrap.Input{
		Env: map[string]string{"WP_AUTO_UPDATE_CORE": "true", "DB_HOST": "db"},
	})

	var res *bootstrap.Result
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, _ = middleware.GetBootstrapResult(r.Context())
		assert.True(t, middleware.IsSecure(r))
	})
	serverProfile := middleware.Bootstrap(middleware.BootstrapConfig{
		Loader: bootstrap.New(bootstrap.WithProfile(bootstrap.ProfileServer), bootstrap.WithBaseDir(dir)),
		Base:   base,
	})

	chains := map[string]http.Handler{
		"forwarded proto first": middleware.Chain(handler, middleware.ForwardedProto(), serverProfile),
		"bootstrap first":       middleware.Chain(handler, serverProfile, middleware.ForwardedProto()),
	}
	for name, h := range chains {
		res = nil
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-Proto", "https")
		h.ServeHTTP(httptest.NewRecorder(), req)

		require.NotNil(t, res, name)
		autoUpdate, _ := res.Constants.Get("WP_AUTO_UPDATE_CORE")
		assert.Equal(t, false, autoUpdate, name)
		assert.True(t, res.AutoUpdateDisabled, name)
		assert.True(t, res.Constants.Defined("DB_HOST"), name)
		assert.False(t, res.Constants.Defined("HTTPS"), name)
		assert.Equal(t, "on", res.Server["HTTPS"], name)
	}

	baseValue, _ := base.Get("WP_AUTO_UPDATE_CORE")
	assert.Equal(t, "true", baseValue)
}
