package bootstrap_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envbridge/core/bootstrap"
	"github.com/dmitrymomot/envbridge/core/constants"
)

func TestConstantName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DB_NAME", bootstrap.ConstantName("db_name"))
	assert.Equal(t, "AUTH_KEY", bootstrap.ConstantName("Auth_Key"))
	assert.Equal(t, "WP_HOME", bootstrap.ConstantName("WP_HOME"))
	assert.Equal(t, "", bootstrap.ConstantName(""))
}

func TestIsScalar(t *testing.T) {
	t.Parallel()

	type named string

	scalars := []any{"", "x", true, false, 0, int8(1), int64(-3), uint(7), uint64(9), float32(1.5), 2.5, named("n")}
	for _, v := range scalars {
		assert.True(t, bootstrap.IsScalar(v), "%T should be scalar", v)
	}

	structured := []any{nil, []string{"a"}, map[string]string{}, struct{}{}, &struct{}{}, func() {}, [2]int{}}
	for _, v := range structured {
		assert.False(t, bootstrap.IsScalar(v), "%T should not be scalar", v)
	}
}

func TestPromote(t *testing.T) {
	t.Parallel()

	t.Run("names are upper-cased keys", func(t *testing.T) {
		t.Parallel()
		reg := constants.New()
		src := map[string]string{"db_host": "db", "Auth_Salt": "s", "WP_DEBUG": "1"}

		p := bootstrap.Promote(reg, src, nil)

		assert.ElementsMatch(t, []string{"DB_HOST", "AUTH_SALT", "WP_DEBUG"}, p.Defined)
		for key, value := range src {
			got, ok := reg.Get(bootstrap.ConstantName(key))
			require.True(t, ok)
			assert.Equal(t, value, got)
		}
	})

	t.Run("pre-existing names are not overwritten", func(t *testing.T) {
		t.Parallel()
		reg := constants.NewFrom(map[string]any{"DB_HOST": "primary"})

		p := bootstrap.Promote(reg, map[string]string{"db_host": "replica", "DB_USER": "wp"}, nil)

		v, _ := reg.Get("DB_HOST")
		assert.Equal(t, "primary", v)
		assert.Equal(t, []string{"DB_HOST"}, p.Skipped)
		assert.Equal(t, []string{"DB_USER"}, p.Defined)
	})

	t.Run("case collisions keep a single value", func(t *testing.T) {
		t.Parallel()
		reg := constants.New()

		p := bootstrap.Promote(reg, map[string]string{"key": "lower", "KEY": "upper"}, nil)

		assert.Len(t, p.Defined, 1)
		assert.Len(t, p.Skipped, 1)
		v, ok := reg.Get("KEY")
		require.True(t, ok)
		assert.Contains(t, []any{"lower", "upper"}, v)
	})

	t.Run("scalar filter drops structured values", func(t *testing.T) {
		t.Parallel()
		reg := constants.New()
		src := map[string]any{
			"REQUEST_METHOD": "GET",
			"REQUEST_TIME":   int64(1700000000),
			"argv":           []string{"a", "b"},
			"headers":        map[string]string{"a": "b"},
		}

		p := bootstrap.Promote(reg, src, bootstrap.IsScalar)

		assert.ElementsMatch(t, []string{"REQUEST_METHOD", "REQUEST_TIME"}, p.Defined)
		assert.ElementsMatch(t, []string{"ARGV", "HEADERS"}, p.Filtered)
		assert.False(t, reg.Defined("ARGV"))
		assert.False(t, reg.Defined("HEADERS"))
	})
}

func TestResolveTablePrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "wp_", bootstrap.ResolveTablePrefix(nil))
	assert.Equal(t, "wp_", bootstrap.ResolveTablePrefix(map[string]string{}))
	assert.Equal(t, "wp_", bootstrap.ResolveTablePrefix(map[string]string{"WP_TABLE_PREFIX": ""}))
	assert.Equal(t, "custom_", bootstrap.ResolveTablePrefix(map[string]string{"WP_TABLE_PREFIX": "custom_"}))
}

func TestNormalizeForwardedProto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		server map[string]any
		want   bool
	}{
		{name: "https", server: map[string]any{"HTTP_X_FORWARDED_PROTO": "https"}, want: true},
		{name: "https in list", server: map[string]any{"HTTP_X_FORWARDED_PROTO": "http, https"}, want: true},
		{name: "http", server: map[string]any{"HTTP_X_FORWARDED_PROTO": "http"}},
		{name: "upper case is not matched", server: map[string]any{"HTTP_X_FORWARDED_PROTO": "HTTPS"}},
		{name: "absent", server: map[string]any{"REQUEST_METHOD": "GET"}},
		{name: "nil mapping", server: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			before := len(tt.server)

			got := bootstrap.NormalizeForwardedProto(tt.server)

			assert.Equal(t, tt.want, got)
			if tt.want {
				assert.Equal(t, "on", tt.server["HTTPS"])
			} else if tt.server != nil {
				_, ok := tt.server["HTTPS"]
				assert.False(t, ok)
				assert.Len(t, tt.server, before)
			}
		})
	}
}

func TestDefineBasePath(t *testing.T) {
	t.Parallel()

	t.Run("defines absolute path with trailing separator", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		reg := constants.New()

		assert.True(t, bootstrap.DefineBasePath(reg, dir))

		v, _ := reg.String("ABSPATH")
		assert.Equal(t, dir+string(filepath.Separator), v)
		assert.True(t, filepath.IsAbs(v))
	})

	t.Run("keeps existing value", func(t *testing.T) {
		t.Parallel()
		reg := constants.NewFrom(map[string]any{"ABSPATH": "/var/www/html/"})

		assert.False(t, bootstrap.DefineBasePath(reg, t.TempDir()))

		v, _ := reg.String("ABSPATH")
		assert.Equal(t, "/var/www/html/", v)
	})

	t.Run("does not double the separator", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir() + string(filepath.Separator)

		assert.Equal(t, filepath.Clean(dir)+string(filepath.Separator), bootstrap.BasePath(dir))
	})

	t.Run("relative dir becomes absolute", func(t *testing.T) {
		t.Parallel()

		assert.True(t, filepath.IsAbs(bootstrap.BasePath(".")))
	})
}

func TestDisableAutoUpdate(t *testing.T) {
	t.Parallel()

	reg := constants.New()
	assert.True(t, bootstrap.DisableAutoUpdate(reg))
	v, _ := reg.Get("WP_AUTO_UPDATE_CORE")
	assert.Equal(t, false, v)
}
