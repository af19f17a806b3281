package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/envbridge/core/source"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestParseEnviron(t *testing.T) {
	t.Parallel()

	got := source.ParseEnviron([]string{
		"DB_HOST=db",
		"AUTH_KEY=a=b=c",
		"EMPTY=",
		"NOEQUALS",
		"=hidden",
	})

	assert.Equal(t, map[string]string{
		"DB_HOST":  "db",
		"AUTH_KEY": "a=b=c",
		"EMPTY":    "",
	}, got)
}

func TestEnviron(t *testing.T) {
	t.Setenv("ENVBRIDGE_SOURCE_TEST", "present")

	got, err := source.Environ().Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "present", got["ENVBRIDGE_SOURCE_TEST"])
}

func TestMap(t *testing.T) {
	t.Parallel()

	m := map[string]string{"A": "1"}
	s := source.Map("static", m)

	got, err := s.Load(context.Background())
	require.NoError(t, err)
	got["B"] = "2"

	assert.Equal(t, "static", s.Name())
	assert.NotContains(t, m, "B")
}

func TestDotenv(t *testing.T) {
	t.Parallel()

	t.Run("reads files and skips missing ones", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		local := writeFile(t, dir, ".env.local", "DB_HOST=localhost\n")
		base := writeFile(t, dir, ".env", "DB_HOST=db\nDB_NAME=\"wordpress\"\n# comment\nexport WP_DEBUG=true\n")

		got, err := source.Dotenv(filepath.Join(dir, "missing.env"), local, base).Load(context.Background())

		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"DB_HOST":  "localhost",
			"DB_NAME":  "wordpress",
			"WP_DEBUG": "true",
		}, got)
	})

	t.Run("unreadable path fails", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		_, err := source.Dotenv(dir).Load(context.Background())

		assert.ErrorIs(t, err, source.ErrDotenvParse)
	})
}

func TestLoadAll(t *testing.T) {
	t.Parallel()

	t.Run("earlier sources win", func(t *testing.T) {
		t.Parallel()

		got, err := source.LoadAll(context.Background(), source.Chain(
			source.Map("first", map[string]string{"DB_HOST": "primary"}),
			nil,
			source.Map("second", map[string]string{"DB_HOST": "fallback", "DB_USER": "wp"}),
		)...)

		require.NoError(t, err)
		assert.Equal(t, map[string]string{"DB_HOST": "primary", "DB_USER": "wp"}, got)
	})

	t.Run("stops on error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		called := false

		_, err := source.LoadAll(context.Background(),
			source.Func{SourceName: "broken", Fn: func(context.Context) (map[string]string, error) { return nil, boom }},
			source.Func{SourceName: "after", Fn: func(context.Context) (map[string]string, error) {
				called = true
				return nil, nil
			}},
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, source.ErrSourceLoad)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "broken")
		assert.False(t, called)
	})

	t.Run("honours cancellation", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := source.LoadAll(ctx, source.Map("m", nil))

		assert.ErrorIs(t, err, context.Canceled)
	})
}
