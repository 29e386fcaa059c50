package settings

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeParams(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		out, err := NormalizeParams(nil)
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("url.Values passthrough", func(t *testing.T) {
		in := url.Values{"a": {"1", "2"}}
		out, err := NormalizeParams(in)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("map of string", func(t *testing.T) {
		out, err := NormalizeParams(map[string]string{"a": "1", "b": "2"})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"a": {"1"}, "b": {"2"}}, out)
	})

	t.Run("map of slices", func(t *testing.T) {
		out, err := NormalizeParams(map[string][]string{"a": {"1", "2"}})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"a": {"1", "2"}}, out)
	})

	t.Run("map of any drops nil values", func(t *testing.T) {
		out, err := NormalizeParams(map[string]any{
			"keep":    "yes",
			"multi":   []string{"1", "2"},
			"dropped": nil,
			"n":       42,
			"flag":    true,
		})
		require.NoError(t, err)
		assert.Equal(t, url.Values{
			"keep":  {"yes"},
			"multi": {"1", "2"},
			"n":     {"42"},
			"flag":  {"true"},
		}, out)
		assert.NotContains(t, out, "dropped")
	})

	t.Run("pair sequence preserves repeats", func(t *testing.T) {
		out, err := NormalizeParams([][2]string{{"a", "1"}, {"a", "2"}, {"b", "3"}})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"a": {"1", "2"}, "b": {"3"}}, out)
	})

	t.Run("encoded query string", func(t *testing.T) {
		out, err := NormalizeParams("a=1&a=2&b=hello%20world")
		require.NoError(t, err)
		assert.Equal(t, url.Values{"a": {"1", "2"}, "b": {"hello world"}}, out)
	})

	t.Run("encoded query bytes", func(t *testing.T) {
		out, err := NormalizeParams([]byte("x=y"))
		require.NoError(t, err)
		assert.Equal(t, url.Values{"x": {"y"}}, out)
	})

	t.Run("unsupported shape", func(t *testing.T) {
		_, err := NormalizeParams(42)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParams)
	})

	t.Run("unsupported map value", func(t *testing.T) {
		_, err := NormalizeParams(map[string]any{"a": struct{}{}})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParams)
	})

	t.Run("malformed query string", func(t *testing.T) {
		_, err := NormalizeParams("a=%zz")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidParams)
	})
}

func TestMergeParams(t *testing.T) {
	t.Run("per-call wins on collision", func(t *testing.T) {
		out, err := MergeParams(
			map[string]string{"a": "1"},
			map[string]string{"a": "2", "b": "3"},
		)
		require.NoError(t, err)
		assert.Equal(t, url.Values{"a": {"1"}, "b": {"3"}}, out)
	})

	t.Run("empty persistent side", func(t *testing.T) {
		out, err := MergeParams(map[string]string{"a": "1"}, nil)
		require.NoError(t, err)
		assert.Equal(t, url.Values{"a": {"1"}}, out)
	})

	t.Run("empty per-call side", func(t *testing.T) {
		out, err := MergeParams(nil, map[string]string{"b": "2"})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"b": {"2"}}, out)
	})

	t.Run("both empty", func(t *testing.T) {
		out, err := MergeParams(nil, nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("mixed shapes", func(t *testing.T) {
		out, err := MergeParams("a=call", map[string]any{"a": "base", "b": "3"})
		require.NoError(t, err)
		assert.Equal(t, url.Values{"a": {"call"}, "b": {"3"}}, out)
	})

	t.Run("invalid per-call shape surfaces", func(t *testing.T) {
		_, err := MergeParams(3.14, map[string]string{"a": "1"})
		assert.ErrorIs(t, err, ErrInvalidParams)
	})
}

func TestMergeHeaders(t *testing.T) {
	t.Run("case-insensitive collision favors per-call", func(t *testing.T) {
		out := MergeHeaders(
			map[string]string{"X-Foo": "1"},
			map[string]string{"x-foo": "2", "X-Bar": "3"},
		)
		assert.Equal(t, "1", out.Get("X-Foo"))
		assert.Equal(t, "3", out.Get("X-Bar"))
		assert.Len(t, out, 2)
	})

	t.Run("both empty returns nil", func(t *testing.T) {
		assert.Nil(t, MergeHeaders(nil, nil))
	})

	t.Run("persistent only", func(t *testing.T) {
		out := MergeHeaders(nil, map[string]string{"User-Agent": "sr"})
		assert.Equal(t, "sr", out.Get("User-Agent"))
	})
}

func TestMergeAuth(t *testing.T) {
	call := &BasicAuth{Username: "call", Password: "a"}
	base := &BasicAuth{Username: "base", Password: "b"}

	assert.Equal(t, call, MergeAuth(call, base))
	assert.Equal(t, base, MergeAuth(nil, base))
	assert.Nil(t, MergeAuth(nil, nil))
}
