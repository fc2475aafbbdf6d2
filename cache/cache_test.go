package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "artifacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	entry := &Entry{
		Source:  "float3 GetExampleOutput0(FMaterialContext Ctx)\n{\n    return float3(0.0, 0.0, 0.0);\n}\n",
		Defines: "#define EXAMPLE_OUTPUT 1\n",
	}
	require.NoError(t, c.Put(ctx, "abc123", "hlsl", entry))

	got, ok, err := c.Get(ctx, "abc123", "hlsl")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, entry.Source, got.Source)
	assert.Equal(t, entry.Defines, got.Defines)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetMiss(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	_, ok, err := c.Get(ctx, "missing", "hlsl")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPutReplaces(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	require.NoError(t, c.Put(ctx, "fp", "hlsl", &Entry{Source: "old", Defines: ""}))
	require.NoError(t, c.Put(ctx, "fp", "hlsl", &Entry{Source: "new", Defines: ""}))

	got, ok, err := c.Get(ctx, "fp", "hlsl")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", got.Source)
}

func TestPermutationsAreIndependent(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	require.NoError(t, c.Put(ctx, "fp", "hlsl", &Entry{Source: "hlsl source", Defines: ""}))
	require.NoError(t, c.Put(ctx, "fp", "glsl", &Entry{Source: "glsl source", Defines: ""}))

	got, ok, err := c.Get(ctx, "fp", "glsl")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "glsl source", got.Source)
}

func TestPurge(t *testing.T) {
	ctx := context.Background()
	c := openTestCache(t)

	require.NoError(t, c.Put(ctx, "fp", "hlsl", &Entry{Source: "a", Defines: ""}))
	require.NoError(t, c.Put(ctx, "fp", "glsl", &Entry{Source: "b", Defines: ""}))
	require.NoError(t, c.Put(ctx, "other", "hlsl", &Entry{Source: "c", Defines: ""}))

	n, err := c.Purge(ctx, "fp")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	_, ok, err := c.Get(ctx, "fp", "hlsl")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Get(ctx, "other", "hlsl")
	require.NoError(t, err)
	assert.True(t, ok)
}
