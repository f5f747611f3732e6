// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edelweissconnect/cheminsight/internal/httputil"
)

// Compile-time check that Store satisfies the fetch client's cache interface.
var _ httputil.ResponseCache = (*Store)(nil)

func TestPutGetRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put("https://example.org/a", "application/json", []byte(`{"ok":true}`)))

	body, contentType, ok := store.Get("https://example.org/a")
	require.True(t, ok)
	assert.Equal(t, `{"ok":true}`, string(body))
	assert.Equal(t, "application/json", contentType)
}

func TestGetMiss(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	_, _, ok := store.Get("https://example.org/missing")
	assert.False(t, ok)
}

func TestPutReplaces(t *testing.T) {
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Put("https://example.org/a", "text/plain", []byte("first")))
	require.NoError(t, store.Put("https://example.org/a", "text/plain", []byte("second")))

	body, _, ok := store.Get("https://example.org/a")
	require.True(t, ok)
	assert.Equal(t, "second", string(body))
}

func TestReopenPersists(t *testing.T) {
	dir := t.TempDir()

	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put("https://example.org/a", "text/plain", []byte("persisted")))
	require.NoError(t, store.Close())

	store, err = Open(dir)
	require.NoError(t, err)
	defer store.Close()

	body, _, ok := store.Get("https://example.org/a")
	require.True(t, ok)
	assert.Equal(t, "persisted", string(body))
}
