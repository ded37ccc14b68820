package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersistence struct {
	values map[string]string
}

func newMemPersistence() *memPersistence {
	return &memPersistence{values: make(map[string]string)}
}

func (p *memPersistence) Get(ctx context.Context, key string) (string, error) {
	return p.values[key], nil
}

func (p *memPersistence) Set(ctx context.Context, key, value string) error {
	p.values[key] = value
	return nil
}

func TestLocaleRoundTrip(t *testing.T) {
	ctx := context.Background()
	persistence := newMemPersistence()

	store, err := NewStore(ctx, persistence)
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, store.Locale())

	require.NoError(t, store.SetLocale(ctx, "fr"))
	assert.Equal(t, "fr", store.Locale())
	assert.Equal(t, "fr", persistence.values[StorageKey])

	// A fresh store over the same persistence sees the saved choice.
	reloaded, err := NewStore(ctx, persistence)
	require.NoError(t, err)
	assert.Equal(t, "fr", reloaded.Locale())
}

func TestSetLocaleRejectsUnsupported(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, newMemPersistence())
	require.NoError(t, err)

	err = store.SetLocale(ctx, "de")
	require.Error(t, err)
	assert.Equal(t, DefaultLocale, store.Locale())
}

func TestIgnoresBogusPersistedLocale(t *testing.T) {
	ctx := context.Background()
	persistence := newMemPersistence()
	persistence.values[StorageKey] = "klingon"

	store, err := NewStore(ctx, persistence)
	require.NoError(t, err)
	assert.Equal(t, DefaultLocale, store.Locale())
}

func TestTranslationFallback(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, newMemPersistence())
	require.NoError(t, err)

	english := store.T("login")
	require.NoError(t, store.SetLocale(ctx, "ar"))
	assert.NotEqual(t, english, store.T("login"))

	// Unknown keys come back verbatim in any locale.
	assert.Equal(t, "no-such-key", store.T("no-such-key"))
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, newMemPersistence())
	require.NoError(t, err)

	var seen []string
	unsubscribe := store.Subscribe(func(locale string) {
		seen = append(seen, locale)
	})

	require.NoError(t, store.SetLocale(ctx, "fr"))
	require.NoError(t, store.SetLocale(ctx, "ar"))
	assert.Equal(t, []string{"fr", "ar"}, seen)

	unsubscribe()
	require.NoError(t, store.SetLocale(ctx, "en"))
	assert.Equal(t, []string{"fr", "ar"}, seen)
}

func TestTableMergesDefaultLocale(t *testing.T) {
	ctx := context.Background()
	store, err := NewStore(ctx, newMemPersistence())
	require.NoError(t, err)

	require.NoError(t, store.SetLocale(ctx, "fr"))
	table := store.Table()

	// Every default key is present even if a locale misses some.
	for key := range translations[DefaultLocale] {
		assert.Contains(t, table, key)
	}
}
