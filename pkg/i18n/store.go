package i18n

import (
	"context"
	"fmt"
	"sync"
)

// StorageKey is the key the chosen locale persists under.
const StorageKey = "user-language"

// DefaultLocale is used when nothing is persisted and as the lookup
// fallback for untranslated keys.
const DefaultLocale = "en"

// Persistence stores the chosen locale across restarts.
type Persistence interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Store holds the current locale and notifies subscribers on change.
// It is injected into consumers rather than being package state.
type Store struct {
	mu          sync.RWMutex
	locale      string
	persistence Persistence
	subscribers map[int]func(locale string)
	nextSubID   int
}

func NewStore(ctx context.Context, persistence Persistence) (*Store, error) {
	s := &Store{
		locale:      DefaultLocale,
		persistence: persistence,
		subscribers: make(map[int]func(locale string)),
	}

	stored, err := persistence.Get(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load persisted locale: %w", err)
	}
	if stored != "" {
		if _, ok := translations[stored]; ok {
			s.locale = stored
		}
	}

	return s, nil
}

// Locale returns the current locale code.
func (s *Store) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locale
}

// Locales lists the supported locale codes.
func (s *Store) Locales() []string {
	codes := make([]string, 0, len(translations))
	for code := range translations {
		codes = append(codes, code)
	}
	return codes
}

// SetLocale persists the new locale and notifies subscribers.
func (s *Store) SetLocale(ctx context.Context, locale string) error {
	if _, ok := translations[locale]; !ok {
		return fmt.Errorf("unsupported locale: %s", locale)
	}

	if err := s.persistence.Set(ctx, StorageKey, locale); err != nil {
		return fmt.Errorf("failed to persist locale: %w", err)
	}

	s.mu.Lock()
	s.locale = locale
	subs := make([]func(string), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(locale)
	}
	return nil
}

// T resolves key in the current locale, falling back to the default
// locale and finally to the key itself.
func (s *Store) T(key string) string {
	s.mu.RLock()
	locale := s.locale
	s.mu.RUnlock()

	if v, ok := translations[locale][key]; ok {
		return v
	}
	if v, ok := translations[DefaultLocale][key]; ok {
		return v
	}
	return key
}

// Table returns the full string table for the current locale.
func (s *Store) Table() map[string]string {
	s.mu.RLock()
	locale := s.locale
	s.mu.RUnlock()

	table := make(map[string]string, len(translations[DefaultLocale]))
	for key, v := range translations[DefaultLocale] {
		table[key] = v
	}
	for key, v := range translations[locale] {
		table[key] = v
	}
	return table
}

// Subscribe registers fn to run on every locale change and returns the
// matching unsubscribe function.
func (s *Store) Subscribe(fn func(locale string)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}
