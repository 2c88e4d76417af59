package prefs

import (
	"context"
	"fmt"
	"sync"
)

// Theme values. The setting is two-valued by contract.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"

	themeKey = "ui.theme"
)

// ThemeManager holds the current theme and persists it across sessions.
// Initialization order: stored preference, then the host's ambient signal,
// then light.
type ThemeManager struct {
	store *Store

	mu      sync.Mutex
	current string
}

// NewThemeManager loads the theme from the store. The ambient value comes
// from the host environment (see config.SystemTheme) and is used only when
// nothing was stored.
func NewThemeManager(ctx context.Context, store *Store, ambient string) (*ThemeManager, error) {
	current := ThemeLight
	if ambient == ThemeDark {
		current = ThemeDark
	}
	stored, ok, err := store.Get(ctx, themeKey)
	if err != nil {
		return nil, fmt.Errorf("load theme preference: %w", err)
	}
	if ok && (stored == ThemeLight || stored == ThemeDark) {
		current = stored
	}
	return &ThemeManager{store: store, current: current}, nil
}

// Current returns the active theme.
func (t *ThemeManager) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Toggle flips the theme and persists the new value for the next session.
// The in-memory value only changes when the write succeeds.
func (t *ThemeManager) Toggle(ctx context.Context) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	next := ThemeDark
	if t.current == ThemeDark {
		next = ThemeLight
	}
	if err := t.store.Set(ctx, themeKey, next); err != nil {
		return t.current, fmt.Errorf("persist theme: %w", err)
	}
	t.current = next
	return next, nil
}
