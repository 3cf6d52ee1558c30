package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

//go:embed locales/*.json
var localeFiles embed.FS

// Bundle resolves user-visible strings by dotted key path, e.g. "soilHealth.title".
// A missing string falls back to the default locale, then to the key itself so a
// broken catalog never blanks the page.
type Bundle struct {
	mu            sync.RWMutex
	locales       map[string]map[string]any
	defaultLocale string
}

// Load parses all embedded locale files into a Bundle.
func Load(defaultLocale string) (*Bundle, error) {
	if strings.TrimSpace(defaultLocale) == "" {
		defaultLocale = "en"
	}

	entries, err := fs.ReadDir(localeFiles, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	locales := make(map[string]map[string]any, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		raw, err := localeFiles.ReadFile("locales/" + name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		var catalog map[string]any
		if err := json.Unmarshal(raw, &catalog); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
		locales[strings.TrimSuffix(name, ".json")] = catalog
	}

	if _, ok := locales[defaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %q not found", defaultLocale)
	}

	return &Bundle{locales: locales, defaultLocale: defaultLocale}, nil
}

// T resolves key in the given locale.
func (b *Bundle) T(locale, key string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if catalog, ok := b.locales[locale]; ok {
		if s, ok := lookup(catalog, key); ok {
			return s
		}
	}
	if locale != b.defaultLocale {
		if catalog, ok := b.locales[b.defaultLocale]; ok {
			if s, ok := lookup(catalog, key); ok {
				return s
			}
		}
	}
	return key
}

// Translator binds a Bundle to one locale.
func (b *Bundle) Translator(locale string) func(string) string {
	if _, ok := b.locales[locale]; !ok {
		locale = b.defaultLocale
	}
	return func(key string) string { return b.T(locale, key) }
}

// Locales lists the available locale codes.
func (b *Bundle) Locales() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.locales))
	for code := range b.locales {
		out = append(out, code)
	}
	return out
}

func lookup(catalog map[string]any, key string) (string, bool) {
	parts := strings.Split(key, ".")
	var cur any = catalog
	for _, part := range parts {
		node, ok := cur.(map[string]any)
		if !ok {
			return "", false
		}
		cur, ok = node[part]
		if !ok {
			return "", false
		}
	}
	s, ok := cur.(string)
	return s, ok
}
