// Package localization serves the citizen-facing message catalogue in
// English and Swahili. Catalogues are JSON files named by language code
// (en.json, sw.json) in the locales directory.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultLang is the fallback language for unknown codes and missing keys.
const DefaultLang = "en"

// Localizer holds the loaded message catalogues.
type Localizer struct {
	catalogues map[string]map[string]string
	mu         sync.RWMutex
}

// NewLocalizer loads every *.json catalogue found under dir.
func NewLocalizer(dir string) (*Localizer, error) {
	l := &Localizer{catalogues: make(map[string]map[string]string)}

	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read locales directory: %w", err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		lang := strings.TrimSuffix(file.Name(), ".json")
		data, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read catalogue %s: %w", file.Name(), err)
		}

		var messages map[string]string
		if err := json.Unmarshal(data, &messages); err != nil {
			return nil, fmt.Errorf("failed to parse catalogue %s: %w", file.Name(), err)
		}
		l.catalogues[lang] = messages
	}

	if _, ok := l.catalogues[DefaultLang]; !ok {
		return nil, fmt.Errorf("no %s.json catalogue in %s", DefaultLang, dir)
	}
	return l, nil
}

// Get returns the message for key in lang, falling back to English and
// finally to the key itself.
func (l *Localizer) Get(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if messages, ok := l.catalogues[lang]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if lang != DefaultLang {
		if msg, ok := l.catalogues[DefaultLang][key]; ok {
			return msg
		}
	}
	return key
}

// Supported reports whether a catalogue exists for lang.
func (l *Localizer) Supported(lang string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.catalogues[lang]
	return ok
}
