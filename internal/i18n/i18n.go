// Package i18n translates UI strings from embedded locale files.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var (
	bundleOnce sync.Once
	bundle     *i18n.Bundle
	bundleErr  error
)

// loadBundle parses every embedded locale file once. English is the
// fallback language.
func loadBundle() (*i18n.Bundle, error) {
	bundleOnce.Do(func() {
		b := i18n.NewBundle(language.English)
		b.RegisterUnmarshalFunc("json", json.Unmarshal)

		entries, err := localeFS.ReadDir("locales")
		if err != nil {
			bundleErr = fmt.Errorf("read locales dir: %w", err)
			return
		}
		for _, e := range entries {
			data, err := localeFS.ReadFile("locales/" + e.Name())
			if err != nil {
				bundleErr = fmt.Errorf("read locale file %s: %w", e.Name(), err)
				return
			}
			if _, err := b.ParseMessageFileBytes(data, e.Name()); err != nil {
				bundleErr = fmt.Errorf("parse locale file %s: %w", e.Name(), err)
				return
			}
		}
		bundle = b
	})
	return bundle, bundleErr
}

// Languages returns the tags with a locale file.
func Languages() []string {
	b, err := loadBundle()
	if err != nil {
		return nil
	}
	var out []string
	for _, t := range b.LanguageTags() {
		out = append(out, t.String())
	}
	return out
}

// Translator localizes messages for one language.
type Translator struct {
	lang string
	loc  *i18n.Localizer
}

// New returns a translator for lang. Unknown languages fall back to
// English.
func New(lang string) (*Translator, error) {
	if _, err := language.Parse(lang); err != nil {
		return nil, fmt.Errorf("parse language %q: %w", lang, err)
	}
	b, err := loadBundle()
	if err != nil {
		return nil, err
	}
	return &Translator{lang: lang, loc: i18n.NewLocalizer(b, lang, "en")}, nil
}

// Must is New for callers with a known-good language.
func Must(lang string) *Translator {
	t, err := New(lang)
	if err != nil {
		panic(err)
	}
	return t
}

// Lang is the requested language.
func (t *Translator) Lang() string { return t.lang }

// T translates a message by ID. Missing messages render as their ID.
func (t *Translator) T(id string) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id})
}

// Td translates a message by ID with template data.
func (t *Translator) Td(id string, data map[string]any) string {
	return t.localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
}

// Tp translates a pluralized message by ID.
func (t *Translator) Tp(id string, count int) string {
	return t.localize(&i18n.LocalizeConfig{
		MessageID:    id,
		PluralCount:  count,
		TemplateData: map[string]any{"Count": count},
	})
}

func (t *Translator) localize(cfg *i18n.LocalizeConfig) string {
	s, err := t.loc.Localize(cfg)
	if err != nil {
		slog.Warn("missing translation", "id", cfg.MessageID, "lang", t.lang, "error", err)
		return cfg.MessageID
	}
	return s
}
