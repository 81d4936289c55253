// Package i18n serves the client's English and Arabic UI strings from
// embedded catalogs.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Arabic,
}

var matcher = language.NewMatcher(supported)

// Bundle is one resolved locale: flat key -> string lookups with English
// fallback.
type Bundle struct {
	tag      language.Tag
	messages map[string]string
	fallback map[string]string
}

// Load resolves the preferred locale (BCP 47, e.g. "ar" or "ar-KW") against
// the supported set and loads its catalog.
func Load(preferred string) (*Bundle, error) {
	tag, _ := language.MatchStrings(matcher, preferred)
	base, _ := tag.Base()

	messages, err := readCatalog(base.String())
	if err != nil {
		return nil, err
	}

	fallback := messages
	if base.String() != "en" {
		if fallback, err = readCatalog("en"); err != nil {
			return nil, err
		}
	}

	log.Printf("i18n: locale %s", base)
	return &Bundle{tag: tag, messages: messages, fallback: fallback}, nil
}

func readCatalog(lang string) (map[string]string, error) {
	data, err := localeFS.ReadFile(fmt.Sprintf("locales/%s.json", lang))
	if err != nil {
		return nil, fmt.Errorf("locale %s: %w", lang, err)
	}

	var nested map[string]interface{}
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("locale %s: %w", lang, err)
	}

	flat := make(map[string]string)
	flatten("", nested, flat)
	return flat, nil
}

func flatten(prefix string, nested map[string]interface{}, out map[string]string) {
	for k, v := range nested {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]interface{}:
			flatten(key, val, out)
		}
	}
}

// T looks a key up, falling back to English and finally to the key itself so
// a missing string never blanks the UI.
func (b *Bundle) T(key string) string {
	if msg, ok := b.messages[key]; ok {
		return msg
	}
	if msg, ok := b.fallback[key]; ok {
		return msg
	}
	return key
}

// RTL reports whether the locale renders right to left.
func (b *Bundle) RTL() bool {
	base, _ := b.tag.Base()
	return base.String() == "ar"
}

func (b *Bundle) Tag() language.Tag {
	return b.tag
}
