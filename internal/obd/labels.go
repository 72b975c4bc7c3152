package obd

import (
	"strings"
	"sync"
)

// DefaultLanguage is used when a payload or route does not name one.
const DefaultLanguage = "fr"

// supportedLanguages normalizes runtime language codes.
var supportedLanguages = map[string]string{
	"fr": "fr",
	"en": "en",
}

// NormalizeLanguage maps an arbitrary language string to a supported runtime
// language, falling back to the default.
func NormalizeLanguage(lang string) string {
	normalized := strings.ToLower(strings.TrimSpace(lang))
	if normalized == "" {
		return DefaultLanguage
	}
	if mapped, ok := supportedLanguages[normalized]; ok {
		return mapped
	}
	return DefaultLanguage
}

var (
	labelsFROnce sync.Once
	labelsFR     map[string]string
)

// frLabelIndex builds once: english full name (lowercased) -> french label.
func frLabelIndex() map[string]string {
	labelsFROnce.Do(func() {
		labels := make(map[string]string, len(frByShortName))
		for _, entry := range codes {
			fullEN := strings.ToLower(strings.TrimSpace(entry.FullName))
			if fullEN == "" {
				continue
			}
			if fr, ok := frByShortName[entry.ShortName]; ok && fr != "" {
				labels[fullEN] = fr
			}
		}
		labelsFR = labels
	})
	return labelsFR
}

// Label returns the localized display name for a measurement. Unknown
// languages and untranslated terms fall back to the english full name;
// this never fails.
func Label(lang, fullEN string) string {
	if NormalizeLanguage(lang) != "fr" {
		return fullEN
	}
	key := strings.ToLower(strings.TrimSpace(fullEN))
	if fr, ok := frLabelIndex()[key]; ok {
		return fr
	}
	return fullEN
}
