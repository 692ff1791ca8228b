package game

import "golang.org/x/text/language"

// Localized is a two-language text value authored in the editor.
// The uppercase JSON keys match the content files the editor produces.
type Localized struct {
	KO string `json:"KO,omitempty"`
	EN string `json:"EN,omitempty"`
}

// supportedLangs is the set of languages content can be authored in.
// The first entry is the matcher's fallback.
var supportedLangs = language.NewMatcher([]language.Tag{
	language.English,
	language.Korean,
})

// Resolve returns the text for the requested BCP 47 language tag.
// When the matched translation is empty, it falls back to whichever
// translation exists, so partially-translated content still renders.
func (l Localized) Resolve(lang string) string {
	_, idx := language.MatchStrings(supportedLangs, lang)

	var text, fallback string
	switch idx {
	case 1:
		text, fallback = l.KO, l.EN
	default:
		text, fallback = l.EN, l.KO
	}
	if text != "" {
		return text
	}
	return fallback
}

// IsEmpty reports whether no translation is present at all.
func (l Localized) IsEmpty() bool {
	return l.KO == "" && l.EN == ""
}
