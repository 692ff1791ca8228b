package textfilter

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Sanitizer cleans AI-generated NPC replies before they reach the
// player. Models occasionally leak markdown emphasis, bracketed stage
// directions, or language that breaks a family-friendly mystery; all
// of it is stripped or softened here so the UI can render replies
// verbatim.
type Sanitizer struct {
	directions *regexp.Regexp
	emphasis   *regexp.Regexp
	spaces     *regexp.Regexp
	profanity  map[string]*regexp.Regexp
}

// softeners maps words to the replacement rendered in their place.
var softeners = map[string]string{
	"fuck":       "fudge",
	"fucking":    "flipping",
	"shit":       "shoot",
	"bullshit":   "nonsense",
	"damn":       "dang",
	"goddamn":    "gosh-dang",
	"hell":       "heck",
	"ass":        "butt",
	"asshole":    "fool",
	"bastard":    "scoundrel",
	"bitch":      "wretch",
	"crap":       "rubbish",
	"piss":       "tick",
	"prick":      "cad",
	"dick":       "cad",
	"whore":      "[redacted]",
	"slut":       "[redacted]",
	"motherfucker": "villain",
}

// NewSanitizer compiles the cleaning patterns once.
func NewSanitizer() *Sanitizer {
	s := &Sanitizer{
		// Bracketed stage directions such as [smiles nervously]. The
		// option-trigger marker is extracted before sanitizing, so any
		// bracket left at this point is noise.
		directions: regexp.MustCompile(`\[[^\[\]]*\]`),
		emphasis:   regexp.MustCompile("[*_`]+"),
		spaces:     regexp.MustCompile(`[ \t]{2,}`),
		profanity:  make(map[string]*regexp.Regexp, len(softeners)),
	}
	for word := range softeners {
		s.profanity[word] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return s
}

// Clean returns the reply with markdown emphasis, stage directions and
// profanity removed, and whitespace normalized.
func (s *Sanitizer) Clean(text string) string {
	result := s.directions.ReplaceAllString(text, "")
	result = s.emphasis.ReplaceAllString(result, "")

	for word, re := range s.profanity {
		replacement := softeners[word]
		result = re.ReplaceAllStringFunc(result, func(match string) string {
			return matchCase(match, replacement)
		})
	}

	result = s.spaces.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// ContainsProfanity reports whether the text still holds any word from
// the softener list.
func (s *Sanitizer) ContainsProfanity(text string) bool {
	for _, re := range s.profanity {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

var titleCaser = cases.Title(language.English)

// matchCase applies the original word's casing to the replacement:
// all-caps stays all-caps, title case stays title case, anything else
// comes out lowercase.
func matchCase(original, replacement string) string {
	switch {
	case original == strings.ToUpper(original):
		return strings.ToUpper(replacement)
	case original == titleCaser.String(strings.ToLower(original)):
		return titleCaser.String(replacement)
	default:
		return replacement
	}
}
