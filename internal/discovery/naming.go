package discovery

import (
	"strings"
	"unicode"
)

// knownAcronyms are kept fully uppercased when they appear as a word.
var knownAcronyms = map[string]string{
	"cli": "CLI",
	"gui": "GUI",
	"ide": "IDE",
	"sdk": "SDK",
	"vpn": "VPN",
	"ssh": "SSH",
	"db":  "DB",
	"vm":  "VM",
}

// DisplayName derives a human readable name from a file stem. Separator
// characters become spaces and each word is title cased, except words the
// author already wrote with internal capitals, which are trusted as-is.
func DisplayName(stem string) string {
	if stem == "" {
		return stem
	}

	words := strings.FieldsFunc(stem, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || unicode.IsSpace(r)
	})
	if len(words) == 0 {
		return stem
	}

	for i, word := range words {
		if acronym, ok := knownAcronyms[strings.ToLower(word)]; ok {
			words[i] = acronym
			continue
		}
		if hasInternalCapital(word) {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}

	return strings.Join(words, " ")
}

func hasInternalCapital(word string) bool {
	for i, r := range word {
		if i > 0 && unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
