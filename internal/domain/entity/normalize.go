package entity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeEmail recorta espacios y pasa a minúsculas; es la forma con la que se persiste y se busca.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(email))
}

// ContainsFold reporta si needle aparece en haystack sin distinguir mayúsculas (case folding Unicode).
func ContainsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(cases.Fold().String(haystack), cases.Fold().String(needle))
}
