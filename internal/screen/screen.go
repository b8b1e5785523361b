// Package screen flags crisis language in outbound messages. The check is
// advisory: callers surface support resources but never block the send.
package screen

import "strings"

// Deliberately over-broad. A false positive shows the user a resource
// panel; a false negative hides it when it might matter.
var lexicon = []string{
	"suicide",
	"kill myself",
	"end my life",
	"want to die",
	"harm myself",
	"self harm",
	"hurt myself",
	"emergency",
	"crisis",
	"urgent help",
	"immediate help",
	"life threatening",
	"overdose",
	"kill",
	"die",
	"end it",
	"hopeless",
	"worthless",
}

// Flagged reports whether the lowercased text contains any lexicon term
// as a substring.
func Flagged(text string) bool {
	lowered := strings.ToLower(text)
	for _, term := range lexicon {
		if strings.Contains(lowered, term) {
			return true
		}
	}
	return false
}
