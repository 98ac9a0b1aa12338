package nlp

import "strings"

// lemmaExceptions maps irregular forms straight to their lemma. Checked
// before any suffix rule.
var lemmaExceptions = map[string]string{
	"feet":     "foot",
	"geese":    "goose",
	"teeth":    "tooth",
	"men":      "man",
	"women":    "woman",
	"children": "child",
	"mice":     "mouse",
	"people":   "person",
	"paid":     "pay",
	"said":     "say",
	"denied":   "deny",
	"went":     "go",
	"made":     "make",
	"sent":     "send",
	"received": "receive",
	"billed":   "bill",
	"better":   "good",
	"worse":    "bad",
	"data":     "datum",
	"criteria": "criterion",
	"claims":   "claim",
	"fees":     "fee",
	"copays":   "copay",
	"services": "service",
}

// nonInflected are words that end like plurals or participles but are not.
var nonInflected = map[string]struct{}{
	"this": {}, "his": {}, "was": {}, "is": {}, "has": {}, "does": {},
	"yes": {}, "gas": {}, "bus": {}, "plus": {}, "status": {}, "bonus": {},
	"analysis": {}, "diagnosis": {}, "basis": {}, "crisis": {},
	"business": {}, "process": {}, "address": {}, "access": {}, "less": {},
	"loss": {}, "across": {}, "previous": {}, "various": {}, "serious": {},
	"need": {}, "during": {}, "billing": {}, "nothing": {}, "pending": {},
}

// Lemmatize reduces a lowercase token to its base form using a small set
// of English suffix rules with an exceptions table. It is intentionally
// conservative: when no rule safely applies the token passes through
// unchanged, which keeps normalization idempotent.
func Lemmatize(token string) string {
	if lemma, ok := lemmaExceptions[token]; ok {
		return lemma
	}
	if _, ok := nonInflected[token]; ok {
		return token
	}
	if len(token) <= 3 {
		return token
	}

	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		// policies -> policy, copies -> copy
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "sses"):
		// processes -> process
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ches"), strings.HasSuffix(token, "shes"),
		strings.HasSuffix(token, "xes"), strings.HasSuffix(token, "zes"):
		// matches -> match, boxes -> box
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ss"):
		return token
	case strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "us") &&
		!strings.HasSuffix(token, "is"):
		// payments -> payment
		return token[:len(token)-1]
	}

	if strings.HasSuffix(token, "ied") && len(token) > 4 {
		// applied -> apply
		return token[:len(token)-3] + "y"
	}
	if strings.HasSuffix(token, "ing") && len(token) > 5 {
		stem := token[:len(token)-3]
		// submitting -> submit (undouble the consonant)
		if len(stem) > 2 && stem[len(stem)-1] == stem[len(stem)-2] && !isVowel(stem[len(stem)-1]) {
			stem = stem[:len(stem)-1]
		}
		if hasVowel(stem) {
			return stem
		}
	}
	if strings.HasSuffix(token, "ed") && len(token) > 4 {
		stem := token[:len(token)-2]
		if len(stem) > 2 && stem[len(stem)-1] == stem[len(stem)-2] && !isVowel(stem[len(stem)-1]) {
			stem = stem[:len(stem)-1]
		}
		if hasVowel(stem) {
			return stem
		}
	}

	return token
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

func hasVowel(s string) bool {
	for i := 0; i < len(s); i++ {
		if isVowel(s[i]) {
			return true
		}
	}
	return false
}
