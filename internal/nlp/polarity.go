package nlp

import "strings"

// valence maps sentiment-bearing words to a score in [-1, 1]. The list is
// tuned for payer correspondence: reimbursement, denial, and service
// language dominate over general English.
var valence = map[string]float64{
	"great":        0.8,
	"excellent":    1.0,
	"good":         0.7,
	"helpful":      0.6,
	"happy":        0.8,
	"satisfied":    0.7,
	"thanks":       0.5,
	"thank":        0.5,
	"resolved":     0.5,
	"approved":     0.6,
	"quick":        0.4,
	"fast":         0.4,
	"smooth":       0.5,
	"easy":         0.4,
	"correct":      0.3,
	"fair":         0.3,
	"prompt":       0.4,
	"courteous":    0.5,
	"clear":        0.3,
	"bad":          -0.7,
	"poor":         -0.6,
	"terrible":     -1.0,
	"awful":        -1.0,
	"horrible":     -1.0,
	"wrong":        -0.5,
	"slow":         -0.4,
	"late":         -0.3,
	"denied":       -0.6,
	"denial":       -0.6,
	"rejected":     -0.6,
	"refused":      -0.6,
	"dispute":      -0.4,
	"error":        -0.4,
	"mistake":      -0.4,
	"missing":      -0.4,
	"lost":         -0.5,
	"delayed":      -0.4,
	"delay":        -0.4,
	"underpaid":    -0.5,
	"unpaid":       -0.5,
	"confusing":    -0.4,
	"confused":     -0.4,
	"frustrating":  -0.7,
	"frustrated":   -0.7,
	"unacceptable": -0.8,
	"disappointed": -0.6,
	"unfair":       -0.6,
	"incorrect":    -0.5,
	"duplicate":    -0.2,
	"problem":      -0.4,
	"issue":        -0.3,
	"complaint":    -0.4,
	"never":        -0.2,
	"waiting":      -0.2,
}

// negators invert the valence of the following sentiment word.
var negators = map[string]struct{}{
	"not": {}, "no": {}, "never": {}, "nothing": {}, "neither": {},
	"nowhere": {}, "hardly": {}, "barely": {}, "cannot": {}, "cant": {},
	"dont": {}, "didnt": {}, "wasnt": {}, "isnt": {}, "wont": {},
}

// intensifiers scale the valence of the following sentiment word.
var intensifiers = map[string]float64{
	"very": 1.3, "extremely": 1.5, "really": 1.3, "so": 1.2,
	"totally": 1.4, "completely": 1.4, "absolutely": 1.5,
	"slightly": 0.6, "somewhat": 0.7, "a": 1.0,
}

// Polarity computes a continuous sentiment score in [-1, 1] over the raw
// comment. It runs on the unnormalized text: negation and intensity cues
// live in words the normalizer would strip.
func Polarity(text string) float64 {
	tokens := strings.Fields(strings.ToLower(punctuationRe.ReplaceAllString(text, " ")))
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	var hits int
	for i, token := range tokens {
		score, ok := valence[token]
		if !ok {
			// Inflected forms score as their lemma ("errors" -> "error").
			score, ok = valence[Lemmatize(token)]
		}
		if !ok {
			continue
		}

		// Look back up to two tokens for negation and intensity.
		factor := 1.0
		for j := i - 1; j >= 0 && j >= i-2; j-- {
			if _, neg := negators[tokens[j]]; neg {
				factor *= -1
				continue
			}
			if scale, ok := intensifiers[tokens[j]]; ok {
				factor *= scale
			}
		}

		sum += score * factor
		hits++
	}

	if hits == 0 {
		return 0
	}
	polarity := sum / float64(hits)
	if polarity > 1 {
		polarity = 1
	} else if polarity < -1 {
		polarity = -1
	}
	return polarity
}
