package pipeline

import "strings"

// categoryRule maps substring keywords to a denial category. Any keyword
// matching means the rule fires.
type categoryRule struct {
	keywords []string
	label    string
}

// categoryRules is evaluated in order against the lowercased raw comment;
// the first match wins, so earlier rules take precedence when a comment
// contains several keywords.
var categoryRules = []categoryRule{
	{[]string{"copay"}, "Copay Dispute"},
	{[]string{"duplicate"}, "Duplicate Denial"},
	{[]string{"denied"}, "Denied - Policy Not Met"},
	{[]string{"no payment"}, "Payment Missing"},
	{[]string{"paid lower", "underpaid"}, "Underpayment"},
	{[]string{"coordination of benefits", "cob"}, "COB Issue"},
}

// CategoryOther is returned when no rule matches.
const CategoryOther = "Other"

// Categorize assigns a denial category to a raw comment using the fixed
// ordered rule table. Pure function, case-insensitive substring match.
func Categorize(comment string) string {
	comment = strings.ToLower(comment)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(comment, kw) {
				return rule.label
			}
		}
	}
	return CategoryOther
}
