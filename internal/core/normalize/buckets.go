package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

// bound marks a value written as "under X" or "over X".
type bound int

const (
	exact bound = iota
	below
	above
)

var (
	amountRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)(k|m)?$`)
	spanRe   = regexp.MustCompile(`^(\d+(?:\.\d+)?)(?:-(\d+(?:\.\d+)?))?(d|days?|w|wks?|weeks?|m|mos?|months?|y|yrs?|years?)$`)

	currency = strings.NewReplacer("$", "", "usd", "", "₹", "", "inr", "", "rs.", "", "rs", "", ",", "", "_", "")
)

var (
	belowWords = []string{"<", "under", "below", "lessthan", "within"}
	aboveWords = []string{">", "over", "above", "morethan"}
)

// compact lower-cases s and drops all whitespace: "1 - 3 Months" → "1-3months".
func compact(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}

// splitBound strips a leading "under"/"over" word or a trailing "+".
func splitBound(s string) (string, bound) {
	for _, w := range belowWords {
		if strings.HasPrefix(s, w) {
			return strings.TrimPrefix(s, w), below
		}
	}
	for _, w := range aboveWords {
		if strings.HasPrefix(s, w) {
			return strings.TrimPrefix(s, w), above
		}
	}
	if strings.HasSuffix(s, "+") {
		return strings.TrimSuffix(s, "+"), above
	}
	return s, exact
}

func nudge(v float64, b bound, step float64) float64 {
	switch b {
	case below:
		return v - step
	case above:
		return v + step
	}
	return v
}

// Budget returns the canonical budget bucket for s. Shorthand such as "10k",
// "$7,500", "1k-5k" or "25k+" is parsed and placed in the bucket whose
// inclusive upper bound covers it. The empty string stays empty.
func Budget(s string) string {
	c := compact(s)
	if c == "" {
		return ""
	}
	if domain.ValidBudget(c) {
		return c
	}
	v, ok := parseBudget(c)
	if !ok {
		return strings.TrimSpace(s)
	}
	switch {
	case v < 1000:
		return "<1000"
	case v <= 5000:
		return "1000-5000"
	case v <= 10000:
		return "5000-10000"
	case v <= 25000:
		return "10000-25000"
	default:
		return ">25000"
	}
}

func parseBudget(c string) (float64, bool) {
	c, b := splitBound(currency.Replace(c))
	if lo, hi, found := strings.Cut(strings.Replace(c, "to", "-", 1), "-"); found {
		l, okL := parseAmount(lo)
		h, okH := parseAmount(hi)
		if !okL || !okH || h < l {
			return 0, false
		}
		return (l + h) / 2, true
	}
	v, ok := parseAmount(c)
	if !ok {
		return 0, false
	}
	return nudge(v, b, 1), true
}

func parseAmount(s string) (float64, bool) {
	m := amountRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "k":
		v *= 1_000
	case "m":
		v *= 1_000_000
	}
	return v, true
}

// Timeline returns the canonical timeline bucket for s. Shorthand such as
// "3m", "2 weeks", "1y" or "4-8 months" is converted to months and placed in
// the bucket whose inclusive upper bound covers it.
func Timeline(s string) string {
	c := compact(s)
	if c == "" {
		return ""
	}
	if domain.ValidTimeline(c) {
		return c
	}
	if strings.HasSuffix(c, "month") && domain.ValidTimeline(c+"s") {
		return c + "s"
	}
	months, ok := parseMonths(c)
	if !ok {
		return strings.TrimSpace(s)
	}
	switch {
	case months < 1:
		return "<1month"
	case months <= 3:
		return "1-3months"
	case months <= 6:
		return "3-6months"
	case months <= 12:
		return "6-12months"
	default:
		return ">12months"
	}
}

func parseMonths(c string) (float64, bool) {
	c, b := splitBound(c)
	m := spanRe.FindStringSubmatch(c)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	if m[2] != "" {
		hi, err := strconv.ParseFloat(m[2], 64)
		if err != nil || hi < v {
			return 0, false
		}
		v = (v + hi) / 2
	}
	switch m[3][0] {
	case 'd':
		v /= 30
	case 'w':
		v = v * 7 / 30
	case 'y':
		v *= 12
	}
	return nudge(v, b, 0.01), true
}
