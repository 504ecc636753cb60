// Package normalize maps free-form phrasing from the public forms onto the
// canonical enum values stored for projects and gallery items.
//
// Every function returns canonical input unchanged, so applying it twice is
// the same as applying it once. Input that cannot be recognised is returned
// trimmed but otherwise untouched and is left for the validator to reject.
package normalize

import (
	"regexp"
	"strings"

	"github.com/mustardworks/portfolio-api/internal/core/domain"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// key lower-cases s and collapses every run of punctuation or whitespace
// into a single space.
func key(s string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), " "))
}

type aliasTable map[string]string

func newAliasTable(canonical []string, aliases map[string][]string) aliasTable {
	t := make(aliasTable, len(canonical))
	for _, c := range canonical {
		t[key(c)] = c
	}
	for c, list := range aliases {
		for _, a := range list {
			t[key(a)] = c
		}
	}
	return t
}

func (t aliasTable) lookup(s string) string {
	if v, ok := t[key(s)]; ok {
		return v
	}
	return strings.TrimSpace(s)
}

var evAliases = []string{
	"ev", "evs", "e vehicle", "e vehicles", "electric vehicle", "electric vehicles",
	"electric vehicle ev", "electric", "e mobility", "emobility",
}

var projectTypes = newAliasTable(domain.ProjectTypes, map[string][]string{
	domain.TypeEV:       evAliases,
	domain.TypeIoT:      {"internet of things", "io t", "smart home", "smart devices"},
	domain.TypeAI:       {"artificial intelligence", "ml", "machine learning", "ai ml", "ai and ml", "deep learning"},
	domain.TypeApp:      {"apps", "mobile", "mobile app", "mobile application", "android", "ios", "application"},
	domain.TypeWeb:      {"website", "web app", "web application", "web development", "webapp", "web site"},
	domain.TypeHardware: {"hw", "electronics", "pcb", "pcb design", "circuit design"},
	domain.TypeEmbedded: {"embedded system", "embedded systems", "firmware", "microcontroller", "arduino"},
	domain.TypeVLSI:     {"chip design", "asic", "fpga", "semiconductor"},
	domain.TypeLaptop:   {"laptops", "laptop repair", "computer", "pc"},
	domain.TypeOther:    {"others", "misc", "miscellaneous"},
})

var categories = newAliasTable(domain.Categories, map[string][]string{
	domain.CategoryEVehicles: evAliases,
	domain.CategoryIoT:       {"internet of things", "io t", "smart home"},
	domain.CategoryAI:        {"artificial intelligence", "ml", "machine learning", "ai ml", "ai and ml"},
	domain.CategoryHardware:  {"hw", "electronics", "pcb", "embedded", "embedded systems"},
	domain.CategorySoftware:  {"sw", "web", "website", "app", "apps", "mobile app", "web app"},
	domain.CategoryVLSI:      {"chip design", "asic", "fpga", "semiconductor"},
	domain.CategoryAll:       {"all", "all projects", "any"},
})

// ProjectType returns the canonical project type for s.
func ProjectType(s string) string { return projectTypes.lookup(s) }

// Category returns the canonical gallery category for s. "all" is kept as
// the listing pseudo-category.
func Category(s string) string { return categories.lookup(s) }

var statusAliases = map[string]domain.ProjectStatus{
	"inreview":   domain.StatusInReview,
	"reviewing":  domain.StatusInReview,
	"inprogress": domain.StatusInProgress,
	"accepted":   domain.StatusApproved,
	"done":       domain.StatusCompleted,
}

// Status returns the canonical project status for s: "In Review" and
// "in_review" both become "in-review".
func Status(s string) string {
	k := key(s)
	if v, ok := statusAliases[strings.ReplaceAll(k, " ", "")]; ok {
		return string(v)
	}
	if k == "" {
		return strings.TrimSpace(s)
	}
	return strings.ReplaceAll(k, " ", "-")
}

// Email lower-cases and trims an address. Emails compare case-insensitively.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
