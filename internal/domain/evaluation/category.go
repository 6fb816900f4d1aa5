// Package evaluation contains the scoring core: category normalization,
// percentage math, per-course weighted scoring, and per-student summaries.
// No I/O happens here; callers supply records fetched elsewhere.
package evaluation

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ══════════════════════════════════════════════════════════════════════════════
// CANONICAL CATEGORIES
// ══════════════════════════════════════════════════════════════════════════════

// Category is a canonical grading category key. Values produced by
// Normalize either match one of the canonical constants below or carry
// the cleaned form of an unrecognized label.
type Category string

const (
	CategoryParticipation Category = "participation"
	CategoryBehavior      Category = "behavior"
	CategoryEffort        Category = "effort"
	CategorySkills        Category = "skills"
	CategoryHomework      Category = "homework"
	CategoryContinuous    Category = "continuous"
	CategoryProject       Category = "project"
	CategoryQuiz          Category = "quiz"
	CategoryLab           Category = "lab"
	CategoryPresentation  Category = "presentation"
	CategoryMidterm       Category = "midterm"
	CategoryFinal         Category = "final"
	CategoryExam          Category = "exam"
	CategoryAttendance    Category = "attendance"
)

// Known reports whether the category is one of the canonical constants.
func (c Category) Known() bool {
	_, ok := synonyms[string(c)]
	return ok
}

// ══════════════════════════════════════════════════════════════════════════════
// NORMALIZATION
// Teaching staff enter category labels as free text, in English or Greek,
// with inconsistent casing, accents, and punctuation. Normalize maps all
// spelling variants of the same category to one canonical key so that
// evaluation rules and performance records can be matched.
// ══════════════════════════════════════════════════════════════════════════════

// synonyms maps exact cleaned labels to canonical categories. Greek keys
// are stored accent-free and with final sigma folded, matching the output
// of the cleaning step. Canonical keys map to themselves so Normalize is
// idempotent.
var synonyms = map[string]Category{
	"participation":          CategoryParticipation,
	"class participation":    CategoryParticipation,
	"συμμετοχη":              CategoryParticipation,
	"συμμετοχη στο μαθημα":   CategoryParticipation,
	"προφορικη εξεταση":      CategoryParticipation,
	"behavior":               CategoryBehavior,
	"behaviour":              CategoryBehavior,
	"συμπεριφορα":            CategoryBehavior,
	"effort":                 CategoryEffort,
	"προσπαθεια":             CategoryEffort,
	"skills":                 CategorySkills,
	"δεξιοτητεσ":             CategorySkills,
	"homework":               CategoryHomework,
	"εργασιεσ":               CategoryHomework,
	"ασκησεισ":               CategoryHomework,
	"continuous":             CategoryContinuous,
	"continuous assessment":  CategoryContinuous,
	"συνεχησ αξιολογηση":     CategoryContinuous,
	"project":                CategoryProject,
	"εργασια εξαμηνου":       CategoryProject,
	"quiz":                   CategoryQuiz,
	"κουιζ":                  CategoryQuiz,
	"τεστ":                   CategoryQuiz,
	"lab":                    CategoryLab,
	"laboratory":             CategoryLab,
	"εργαστηριο":             CategoryLab,
	"presentation":           CategoryPresentation,
	"παρουσιαση":             CategoryPresentation,
	"midterm":                CategoryMidterm,
	"προοδοσ":                CategoryMidterm,
	"final":                  CategoryFinal,
	"final exam":             CategoryFinal,
	"τελικη εξεταση":         CategoryFinal,
	"τελικο διαγωνισμα":      CategoryFinal,
	"exam":                   CategoryExam,
	"exams":                  CategoryExam,
	"written exam":           CategoryExam,
	"εξεταση":                CategoryExam,
	"εξετασεισ":              CategoryExam,
	"γραπτη εξεταση":         CategoryExam,
	"διαγωνισμα":             CategoryExam,
	"attendance":             CategoryAttendance,
	"παρουσιεσ":              CategoryAttendance,
	"απουσιεσ":               CategoryAttendance,
}

// needleGroup matches labels whose cleaned form contains one of the
// substrings. Groups are checked in order; the first hit wins, so the
// more specific exam variants come before the generic ones.
type needleGroup struct {
	category Category
	subs     []string
}

var needles = []needleGroup{
	{CategoryMidterm, []string{"midterm", "προοδ"}},
	{CategoryFinal, []string{"final", "τελικ"}},
	{CategoryExam, []string{"exam", "εξετασ", "διαγωνισ"}},
	{CategoryPresentation, []string{"presentation", "παρουσιασ"}},
	{CategoryAttendance, []string{"attend", "παρουσι", "απουσι"}},
	{CategoryLab, []string{"laborator", "εργαστηρ", "lab"}},
	{CategoryQuiz, []string{"quiz", "κουιζ", "τεστ"}},
	{CategoryProject, []string{"project"}},
	{CategoryHomework, []string{"homework", "ασκησ", "εργασι"}},
	{CategoryParticipation, []string{"particip", "συμμετοχ"}},
	{CategoryBehavior, []string{"behav", "συμπεριφορ"}},
	{CategoryEffort, []string{"effort", "προσπαθ"}},
	{CategorySkills, []string{"skill", "δεξιοτ"}},
	{CategoryContinuous, []string{"continuous", "συνεχ"}},
}

// stripAccents removes combining marks so that accented Greek labels
// match their accent-free synonym keys.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize maps a raw category label to its canonical Category.
// Unrecognized labels come back as their cleaned form so that identical
// spellings still group together. Normalize is idempotent: feeding its
// output back in returns the same value.
func Normalize(raw string) Category {
	cleaned := clean(raw)
	if cleaned == "" {
		return ""
	}
	if c, ok := synonyms[cleaned]; ok {
		return c
	}
	for _, g := range needles {
		for _, sub := range g.subs {
			if strings.Contains(cleaned, sub) {
				return g.category
			}
		}
	}
	return Category(cleaned)
}

// clean lowercases the label, strips accents, folds final sigma, and
// collapses separator runs into single spaces.
func clean(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "ς", "σ")

	var b strings.Builder
	b.Grow(len(s))
	pendingSpace := false
	for _, r := range s {
		if r == '.' || r == '_' || r == '(' || r == ')' || r == '-' || unicode.IsSpace(r) {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
