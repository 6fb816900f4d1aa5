package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_EnglishSynonyms(t *testing.T) {
	assert.Equal(t, CategoryParticipation, Normalize("Class Participation"))
	assert.Equal(t, CategoryParticipation, Normalize("class_participation"))
	assert.Equal(t, CategoryBehavior, Normalize("Behaviour"))
	assert.Equal(t, CategoryHomework, Normalize("HOMEWORK"))
	assert.Equal(t, CategoryContinuous, Normalize("Continuous Assessment"))
	assert.Equal(t, CategoryFinal, Normalize("Final Exam"))
	assert.Equal(t, CategoryExam, Normalize("Written exam"))
	assert.Equal(t, CategoryLab, Normalize("Laboratory"))
}

func TestNormalize_GreekSynonyms(t *testing.T) {
	// Accented input with final sigma must fold to the accent-free keys.
	assert.Equal(t, CategoryParticipation, Normalize("Συμμετοχή"))
	assert.Equal(t, CategoryParticipation, Normalize("συμμετοχη στο μάθημα"))
	assert.Equal(t, CategoryBehavior, Normalize("Συμπεριφορά"))
	assert.Equal(t, CategoryEffort, Normalize("Προσπάθεια"))
	assert.Equal(t, CategorySkills, Normalize("Δεξιότητες"))
	assert.Equal(t, CategoryHomework, Normalize("Εργασίες"))
	assert.Equal(t, CategoryExam, Normalize("Διαγώνισμα"))
	assert.Equal(t, CategoryFinal, Normalize("Τελική Εξέταση"))
	assert.Equal(t, CategoryMidterm, Normalize("Πρόοδος"))
	assert.Equal(t, CategoryAttendance, Normalize("Απουσίες"))
	assert.Equal(t, CategoryLab, Normalize("Εργαστήριο"))
}

func TestNormalize_NeedleFallback(t *testing.T) {
	// Labels not in the synonym table still match by substring.
	assert.Equal(t, CategoryExam, Normalize("2nd exam (retake)"))
	assert.Equal(t, CategoryExam, Normalize("γραπτές εξετάσεις Ιουνίου"))
	assert.Equal(t, CategoryMidterm, Normalize("midterm 1"))
	assert.Equal(t, CategoryQuiz, Normalize("pop quiz #3"))
	assert.Equal(t, CategoryPresentation, Normalize("Παρουσίαση project ομάδας"))
	assert.Equal(t, CategoryAttendance, Normalize("weekly attendance check"))
}

func TestNormalize_Cleaning(t *testing.T) {
	assert.Equal(t, CategoryParticipation, Normalize("  Class---Participation  "))
	assert.Equal(t, CategoryQuiz, Normalize("Quiz.(week_2)"))
	assert.Equal(t, Category(""), Normalize(""))
	assert.Equal(t, Category(""), Normalize("   \t "))
}

func TestNormalize_UnrecognizedKeepsCleanedForm(t *testing.T) {
	got := Normalize("Field-Trip Report")
	assert.Equal(t, Category("field trip report"), got)
	assert.False(t, got.Known())
	assert.Equal(t, BucketNone, BucketOf(got))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"Class Participation",
		"Συμμετοχή στο μάθημα",
		"Τελική Εξέταση",
		"γραπτές εξετάσεις",
		"Field-Trip Report",
		"  weird..label_(x) ",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(string(once))
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestCategory_Known(t *testing.T) {
	assert.True(t, CategoryExam.Known())
	assert.True(t, CategoryAttendance.Known())
	assert.False(t, Category("field trip report").Known())
}
