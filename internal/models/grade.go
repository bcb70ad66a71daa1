package models

// Grade is a letter grade assigned by the judge model.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
	// GradeUnknown marks an outcome whose grading call failed. It is never
	// produced by the judge itself and is excluded from grade averages.
	GradeUnknown Grade = "?"
)

// LetterGrades lists the grades the judge may assign, best first.
var LetterGrades = []Grade{GradeA, GradeB, GradeC, GradeD, GradeF}

var gradeOrdinals = map[Grade]float64{
	GradeA: 4,
	GradeB: 3,
	GradeC: 2,
	GradeD: 1,
	GradeF: 0,
}

// Ordinal returns the numeric value of a letter grade (A=4 .. F=0).
// ok is false for GradeUnknown and anything else outside the scale.
func (g Grade) Ordinal() (value float64, ok bool) {
	value, ok = gradeOrdinals[g]
	return value, ok
}

// IsLetter reports whether g is one of the five letter grades.
func (g Grade) IsLetter() bool {
	_, ok := gradeOrdinals[g]
	return ok
}

// AverageGrade returns the mean ordinal of the letter grades in grades.
// GradeUnknown entries are skipped. ok is false when nothing was gradable.
func AverageGrade(grades []Grade) (mean float64, ok bool) {
	sum := 0.0
	n := 0
	for _, g := range grades {
		v, valid := g.Ordinal()
		if !valid {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// BucketGrade maps a mean ordinal back onto the letter scale.
func BucketGrade(mean float64) Grade {
	switch {
	case mean >= 3.5:
		return GradeA
	case mean >= 2.5:
		return GradeB
	case mean >= 1.5:
		return GradeC
	case mean >= 0.5:
		return GradeD
	default:
		return GradeF
	}
}
