package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGradeOrdinal(t *testing.T) {
	tests := []struct {
		grade Grade
		value float64
		ok    bool
	}{
		{GradeA, 4, true},
		{GradeB, 3, true},
		{GradeC, 2, true},
		{GradeD, 1, true},
		{GradeF, 0, true},
		{GradeUnknown, 0, false},
		{Grade("Z"), 0, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.grade), func(t *testing.T) {
			value, ok := tt.grade.Ordinal()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestGradeIsLetter(t *testing.T) {
	for _, g := range LetterGrades {
		assert.True(t, g.IsLetter(), "grade %s", g)
	}
	assert.False(t, GradeUnknown.IsLetter())
	assert.False(t, Grade("").IsLetter())
}

func TestAverageGrade(t *testing.T) {
	tests := []struct {
		name   string
		grades []Grade
		mean   float64
		ok     bool
	}{
		{
			name:   "all same",
			grades: []Grade{GradeA, GradeA},
			mean:   4,
			ok:     true,
		},
		{
			name:   "mixed",
			grades: []Grade{GradeA, GradeA, GradeB, GradeB},
			mean:   3.5,
			ok:     true,
		},
		{
			name:   "unknown entries are skipped",
			grades: []Grade{GradeA, GradeUnknown, GradeB},
			mean:   3.5,
			ok:     true,
		},
		{
			name:   "only unknowns",
			grades: []Grade{GradeUnknown, GradeUnknown},
			ok:     false,
		},
		{
			name:   "empty",
			grades: nil,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, ok := AverageGrade(tt.grades)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.mean, mean, 1e-9)
			}
		})
	}
}

func TestBucketGrade(t *testing.T) {
	tests := []struct {
		mean     float64
		expected Grade
	}{
		{4.0, GradeA},
		{3.5, GradeA},
		{3.49, GradeB},
		{2.5, GradeB},
		{2.0, GradeC},
		{1.5, GradeC},
		{1.0, GradeD},
		{0.5, GradeD},
		{0.49, GradeF},
		{0.0, GradeF},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, BucketGrade(tt.mean), "mean %.2f", tt.mean)
	}
}

func TestBucketGrade_RoundTripExamples(t *testing.T) {
	// Two A's and two B's average to an A; a C and a D average to a C.
	mean, ok := AverageGrade([]Grade{GradeA, GradeA, GradeB, GradeB})
	require.True(t, ok)
	assert.Equal(t, GradeA, BucketGrade(mean))

	mean, ok = AverageGrade([]Grade{GradeC, GradeD})
	require.True(t, ok)
	assert.Equal(t, GradeC, BucketGrade(mean))
}
