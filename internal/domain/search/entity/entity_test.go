package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalJobType(t *testing.T) {
	tests := []struct {
		in   string
		want JobType
	}{
		{"INTERNSHIP", Internship},
		{"internship", Internship},
		{"stage", Internship},
		{"Tirocinio", Internship},
		{"full time", FullTime},
		{"full-time", FullTime},
		{"FULL_TIME", FullTime},
		{"part time", PartTime},
		{"freelance", Contract},
		{"contract", Contract},
		{" temporary ", Temporary},
		{"apprenticeship", "APPRENTICESHIP"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalJobType(tt.in), "input %q", tt.in)
	}
}

func TestNew_Normalizes(t *testing.T) {
	s := New(
		[]string{"React", " react ", "", "Python"},
		[]string{"Milan", "milan", "Rome"},
		[]string{"stage", "INTERNSHIP", "full time"},
		[]string{"Bocconi", "POLITECNICO"},
	)

	assert.Equal(t, []string{"react", "python"}, s.Skills())
	assert.Equal(t, []string{"Milan", "Rome"}, s.Locations())
	assert.Equal(t, []JobType{Internship, FullTime}, s.JobTypes())
	assert.Equal(t, []string{"bocconi", "politecnico"}, s.Universities())
	assert.False(t, s.IsEmpty())
}

func TestSet_Empty(t *testing.T) {
	s := New(nil, []string{" "}, nil, []string{})
	assert.True(t, s.IsEmpty())

	_, ok := s.FirstLocation()
	assert.False(t, ok)
	_, ok = s.FirstUniversity()
	assert.False(t, ok)
}

func TestSet_FirstOnly(t *testing.T) {
	s := New(nil, []string{"Turin", "Milan"}, nil, []string{"sapienza", "luiss"})

	loc, ok := s.FirstLocation()
	assert.True(t, ok)
	assert.Equal(t, "Turin", loc)

	uni, ok := s.FirstUniversity()
	assert.True(t, ok)
	assert.Equal(t, "sapienza", uni)
}
