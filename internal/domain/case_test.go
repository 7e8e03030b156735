package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCaseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want CaseStatus
		ok   bool
	}{
		{"Pending", CaseStatusPending, true},
		{"  resolved ", CaseStatusResolved, true},
		{"IN PROGRESS", CaseStatusInProgress, true},
		{"rejected", CaseStatusRejected, true},
		{"in_progress", "", false},
		{"", "", false},
		{"Closed", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseCaseStatus(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCaseType(t *testing.T) {
	for _, ct := range CaseTypes {
		got, ok := ParseCaseType(string(ct))
		assert.True(t, ok, ct)
		assert.Equal(t, ct, got)
	}
	got, ok := ParseCaseType("constitutional")
	assert.True(t, ok)
	assert.Equal(t, CaseTypeConstitutional, got)

	_, ok = ParseCaseType("Maritime")
	assert.False(t, ok)
}

func TestParseReportingCategory(t *testing.T) {
	for _, c := range ReportingCategories {
		got, ok := ParseReportingCategory(string(c))
		assert.True(t, ok, c)
		assert.Equal(t, c, got)
	}
	got, ok := ParseReportingCategory("human rights violation")
	assert.True(t, ok)
	assert.Equal(t, CategoryHumanRightsViolation, got)

	_, ok = ParseReportingCategory("Human Rights")
	assert.False(t, ok)
}
