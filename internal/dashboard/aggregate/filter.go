// Package aggregate filters case snapshots and computes dashboard summaries.
// Everything here is synchronous and pure over its input; fetching is the
// dashboard service's job.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"sherialink/internal/domain"
	dErrors "sherialink/pkg/domain-errors"
)

// All bypasses the county or status condition.
const All = "all"

// FilterSpec selects a subset of case records. Conditions combine with AND;
// empty or "all" bypasses a condition. Dates are YYYY-MM-DD in UTC, both
// inclusive, compared against the record's creation time.
type FilterSpec struct {
	County    string `json:"county"`
	Status    string `json:"status"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Normalize trims every field and spells bypassed conditions as "all", so the
// applied filter echoed in a report does not depend on how the caller wrote it.
func (f FilterSpec) Normalize() FilterSpec {
	out := FilterSpec{
		County:    strings.TrimSpace(f.County),
		Status:    strings.TrimSpace(f.Status),
		StartDate: strings.TrimSpace(f.StartDate),
		EndDate:   strings.TrimSpace(f.EndDate),
	}
	if out.County == "" || strings.EqualFold(out.County, All) {
		out.County = All
	}
	if out.Status == "" || strings.EqualFold(out.Status, All) {
		out.Status = All
	}
	return out
}

// Validate rejects unknown statuses, unparseable dates and inverted ranges.
func (f FilterSpec) Validate() error {
	f = f.Normalize()
	if f.Status != All {
		if _, ok := domain.ParseCaseStatus(f.Status); !ok {
			return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("unknown status %q", f.Status))
		}
	}
	start, hasStart, err := parseDate("startDate", f.StartDate)
	if err != nil {
		return err
	}
	end, hasEnd, err := parseDate("endDate", f.EndDate)
	if err != nil {
		return err
	}
	if hasStart && hasEnd && end.Before(start) {
		return dErrors.New(dErrors.CodeValidation, "endDate is before startDate")
	}
	return nil
}

func parseDate(field, s string) (time.Time, bool, error) {
	if s == "" {
		return time.Time{}, false, nil
	}
	t, err := time.ParseInLocation(domain.DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, false, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be YYYY-MM-DD", field))
	}
	return t, true, nil
}

// matcher is a FilterSpec compiled once per call.
type matcher struct {
	county   string
	status   string
	dated    bool
	start    time.Time
	hasStart bool
	endExcl  time.Time
	hasEnd   bool
}

// compile ignores unparseable dates; callers that need to reject them call
// Validate first.
func compile(f FilterSpec) matcher {
	f = f.Normalize()
	m := matcher{county: f.County, status: f.Status}
	if start, ok, err := parseDate("startDate", f.StartDate); err == nil && ok {
		m.start, m.hasStart, m.dated = start, true, true
	}
	if end, ok, err := parseDate("endDate", f.EndDate); err == nil && ok {
		// inclusive through 23:59:59.999… of the end date
		m.endExcl, m.hasEnd, m.dated = end.AddDate(0, 0, 1), true, true
	}
	return m
}

func (m matcher) match(r domain.CaseReport) bool {
	if m.county != All && !strings.EqualFold(strings.TrimSpace(r.County), m.county) {
		return false
	}
	if m.status != All && !strings.EqualFold(strings.TrimSpace(string(r.Status)), m.status) {
		return false
	}
	if m.dated {
		if r.CreatedAt.IsZero() {
			return false
		}
		created := r.CreatedAt.UTC()
		if m.hasStart && created.Before(m.start) {
			return false
		}
		if m.hasEnd && !created.Before(m.endExcl) {
			return false
		}
	}
	return true
}

// FilterRecords returns the records matching f, in input order. The input is
// not modified.
func FilterRecords(records []domain.CaseReport, f FilterSpec) []domain.CaseReport {
	m := compile(f)
	out := make([]domain.CaseReport, 0, len(records))
	for _, r := range records {
		if m.match(r) {
			out = append(out, r)
		}
	}
	return out
}
