package domain

import (
	"strings"
	"time"
)

// CaseStatus is the lifecycle position of a case report. The record store owns
// transitions; this service only sets Pending at creation and reads the rest.
type CaseStatus string

const (
	CaseStatusPending    CaseStatus = "Pending"
	CaseStatusInProgress CaseStatus = "In Progress"
	CaseStatusResolved   CaseStatus = "Resolved"
	CaseStatusRejected   CaseStatus = "Rejected"
)

// CaseStatuses lists every status in display order.
var CaseStatuses = []CaseStatus{
	CaseStatusPending,
	CaseStatusInProgress,
	CaseStatusResolved,
	CaseStatusRejected,
}

// ParseCaseStatus matches s case-insensitively against the closed set and
// returns the canonical value.
func ParseCaseStatus(s string) (CaseStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range CaseStatuses {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// CaseType is the legal area a report belongs to.
type CaseType string

const (
	CaseTypeCivil          CaseType = "Civil"
	CaseTypeCriminal       CaseType = "Criminal"
	CaseTypeFamily         CaseType = "Family"
	CaseTypeLand           CaseType = "Land"
	CaseTypeCommercial     CaseType = "Commercial"
	CaseTypeAdministrative CaseType = "Administrative"
	CaseTypeConstitutional CaseType = "Constitutional"
	CaseTypeOther          CaseType = "Other"
)

var CaseTypes = []CaseType{
	CaseTypeCivil,
	CaseTypeCriminal,
	CaseTypeFamily,
	CaseTypeLand,
	CaseTypeCommercial,
	CaseTypeAdministrative,
	CaseTypeConstitutional,
	CaseTypeOther,
}

func ParseCaseType(s string) (CaseType, bool) {
	s = strings.TrimSpace(s)
	for _, ct := range CaseTypes {
		if strings.EqualFold(s, string(ct)) {
			return ct, true
		}
	}
	return "", false
}

// ReportingCategory is what the citizen is reporting. The record store keeps it
// in the "description" field.
type ReportingCategory string

const (
	CategoryCorruption           ReportingCategory = "Corruption"
	CategoryHumanRightsViolation ReportingCategory = "Human Rights Violation"
	CategoryLandDispute          ReportingCategory = "Land Dispute"
	CategoryFamilyMatter         ReportingCategory = "Family Matter"
	CategoryCriminalCase         ReportingCategory = "Criminal Case"
	CategoryCivilCase            ReportingCategory = "Civil Case"
	CategoryAdministrativeIssue  ReportingCategory = "Administrative Issue"
	CategoryOther                ReportingCategory = "Other"
)

var ReportingCategories = []ReportingCategory{
	CategoryCorruption,
	CategoryHumanRightsViolation,
	CategoryLandDispute,
	CategoryFamilyMatter,
	CategoryCriminalCase,
	CategoryCivilCase,
	CategoryAdministrativeIssue,
	CategoryOther,
}

func ParseReportingCategory(s string) (ReportingCategory, bool) {
	s = strings.TrimSpace(s)
	for _, c := range ReportingCategories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// DateLayout is the wire format of calendar dates (incident date, filter bounds).
const DateLayout = "2006-01-02"

// CaseReport is a citizen-submitted report as held by the record store.
//
// Invariants for records created by this service:
//   - ID is assigned by the record store and is never empty once persisted
//   - Status is drawn from CaseStatuses and is Pending at creation
//   - PhoneNumber matches the Kenyan mobile pattern
//   - CreatedAt is the submission time, never the incident date
//
// Records read back for the dashboard may violate these; the aggregation
// engine treats such records as malformed rather than failing.
type CaseReport struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	PhoneNumber string            `json:"phoneNumber"`
	County      string            `json:"county"`
	CaseType    CaseType          `json:"caseType"`
	Description ReportingCategory `json:"description"`
	Date        string            `json:"date"`
	Status      CaseStatus        `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// NewCase is the create payload sent to the record store.
type NewCase struct {
	Name        string
	PhoneNumber string
	County      string
	CaseType    CaseType
	Description ReportingCategory
	Date        time.Time
	Status      CaseStatus
	CreatedAt   time.Time
}
