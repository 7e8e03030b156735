package recordstore

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"sherialink/internal/domain"
)

// The record store is document-backed: identifiers arrive as "_id", some
// deployments also send "id", and timestamps are ISO-8601 strings. Case
// records are decoded one at a time with lenient field types, so one odd
// record does not fail a whole list; the dashboard decides what to do with
// records that come back incomplete.

type caseDTO struct {
	DocumentID  flexString `json:"_id,omitempty"`
	ID          flexString `json:"id,omitempty"`
	Name        flexString `json:"name"`
	PhoneNumber flexString `json:"phoneNumber"`
	County      flexString `json:"county"`
	CaseType    flexString `json:"caseType"`
	Description flexString `json:"description"`
	Date        flexString `json:"date"`
	Status      flexString `json:"status"`
	CreatedAt   flexString `json:"createdAt,omitempty"`
}

func (d caseDTO) toDomain() domain.CaseReport {
	return domain.CaseReport{
		ID:          firstNonEmpty(string(d.DocumentID), string(d.ID)),
		Name:        string(d.Name),
		PhoneNumber: string(d.PhoneNumber),
		County:      string(d.County),
		CaseType:    domain.CaseType(d.CaseType),
		Description: domain.ReportingCategory(d.Description),
		Date:        calendarDate(string(d.Date)),
		Status:      domain.CaseStatus(d.Status),
		CreatedAt:   parseTimestamp(string(d.CreatedAt)),
	}
}

// decodeCase never fails. Anything that is not an object comes back as an
// empty record, which has no ID and is excluded by the aggregation engine.
func decodeCase(raw json.RawMessage) domain.CaseReport {
	var dto caseDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return domain.CaseReport{}
	}
	return dto.toDomain()
}

func newCaseRequest(in domain.NewCase) caseDTO {
	return caseDTO{
		Name:        flexString(in.Name),
		PhoneNumber: flexString(in.PhoneNumber),
		County:      flexString(in.County),
		CaseType:    flexString(in.CaseType),
		Description: flexString(in.Description),
		Date:        flexString(in.Date.Format(domain.DateLayout)),
		Status:      flexString(in.Status),
		CreatedAt:   flexString(formatTimestamp(in.CreatedAt)),
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

type profileDTO struct {
	DocumentID       string  `json:"_id,omitempty"`
	ID               string  `json:"id,omitempty"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	PhoneNumber      string  `json:"phoneNumber"`
	Age              flexInt `json:"age"`
	RegistrationDate string  `json:"registrationDate,omitempty"`
	Status           string  `json:"status,omitempty"`
}

func (d profileDTO) toDomain() domain.ProfileRecord {
	return domain.ProfileRecord{
		ID:               firstNonEmpty(d.DocumentID, d.ID),
		Name:             d.Name,
		Email:            d.Email,
		PhoneNumber:      d.PhoneNumber,
		Age:              int(d.Age),
		RegistrationDate: parseTimestamp(d.RegistrationDate),
		Status:           domain.ProfileStatus(d.Status),
	}
}

type createProfileRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	PhoneNumber      string `json:"phoneNumber"`
	Age              int    `json:"age"`
	Password         string `json:"password"`
	RegistrationDate string `json:"registrationDate"`
	Status           string `json:"status"`
}

func newProfileRequest(in domain.NewProfile) createProfileRequest {
	return createProfileRequest{
		Name:             in.Name,
		Email:            in.Email,
		PhoneNumber:      in.PhoneNumber,
		Age:              in.Age,
		Password:         in.Password,
		RegistrationDate: formatTimestamp(in.RegistrationDate),
		Status:           string(in.Status),
	}
}

type mediationDTO struct {
	DocumentID  string `json:"_id,omitempty"`
	ID          string `json:"id,omitempty"`
	County      string `json:"county"`
	Reason      string `json:"reason"`
	Date        string `json:"date"`
	PhoneNumber string `json:"phoneNumber"`
}

func (d mediationDTO) toDomain() domain.MediationRecord {
	return domain.MediationRecord{
		ID:          firstNonEmpty(d.DocumentID, d.ID),
		County:      d.County,
		Reason:      d.Reason,
		Date:        calendarDate(d.Date),
		PhoneNumber: d.PhoneNumber,
	}
}

// flexString accepts strings, numbers and booleans as their literal text.
// null, objects and arrays decode as "".
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0:
		*f = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case b[0] == '{' || b[0] == '[' || bytes.Equal(b, []byte("null")):
		*f = ""
	default:
		*f = flexString(b)
	}
	return nil
}

// flexInt accepts 42, "42" and null.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexInt(int(n))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// calendarDate reduces "2024-03-01T00:00:00.000Z" to "2024-03-01" and leaves
// anything else as sent.
func calendarDate(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(domain.DateLayout) {
		if _, err := time.Parse(domain.DateLayout, s[:len(domain.DateLayout)]); err == nil {
			return s[:len(domain.DateLayout)]
		}
	}
	return s
}

func parseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t
	}
	return time.Time{}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}
