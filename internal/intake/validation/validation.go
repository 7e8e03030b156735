// Package validation checks raw submissions and produces the only values the
// intake pipeline accepts: ValidCaseInput and ValidRegistrationInput.
//
// Every rule is evaluated and all failures are returned together, one per
// field, in form order, so a client can highlight every bad field at once.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"sherialink/internal/domain"
)

// Field names as they appear in requests and error reports.
const (
	FieldName        = "name"
	FieldPhoneNumber = "phoneNumber"
	FieldCounty      = "county"
	FieldCaseType    = "caseType"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldEmail       = "email"
	FieldAge         = "age"
	FieldPassword    = "password"
)

// Credential length bounds, checked before hashing. The upper bound is what
// bcrypt can hash.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

var (
	phonePattern = regexp.MustCompile(`^(\+254|0)[17]\d{8}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidPhoneNumber reports whether s is a Kenyan mobile number.
func ValidPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// CaseReportInput holds raw case report fields as submitted.
type CaseReportInput struct {
	Name        string
	PhoneNumber string
	County      string
	CaseType    string
	Description string
	Date        string
}

// RegistrationInput holds raw registration fields as submitted. Age is kept
// as text so that non-numeric input is reported as a field error.
type RegistrationInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Age         string
	Password    string
}

// ValidCaseInput is a verified case report. It can only be obtained from
// ValidateCaseReport.
type ValidCaseInput struct {
	name        string
	phoneNumber string
	county      string
	caseType    domain.CaseType
	category    domain.ReportingCategory
	date        time.Time
}

func (v ValidCaseInput) Name() string                       { return v.name }
func (v ValidCaseInput) PhoneNumber() string                { return v.phoneNumber }
func (v ValidCaseInput) County() string                     { return v.county }
func (v ValidCaseInput) CaseType() domain.CaseType          { return v.caseType }
func (v ValidCaseInput) Category() domain.ReportingCategory { return v.category }
func (v ValidCaseInput) Date() time.Time                    { return v.date }

// NewCase builds the record store payload. Status is always Pending.
func (v ValidCaseInput) NewCase(createdAt time.Time) domain.NewCase {
	return domain.NewCase{
		Name:        v.name,
		PhoneNumber: v.phoneNumber,
		County:      v.county,
		CaseType:    v.caseType,
		Description: v.category,
		Date:        v.date,
		Status:      domain.CaseStatusPending,
		CreatedAt:   createdAt,
	}
}

// ValidRegistrationInput is a verified registration. It can only be obtained
// from ValidateRegistration. The password is still plain text.
type ValidRegistrationInput struct {
	name        string
	email       string
	phoneNumber string
	age         int
	password    string
}

func (v ValidRegistrationInput) Name() string        { return v.name }
func (v ValidRegistrationInput) Email() string       { return v.email }
func (v ValidRegistrationInput) PhoneNumber() string { return v.phoneNumber }
func (v ValidRegistrationInput) Age() int            { return v.age }
func (v ValidRegistrationInput) Password() string    { return v.password }

// NewProfile builds the record store payload. credential is the password in
// the form the store expects, plain or hashed.
func (v ValidRegistrationInput) NewProfile(credential string, registeredAt time.Time) domain.NewProfile {
	return domain.NewProfile{
		Name:             v.name,
		Email:            v.email,
		PhoneNumber:      v.phoneNumber,
		Age:              v.age,
		Password:         credential,
		RegistrationDate: registeredAt,
		Status:           domain.ProfileStatusActive,
	}
}

// ValidateCaseReport checks a case report. The returned FieldErrors is nil
// when the input is valid.
func ValidateCaseReport(in CaseReportInput) (ValidCaseInput, FieldErrors) {
	var errs FieldErrors
	out := ValidCaseInput{
		name:        strings.TrimSpace(in.Name),
		phoneNumber: strings.TrimSpace(in.PhoneNumber),
		county:      strings.TrimSpace(in.County),
	}

	if out.name == "" {
		errs.add(FieldName, reasonRequired)
	}
	errs.checkPhone(out.phoneNumber)
	if out.county == "" {
		errs.add(FieldCounty, reasonRequired)
	}

	switch raw := strings.TrimSpace(in.CaseType); {
	case raw == "":
		errs.add(FieldCaseType, reasonRequired)
	default:
		ct, ok := domain.ParseCaseType(raw)
		if !ok {
			errs.add(FieldCaseType, "must be one of "+joinValues(domain.CaseTypes))
		}
		out.caseType = ct
	}

	switch raw := strings.TrimSpace(in.Description); {
	case raw == "":
		errs.add(FieldDescription, reasonRequired)
	default:
		c, ok := domain.ParseReportingCategory(raw)
		if !ok {
			errs.add(FieldDescription, "must be one of "+joinValues(domain.ReportingCategories))
		}
		out.category = c
	}

	switch raw := strings.TrimSpace(in.Date); {
	case raw == "":
		errs.add(FieldDate, reasonRequired)
	default:
		d, err := time.Parse(domain.DateLayout, raw)
		if err != nil {
			errs.add(FieldDate, "must be a valid date in YYYY-MM-DD format")
		}
		out.date = d
	}

	if len(errs) > 0 {
		return ValidCaseInput{}, errs
	}
	return out, nil
}

// ValidateRegistration checks a registration. The returned FieldErrors is nil
// when the input is valid.
func ValidateRegistration(in RegistrationInput) (ValidRegistrationInput, FieldErrors) {
	var errs FieldErrors
	out := ValidRegistrationInput{
		name:        strings.TrimSpace(in.Name),
		email:       strings.TrimSpace(in.Email),
		phoneNumber: strings.TrimSpace(in.PhoneNumber),
		password:    in.Password,
	}

	if out.name == "" {
		errs.add(FieldName, reasonRequired)
	}

	switch {
	case out.email == "":
		errs.add(FieldEmail, reasonRequired)
	case !emailPattern.MatchString(out.email):
		errs.add(FieldEmail, "must be a valid email address")
	}

	errs.checkPhone(out.phoneNumber)

	switch raw := strings.TrimSpace(in.Age); {
	case raw == "":
		errs.add(FieldAge, reasonRequired)
	default:
		age, err := strconv.Atoi(raw)
		if err != nil || age < domain.MinProfileAge || age > domain.MaxProfileAge {
			errs.add(FieldAge, "must be a whole number between 18 and 120")
		}
		out.age = age
	}

	// Whitespace is significant in a credential, but a blank one is missing.
	switch {
	case strings.TrimSpace(in.Password) == "":
		errs.add(FieldPassword, reasonRequired)
	case len([]rune(in.Password)) < MinPasswordLength:
		errs.add(FieldPassword, "must be at least 6 characters")
	case len(in.Password) > MaxPasswordBytes:
		errs.add(FieldPassword, "must be at most 72 bytes")
	}

	if len(errs) > 0 {
		return ValidRegistrationInput{}, errs
	}
	return out, nil
}

const reasonRequired = "is required"

func (e *FieldErrors) checkPhone(phone string) {
	switch {
	case phone == "":
		e.add(FieldPhoneNumber, reasonRequired)
	case !ValidPhoneNumber(phone):
		e.add(FieldPhoneNumber, "must be a valid Kenyan mobile number (+254... or 07.../01...)")
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
