package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"sherialink/internal/domain"
)

type ValidationSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationSuite))
}

func (s *ValidationSuite) validCase() CaseReportInput {
	return CaseReportInput{
		Name:        "Amina Wanjiru",
		PhoneNumber: "0712345678",
		County:      "Nairobi",
		CaseType:    "Land",
		Description: "Land Dispute",
		Date:        "2024-02-14",
	}
}

func (s *ValidationSuite) validRegistration() RegistrationInput {
	return RegistrationInput{
		Name:        "Otieno Ouma",
		Email:       "otieno@example.co.ke",
		PhoneNumber: "+254712345678",
		Age:         "34",
		Password:    "s3cret!",
	}
}

func (s *ValidationSuite) TestPhoneNumberPattern() {
	valid := []string{"+254712345678", "+254112345678", "0712345678", "0112345678", "0799999999"}
	for _, phone := range valid {
		s.Run("accepts "+phone, func() {
			in := s.validCase()
			in.PhoneNumber = phone
			_, errs := ValidateCaseReport(in)
			s.Nil(errs)
			s.True(ValidPhoneNumber(phone))
		})
	}

	invalid := []string{"12345", "+1234567890", "0812345678", "+2547123456789", "071234567", "254712345678", "07123456a8"}
	for _, phone := range invalid {
		s.Run("rejects "+phone, func() {
			in := s.validCase()
			in.PhoneNumber = phone
			_, errs := ValidateCaseReport(in)
			s.Require().Len(errs, 1)
			s.Equal(FieldPhoneNumber, errs[0].Field)

			reg := s.validRegistration()
			reg.PhoneNumber = phone
			_, errs = ValidateRegistration(reg)
			s.True(errs.Has(FieldPhoneNumber))
		})
	}
}

func (s *ValidationSuite) TestAgeBounds() {
	tests := []struct {
		age   string
		valid bool
	}{
		{"17", false},
		{"18", true},
		{"120", true},
		{"121", false},
		{"abc", false},
		{"18.5", false},
		{" 40 ", true},
	}
	for _, tt := range tests {
		s.Run(tt.age, func() {
			in := s.validRegistration()
			in.Age = tt.age
			got, errs := ValidateRegistration(in)
			if tt.valid {
				s.Nil(errs)
				s.GreaterOrEqual(got.Age(), domain.MinProfileAge)
				s.LessOrEqual(got.Age(), domain.MaxProfileAge)
				return
			}
			s.Equal([]string{FieldAge}, errs.Fields())
		})
	}
}

func (s *ValidationSuite) TestCaseReport() {
	s.Run("valid report is normalized", func() {
		in := s.validCase()
		in.Name = "  Amina Wanjiru "
		in.CaseType = "land"
		in.Description = "land dispute"

		got, errs := ValidateCaseReport(in)
		s.Require().Nil(errs)
		s.Equal("Amina Wanjiru", got.Name())
		s.Equal(domain.CaseTypeLand, got.CaseType())
		s.Equal(domain.CategoryLandDispute, got.Category())
		s.Equal(time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), got.Date())
	})

	s.Run("new case is always pending", func() {
		got, errs := ValidateCaseReport(s.validCase())
		s.Require().Nil(errs)
		createdAt := time.Date(2024, 2, 15, 8, 0, 0, 0, time.UTC)
		nc := got.NewCase(createdAt)
		s.Equal(domain.CaseStatusPending, nc.Status)
		s.Equal(createdAt, nc.CreatedAt)
		s.Equal("Nairobi", nc.County)
	})

	s.Run("whitespace-only fields are missing", func() {
		in := s.validCase()
		in.Name = "   "
		in.County = "\t"
		_, errs := ValidateCaseReport(in)
		s.Equal([]string{FieldName, FieldCounty}, errs.Fields())
		s.Equal("is required", errs[0].Reason)
	})

	s.Run("unknown case type and category", func() {
		in := s.validCase()
		in.CaseType = "Maritime"
		in.Description = "Noise"
		_, errs := ValidateCaseReport(in)
		s.Equal([]string{FieldCaseType, FieldDescription}, errs.Fields())
		s.Contains(errs[0].Reason, "Constitutional")
	})

	s.Run("invalid calendar date", func() {
		for _, date := range []string{"2024-02-30", "14/02/2024", "yesterday"} {
			in := s.validCase()
			in.Date = date
			_, errs := ValidateCaseReport(in)
			s.Equal([]string{FieldDate}, errs.Fields(), date)
		}
	})

	s.Run("collects every violation in field order", func() {
		_, errs := ValidateCaseReport(CaseReportInput{PhoneNumber: "12345", CaseType: "x"})
		s.Equal([]string{
			FieldName, FieldPhoneNumber, FieldCounty, FieldCaseType, FieldDescription, FieldDate,
		}, errs.Fields())
		s.Contains(errs.Error(), "phoneNumber: must be a valid Kenyan mobile number")
	})
}

func (s *ValidationSuite) TestRegistration() {
	s.Run("valid registration", func() {
		got, errs := ValidateRegistration(s.validRegistration())
		s.Require().Nil(errs)
		s.Equal("otieno@example.co.ke", got.Email())
		s.Equal(34, got.Age())
		s.Equal("s3cret!", got.Password())

		p := got.NewProfile("hash", time.Unix(0, 0).UTC())
		s.Equal(domain.ProfileStatusActive, p.Status)
		s.Equal("hash", p.Password)
	})

	s.Run("email shape", func() {
		for _, email := range []string{"plain", "a@b", "a b@c.d", "@c.d"} {
			in := s.validRegistration()
			in.Email = email
			_, errs := ValidateRegistration(in)
			s.Equal([]string{FieldEmail}, errs.Fields(), email)
		}
	})

	s.Run("password length", func() {
		in := s.validRegistration()
		in.Password = "12345"
		_, errs := ValidateRegistration(in)
		s.Equal([]string{FieldPassword}, errs.Fields())

		in.Password = "123456"
		_, errs = ValidateRegistration(in)
		s.Nil(errs)

		in.Password = "      "
		_, errs = ValidateRegistration(in)
		s.Equal("is required", errs[0].Reason)

		in.Password = strings.Repeat("a", MaxPasswordBytes+1)
		_, errs = ValidateRegistration(in)
		s.Equal([]string{FieldPassword}, errs.Fields())
	})

	s.Run("collects every violation", func() {
		_, errs := ValidateRegistration(RegistrationInput{Email: "nope", Age: "17", Password: "abc"})
		s.Equal([]string{FieldName, FieldEmail, FieldPhoneNumber, FieldAge, FieldPassword}, errs.Fields())
	})
}
