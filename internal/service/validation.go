package service

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/medlegalmatch/auth-service/internal/domain"
	apperrors "github.com/medlegalmatch/auth-service/pkg/util"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	minPasswordLen = 8
	minNameLen     = 2
	minBarNumLen   = 5
	minLicenseLen  = 5
	maxYears       = 70
)

// validateRegistration checks common fields and the fields of the declared
// role variant. All failures for one payload are collected into a single
// ValidationError with per-field messages; nothing is persisted before this
// passes.
func validateRegistration(in RegisterInput) error {
	fields := map[string]any{}

	if !emailPattern.MatchString(in.Email) {
		fields["email"] = "please enter a valid email address"
	}
	if msg := passwordMessage(in.Password); msg != "" {
		fields["password"] = msg
	}
	if len(strings.TrimSpace(in.FullName)) < minNameLen {
		fields["fullName"] = "name must be at least 2 characters"
	}
	if !in.AgreeToTerms {
		fields["agreeToTerms"] = "you must agree to the terms and conditions"
	}

	switch in.UserType {
	case domain.UserTypeAttorney:
		if len(strings.TrimSpace(in.FirmName)) < minNameLen {
			fields["firmName"] = "firm name must be at least 2 characters"
		}
		if len(in.BarNumber) < minBarNumLen {
			fields["barNumber"] = "bar number must be at least 5 characters"
		}
		if len(in.StatesOfPractice) == 0 {
			fields["statesOfPractice"] = "please select at least one state"
		}
		if in.FirmSize == "" {
			fields["firmSize"] = "please select firm size"
		}
	case domain.UserTypeProvider:
		if len(strings.TrimSpace(in.PracticeName)) < minNameLen {
			fields["practiceName"] = "practice name must be at least 2 characters"
		}
		if in.ProfessionalTitle == "" {
			fields["professionalTitle"] = "please select your professional title"
		}
		if len(in.LicenseNumber) < minLicenseLen {
			fields["licenseNumber"] = "license number must be at least 5 characters"
		}
		if len(in.StatesLicensed) == 0 {
			fields["statesLicensed"] = "please select at least one state"
		}
		if in.YearsExperience < 0 || in.YearsExperience > maxYears {
			fields["yearsExperience"] = "years must be between 0 and 70"
		}
		if strings.TrimSpace(in.Phone) == "" {
			fields["phone"] = "phone number is required for providers"
		}
	default:
		fields["userType"] = "user type must be attorney or provider"
	}

	if len(fields) > 0 {
		return apperrors.NewValidationError("registration payload invalid", fields)
	}
	return nil
}

func passwordMessage(password string) string {
	if len(password) < minPasswordLen {
		return "password must be at least 8 characters"
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		if unicode.IsUpper(r) {
			hasUpper = true
		}
		if unicode.IsDigit(r) {
			hasDigit = true
		}
	}
	if !hasUpper {
		return "password must contain at least one uppercase letter"
	}
	if !hasDigit {
		return "password must contain at least one number"
	}
	return ""
}
