package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medlegalmatch/auth-service/internal/domain"
	apperrors "github.com/medlegalmatch/auth-service/pkg/util"
)

func fieldMessages(t *testing.T, err error) map[string]any {
	t.Helper()
	require.Error(t, err)
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	require.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	return domainErr.Details
}

func TestValidateRegistrationPasswordRules(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"too short", "Ab1", "password must be at least 8 characters"},
		{"no uppercase", "passw0rdpass", "password must contain at least one uppercase letter"},
		{"no digit", "Passwordpass", "password must contain at least one number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := attorneyInput()
			in.Password = tt.password
			fields := fieldMessages(t, validateRegistration(in))
			assert.Equal(t, tt.wantMsg, fields["password"])
		})
	}
}

func TestValidateRegistrationCommonFields(t *testing.T) {
	in := attorneyInput()
	in.Email = "not-an-email"
	in.FullName = "x"
	in.AgreeToTerms = false

	fields := fieldMessages(t, validateRegistration(in))
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "fullName")
	assert.Contains(t, fields, "agreeToTerms")
}

func TestValidateRegistrationAttorneyFields(t *testing.T) {
	in := attorneyInput()
	in.FirmName = "F"
	in.BarNumber = "123"
	in.StatesOfPractice = nil
	in.FirmSize = ""

	fields := fieldMessages(t, validateRegistration(in))
	assert.Contains(t, fields, "firmName")
	assert.Contains(t, fields, "barNumber")
	assert.Contains(t, fields, "statesOfPractice")
	assert.Contains(t, fields, "firmSize")
}

func TestValidateRegistrationProviderFields(t *testing.T) {
	in := providerInput()
	in.PracticeName = "C"
	in.ProfessionalTitle = ""
	in.LicenseNumber = "12"
	in.StatesLicensed = nil
	in.YearsExperience = 71
	in.Phone = ""

	fields := fieldMessages(t, validateRegistration(in))
	assert.Contains(t, fields, "practiceName")
	assert.Contains(t, fields, "professionalTitle")
	assert.Contains(t, fields, "licenseNumber")
	assert.Contains(t, fields, "statesLicensed")
	assert.Contains(t, fields, "yearsExperience")
	assert.Contains(t, fields, "phone")
}

func TestValidateRegistrationUnknownRole(t *testing.T) {
	in := attorneyInput()
	in.UserType = domain.UserType("paralegal")

	fields := fieldMessages(t, validateRegistration(in))
	assert.Contains(t, fields, "userType")
}

func TestValidateRegistrationAcceptsBothVariants(t *testing.T) {
	assert.NoError(t, validateRegistration(attorneyInput()))
	assert.NoError(t, validateRegistration(providerInput()))
}
