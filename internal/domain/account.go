package domain

import "time"

// UserType discriminates the two account variants.
type UserType string

const (
	UserTypeAttorney UserType = "attorney"
	UserTypeProvider UserType = "provider"
)

// AttorneyProfile holds the attorney-specific fields.
type AttorneyProfile struct {
	FirmName         string
	BarNumber        string
	StatesOfPractice []string
	FirmSize         string
}

// ProviderProfile holds the medical-provider-specific fields.
type ProviderProfile struct {
	PracticeName      string
	ProfessionalTitle string
	LicenseNumber     string
	StatesLicensed    []string
	YearsExperience   int
}

// Account is the sole persistent entity: one registered attorney or provider.
// Exactly one of Attorney/Provider is non-nil, matching UserType; the tag is
// set at creation and never changes. PasswordHash never leaves the server.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	UserType     UserType
	Phone        string
	Attorney     *AttorneyProfile
	Provider     *ProviderProfile
	PricingPlan  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
