package dto

import (
	"time"

	"github.com/medlegalmatch/auth-service/internal/domain"
	"github.com/medlegalmatch/auth-service/internal/service"
)

// RegisterRequest is the wire payload for POST /api/auth/register. Field
// names match the signup form on the client.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"fullName"`
	Phone        string `json:"phone,omitempty"`
	UserType     string `json:"userType"`
	AgreeToTerms bool   `json:"agreeToTerms"`

	// attorney fields
	FirmName         string   `json:"firmName,omitempty"`
	BarNumber        string   `json:"barNumber,omitempty"`
	StatesOfPractice []string `json:"statesOfPractice,omitempty"`
	FirmSize         string   `json:"firmSize,omitempty"`

	// provider fields
	PracticeName      string   `json:"practiceName,omitempty"`
	ProfessionalTitle string   `json:"professionalTitle,omitempty"`
	LicenseNumber     string   `json:"licenseNumber,omitempty"`
	StatesLicensed    []string `json:"statesLicensed,omitempty"`
	YearsExperience   int      `json:"yearsExperience,omitempty"`

	PricingPlan string `json:"pricingPlan,omitempty"`
}

// ToInput maps the request onto the service input.
func (r RegisterRequest) ToInput() service.RegisterInput {
	return service.RegisterInput{
		Email:             r.Email,
		Password:          r.Password,
		FullName:          r.FullName,
		Phone:             r.Phone,
		UserType:          domain.UserType(r.UserType),
		AgreeToTerms:      r.AgreeToTerms,
		FirmName:          r.FirmName,
		BarNumber:         r.BarNumber,
		StatesOfPractice:  r.StatesOfPractice,
		FirmSize:          r.FirmSize,
		PracticeName:      r.PracticeName,
		ProfessionalTitle: r.ProfessionalTitle,
		LicenseNumber:     r.LicenseNumber,
		StatesLicensed:    r.StatesLicensed,
		YearsExperience:   r.YearsExperience,
		PricingPlan:       r.PricingPlan,
	}
}

// LoginRequest is the wire payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the sanitized account representation. It never carries the
// password hash, and the state lists are real JSON arrays.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	UserType string `json:"userType"`
	Phone    string `json:"phone,omitempty"`

	FirmName         string   `json:"firmName,omitempty"`
	BarNumber        string   `json:"barNumber,omitempty"`
	StatesOfPractice []string `json:"statesOfPractice,omitempty"`
	FirmSize         string   `json:"firmSize,omitempty"`

	PracticeName      string   `json:"practiceName,omitempty"`
	ProfessionalTitle string   `json:"professionalTitle,omitempty"`
	LicenseNumber     string   `json:"licenseNumber,omitempty"`
	StatesLicensed    []string `json:"statesLicensed,omitempty"`
	YearsExperience   *int     `json:"yearsExperience,omitempty"`

	PricingPlan string    `json:"pricingPlan,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewUserResponse strips the secret and flattens the role union for the wire.
func NewUserResponse(account *domain.Account) UserResponse {
	resp := UserResponse{
		ID:          account.ID,
		Email:       account.Email,
		Name:        account.FullName,
		UserType:    string(account.UserType),
		Phone:       account.Phone,
		PricingPlan: account.PricingPlan,
		CreatedAt:   account.CreatedAt,
	}
	if a := account.Attorney; a != nil {
		resp.FirmName = a.FirmName
		resp.BarNumber = a.BarNumber
		resp.StatesOfPractice = a.StatesOfPractice
		resp.FirmSize = a.FirmSize
	}
	if p := account.Provider; p != nil {
		resp.PracticeName = p.PracticeName
		resp.ProfessionalTitle = p.ProfessionalTitle
		resp.LicenseNumber = p.LicenseNumber
		resp.StatesLicensed = p.StatesLicensed
		years := p.YearsExperience
		resp.YearsExperience = &years
	}
	return resp
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// MeResponse is returned by the whoami endpoint.
type MeResponse struct {
	User UserResponse `json:"user"`
}
