package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/medlegalmatch/auth-service/internal/auth"
	"github.com/medlegalmatch/auth-service/internal/config"
	"github.com/medlegalmatch/auth-service/internal/domain"
	"github.com/medlegalmatch/auth-service/internal/events"
	"github.com/medlegalmatch/auth-service/internal/repository"
	apperrors "github.com/medlegalmatch/auth-service/pkg/util"
)

// RegisterInput is the full role-specific registration payload.
type RegisterInput struct {
	Email        string
	Password     string
	FullName     string
	Phone        string
	UserType     domain.UserType
	AgreeToTerms bool

	// attorney variant
	FirmName         string
	BarNumber        string
	StatesOfPractice []string
	FirmSize         string

	// provider variant
	PracticeName      string
	ProfessionalTitle string
	LicenseNumber     string
	StatesLicensed    []string
	YearsExperience   int

	PricingPlan string
}

// AuthService coordinates registration, login and identity lookup.
type AuthService struct {
	accounts   repository.AccountRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, accounts repository.AccountRepository, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		accounts:   accounts,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher: dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register validates the payload, persists the new account with a hashed
// password, and issues a session token. Exactly one row is written on
// success; no side effect happens on any failure path.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.Account, string, time.Time, error) {
	if err := validateRegistration(in); err != nil {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	account := &domain.Account{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		UserType:     in.UserType,
		Phone:        in.Phone,
		PricingPlan:  in.PricingPlan,
	}
	switch in.UserType {
	case domain.UserTypeAttorney:
		account.Attorney = &domain.AttorneyProfile{
			FirmName:         in.FirmName,
			BarNumber:        in.BarNumber,
			StatesOfPractice: in.StatesOfPractice,
			FirmSize:         in.FirmSize,
		}
	case domain.UserTypeProvider:
		account.Provider = &domain.ProviderProfile{
			PracticeName:      in.PracticeName,
			ProfessionalTitle: in.ProfessionalTitle,
			LicenseNumber:     in.LicenseNumber,
			StatesLicensed:    in.StatesLicensed,
			YearsExperience:   in.YearsExperience,
		}
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", time.Time{}, apperrors.NewDuplicateEmail()
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.Issue(account.ID, account.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.NewAccountRegistered(events.AccountRegisteredPayload{
			AccountID: account.ID,
			Email:     account.Email,
			FullName:  account.FullName,
			UserType:  string(account.UserType),
		}))
	}

	return account, token, exp, nil
}

// Login authenticates email+password and issues a session token. Unknown
// email and wrong password both come back as the same invalid-credentials
// error. No side effects on any path.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Account, string, time.Time, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if !auth.ComparePassword(account.PasswordHash, password) {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.Issue(account.ID, account.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return account, token, exp, nil
}

// WhoAmI loads the account behind a verified token.
func (s *AuthService) WhoAmI(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("account not found")
		}
		return nil, err
	}
	return account, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
