package repository

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/medlegalmatch/auth-service/internal/domain"
)

// ErrDuplicateEmail reports a violation of the email uniqueness invariant.
// The unique index on accounts.email is the source of truth; a concurrent
// registration race is decided by the database, not by a pre-check.
var ErrDuplicateEmail = errors.New("email already registered")

// AccountRepository defines persistence access for accounts. Lookups return
// pgx.ErrNoRows when no account matches. No update or delete paths exist.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type accountRepository struct {
	db DB
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(db DB) AccountRepository {
	return &accountRepository{db: db}
}

// NormalizeEmail lowercase-folds and trims an email so that addresses
// differing only in case collide on the unique index.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

const accountColumns = `
        id, email, password_hash, full_name, user_type, phone,
        firm_name, bar_number, states_of_practice, firm_size,
        practice_name, professional_title, license_number, states_licensed, years_experience,
        pricing_plan, created_at, updated_at`

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (
            id, email, password_hash, full_name, user_type, phone,
            firm_name, bar_number, states_of_practice, firm_size,
            practice_name, professional_title, license_number, states_licensed, years_experience,
            pricing_plan
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
        RETURNING created_at, updated_at`

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.Email = NormalizeEmail(account.Email)

	row := flattenAccount(account)
	err := r.db.QueryRow(ctx, query,
		account.ID,
		account.Email,
		account.PasswordHash,
		account.FullName,
		account.UserType,
		nullableText(account.Phone),
		row.firmName,
		row.barNumber,
		row.statesOfPractice,
		row.firmSize,
		row.practiceName,
		row.professionalTitle,
		row.licenseNumber,
		row.statesLicensed,
		row.yearsExperience,
		nullableText(account.PricingPlan),
	).Scan(&account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `SELECT` + accountColumns + ` FROM accounts WHERE id=$1`
	return r.scanAccount(r.db.QueryRow(ctx, query, id))
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `SELECT` + accountColumns + ` FROM accounts WHERE email=$1`
	return r.scanAccount(r.db.QueryRow(ctx, query, NormalizeEmail(email)))
}

// flatRow is the wide storage shape. Only this file knows the tagged union is
// flattened into nullable columns, with state lists stored as JSON text.
type flatRow struct {
	firmName          *string
	barNumber         *string
	statesOfPractice  *string
	firmSize          *string
	practiceName      *string
	professionalTitle *string
	licenseNumber     *string
	statesLicensed    *string
	yearsExperience   *int
}

func flattenAccount(account *domain.Account) flatRow {
	var row flatRow
	if a := account.Attorney; a != nil {
		row.firmName = &a.FirmName
		row.barNumber = &a.BarNumber
		row.statesOfPractice = encodeStates(a.StatesOfPractice)
		row.firmSize = &a.FirmSize
	}
	if p := account.Provider; p != nil {
		row.practiceName = &p.PracticeName
		row.professionalTitle = &p.ProfessionalTitle
		row.licenseNumber = &p.LicenseNumber
		row.statesLicensed = encodeStates(p.StatesLicensed)
		row.yearsExperience = &p.YearsExperience
	}
	return row
}

func (r *accountRepository) scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		account domain.Account
		phone   *string
		plan    *string
		flat    flatRow
	)
	if err := row.Scan(
		&account.ID,
		&account.Email,
		&account.PasswordHash,
		&account.FullName,
		&account.UserType,
		&phone,
		&flat.firmName,
		&flat.barNumber,
		&flat.statesOfPractice,
		&flat.firmSize,
		&flat.practiceName,
		&flat.professionalTitle,
		&flat.licenseNumber,
		&flat.statesLicensed,
		&flat.yearsExperience,
		&plan,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}

	account.Phone = textValue(phone)
	account.PricingPlan = textValue(plan)

	switch account.UserType {
	case domain.UserTypeAttorney:
		account.Attorney = &domain.AttorneyProfile{
			FirmName:         textValue(flat.firmName),
			BarNumber:        textValue(flat.barNumber),
			StatesOfPractice: decodeStates(flat.statesOfPractice),
			FirmSize:         textValue(flat.firmSize),
		}
	case domain.UserTypeProvider:
		years := 0
		if flat.yearsExperience != nil {
			years = *flat.yearsExperience
		}
		account.Provider = &domain.ProviderProfile{
			PracticeName:      textValue(flat.practiceName),
			ProfessionalTitle: textValue(flat.professionalTitle),
			LicenseNumber:     textValue(flat.licenseNumber),
			StatesLicensed:    decodeStates(flat.statesLicensed),
			YearsExperience:   years,
		}
	}
	return &account, nil
}

func encodeStates(states []string) *string {
	if len(states) == 0 {
		return nil
	}
	encoded, err := json.Marshal(states)
	if err != nil {
		return nil
	}
	s := string(encoded)
	return &s
}

func decodeStates(encoded *string) []string {
	if encoded == nil || *encoded == "" {
		return nil
	}
	var states []string
	if err := json.Unmarshal([]byte(*encoded), &states); err != nil {
		return nil
	}
	return states
}

func nullableText(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func textValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
