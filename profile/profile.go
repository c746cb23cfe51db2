package profile

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Profile is one row of the profiles table. Balance is kept as a string to
// match the portal's numeric(20,2)::text presentation.
type Profile struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	FullName          string     `json:"full_name"`
	Phone             string     `json:"phone"`
	Whatsapp          string     `json:"whatsapp"`
	Balance           string     `json:"balance"`
	PaymentType       string     `json:"payment_type"`
	PaymentMethod     string     `json:"payment_method"`
	BankAccountNumber string     `json:"bank_account_number"`
	BankAccountName   string     `json:"bank_account_name"`
	ReferralCode      string     `json:"referral_code"`
	AvatarURL         string     `json:"avatar_url"`
	Role              string     `json:"role"`
	IsActive          bool       `json:"is_active"`
	BonusClaimed      bool       `json:"bonus_claimed"`
	LastSignInAt      *time.Time `json:"last_sign_in_at"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Update carries the mutable profile fields; nil pointers are left unchanged.
type Update struct {
	FullName          *string `json:"full_name"`
	Phone             *string `json:"phone"`
	Whatsapp          *string `json:"whatsapp"`
	PaymentType       *string `json:"payment_type"`
	PaymentMethod     *string `json:"payment_method"`
	BankAccountNumber *string `json:"bank_account_number"`
	BankAccountName   *string `json:"bank_account_name"`
	AvatarURL         *string `json:"avatar_url"`
}

var ErrNotFound = errors.New("profile not found")

// Store reads and writes profiles rows.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const profileColumns = `
	id::text, username, COALESCE(email, ''), COALESCE(full_name, ''),
	COALESCE(phone, ''), COALESCE(whatsapp, ''), balance,
	COALESCE(payment_type, ''), COALESCE(payment_method, ''),
	COALESCE(bank_account_number, ''), COALESCE(bank_account_name, ''),
	COALESCE(referral_code, ''), COALESCE(avatar_url, ''), role,
	is_active, bonus_claimed, last_sign_in_at, created_at, updated_at`

func scanProfile(row *sql.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(
		&p.ID, &p.Username, &p.Email, &p.FullName,
		&p.Phone, &p.Whatsapp, &p.Balance,
		&p.PaymentType, &p.PaymentMethod,
		&p.BankAccountNumber, &p.BankAccountName,
		&p.ReferralCode, &p.AvatarURL, &p.Role,
		&p.IsActive, &p.BonusClaimed, &p.LastSignInAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	return scanProfile(row)
}

func (s *Store) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE email = $1`, email)
	return scanProfile(row)
}

// EmailForUsername resolves a username to its login email, the lookup behind
// login-by-username.
func (s *Store) EmailForUsername(ctx context.Context, username string) (string, error) {
	var email sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT email FROM profiles WHERE username = $1 LIMIT 1`, username).Scan(&email)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if !email.Valid || email.String == "" {
		return "", ErrNotFound
	}
	return email.String, nil
}

func (s *Store) Update(ctx context.Context, id string, u Update) (*Profile, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE profiles SET
			full_name = COALESCE($2, full_name),
			phone = COALESCE($3, phone),
			whatsapp = COALESCE($4, whatsapp),
			payment_type = COALESCE($5, payment_type),
			payment_method = COALESCE($6, payment_method),
			bank_account_number = COALESCE($7, bank_account_number),
			bank_account_name = COALESCE($8, bank_account_name),
			avatar_url = COALESCE($9, avatar_url),
			updated_at = now()
		WHERE id = $1
		RETURNING `+profileColumns,
		id, u.FullName, u.Phone, u.Whatsapp, u.PaymentType, u.PaymentMethod,
		u.BankAccountNumber, u.BankAccountName, u.AvatarURL)
	return scanProfile(row)
}

func (s *Store) TouchLastSignIn(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET last_sign_in_at = now() WHERE id = $1`, id)
	return err
}

// UsernameAvailable reports whether no profile holds the username yet.
func (s *Store) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *Store) EmailAvailable(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// ReferralCodeValid reports whether some profile owns the code.
func (s *Store) ReferralCodeValid(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM profiles WHERE referral_code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
