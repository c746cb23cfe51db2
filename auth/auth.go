package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kudetabet/portal/profile"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// User-facing failures carry the portal's Indonesian copy; callers surface
// them verbatim.
var (
	ErrInvalidCredentials = errors.New("Email/Username atau password salah!")
	ErrUsernameNotFound   = errors.New("Username tidak ditemukan")
	ErrEmailTaken         = errors.New("Email sudah terdaftar")
	ErrUsernameTaken      = errors.New("Username sudah terdaftar")
	ErrReferralInvalid    = errors.New("Kode referral tidak valid")
	ErrInactiveAccount    = errors.New("Akun tidak aktif")
	ErrResetTokenInvalid  = errors.New("Link reset password tidak valid atau kedaluwarsa")
)

// ProfileDirectory is the slice of the profile store the auth service reads.
type ProfileDirectory interface {
	Get(ctx context.Context, id string) (*profile.Profile, error)
	GetByEmail(ctx context.Context, email string) (*profile.Profile, error)
	EmailForUsername(ctx context.Context, username string) (string, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	ReferralCodeValid(ctx context.Context, code string) (bool, error)
	TouchLastSignIn(ctx context.Context, id string) error
}

const resetTokenTTL = time.Hour

// RegisterInput is the sign-up payload.
type RegisterInput struct {
	Email             string `json:"email"`
	Username          string `json:"username"`
	Password          string `json:"password"`
	Name              string `json:"name"`
	Phone             string `json:"phone"`
	Whatsapp          string `json:"whatsapp"`
	PaymentType       string `json:"payment_type"` // "bank" or "e-money"
	PaymentMethod     string `json:"payment_method"`
	BankAccountNumber string `json:"bank_account_number"`
	BankAccountName   string `json:"bank_account_name"`
	ReferralCode      string `json:"referral_code"`
}

// Service implements sign-up, login by email-or-username, logout and password
// resets over the profiles table.
type Service struct {
	db       *sql.DB
	profiles ProfileDirectory
	Sessions *SessionStore

	resetMu     sync.Mutex
	resetTokens map[string]resetToken
}

type resetToken struct {
	userID  string
	expires time.Time
}

func NewService(db *sql.DB, profiles ProfileDirectory, sessions *SessionStore) *Service {
	return &Service{
		db:          db,
		profiles:    profiles,
		Sessions:    sessions,
		resetTokens: make(map[string]resetToken),
	}
}

// Register creates the profile row with a bcrypt password hash and opens a
// session for the new user.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*profile.Profile, *Session, error) {
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.Username = strings.TrimSpace(in.Username)
	if in.Email == "" || !emailPattern.MatchString(in.Email) {
		return nil, nil, fmt.Errorf("invalid email")
	}
	if in.Username == "" || in.Password == "" {
		return nil, nil, fmt.Errorf("username and password are required")
	}

	if ok, err := s.profiles.EmailAvailable(ctx, in.Email); err != nil {
		return nil, nil, fmt.Errorf("check email: %w", err)
	} else if !ok {
		return nil, nil, ErrEmailTaken
	}
	if ok, err := s.profiles.UsernameAvailable(ctx, in.Username); err != nil {
		return nil, nil, fmt.Errorf("check username: %w", err)
	} else if !ok {
		return nil, nil, ErrUsernameTaken
	}
	if in.ReferralCode != "" {
		if ok, err := s.profiles.ReferralCodeValid(ctx, in.ReferralCode); err != nil {
			return nil, nil, fmt.Errorf("check referral: %w", err)
		} else if !ok {
			return nil, nil, ErrReferralInvalid
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (
			id, username, email, password_hash, full_name, phone, whatsapp,
			payment_type, payment_method, bank_account_number, bank_account_name,
			referral_code
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NULLIF($12, ''))`,
		id, in.Username, in.Email, string(hash), in.Name, in.Phone, in.Whatsapp,
		in.PaymentType, in.PaymentMethod, in.BankAccountNumber, in.BankAccountName,
		in.ReferralCode)
	if err != nil {
		return nil, nil, fmt.Errorf("insert profile: %w", err)
	}

	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load new profile: %w", err)
	}
	return p, s.Sessions.Create(id), nil
}

// Login accepts an email or a username. Usernames resolve to their email
// through the profiles table before the password check.
func (s *Service) Login(ctx context.Context, identifier, password string) (*profile.Profile, *Session, error) {
	identifier = strings.TrimSpace(identifier)
	email := identifier
	if !emailPattern.MatchString(identifier) {
		resolved, err := s.profiles.EmailForUsername(ctx, identifier)
		if errors.Is(err, profile.ErrNotFound) {
			return nil, nil, ErrUsernameNotFound
		}
		if err != nil {
			return nil, nil, fmt.Errorf("resolve username: %w", err)
		}
		email = resolved
	}

	var id, hash string
	var active bool
	err := s.db.QueryRowContext(ctx,
		`SELECT id::text, password_hash, is_active FROM profiles WHERE email = $1`,
		strings.ToLower(email)).Scan(&id, &hash, &active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load credentials: %w", err)
	}
	if !active {
		return nil, nil, ErrInactiveAccount
	}
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	// Best effort; the login itself already succeeded.
	_ = s.profiles.TouchLastSignIn(ctx, id)

	p, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("load profile: %w", err)
	}
	return p, s.Sessions.Create(id), nil
}

// Logout closes the session for the token.
func (s *Service) Logout(token string) {
	s.Sessions.Delete(token)
}

// RequestPasswordReset issues a one-hour reset token for the email's account.
// The caller mails the link; an unknown email still returns a token-shaped
// response upstream so the endpoint does not leak which emails exist.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	p, err := s.profiles.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, profile.ErrNotFound) {
		return "", profile.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup email: %w", err)
	}
	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	s.resetMu.Lock()
	s.resetTokens[token] = resetToken{userID: p.ID, expires: time.Now().Add(resetTokenTTL)}
	s.resetMu.Unlock()
	return token, nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	s.resetMu.Lock()
	rt, ok := s.resetTokens[token]
	if ok {
		delete(s.resetTokens, token)
	}
	s.resetMu.Unlock()
	if !ok || time.Now().After(rt.expires) {
		return ErrResetTokenInvalid
	}
	return s.setPassword(ctx, rt.userID, newPassword)
}

// UpdatePassword changes the password for an authenticated user.
func (s *Service) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	return s.setPassword(ctx, userID, newPassword)
}

func (s *Service) setPassword(ctx context.Context, userID, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`UPDATE profiles SET password_hash = $2, updated_at = now() WHERE id = $1`,
		userID, string(hash))
	if err != nil {
		return fmt.Errorf("store password: %w", err)
	}
	return nil
}
