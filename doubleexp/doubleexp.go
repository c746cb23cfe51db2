package doubleexp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ActiveWindow is how long a claimed boost stays active. Cooldown is how
// long the user waits between claims, measured from the moment of claiming.
const (
	ActiveWindow = time.Hour
	Cooldown     = 24 * time.Hour
)

// ErrCooldown carries the user-facing message shown when claiming too soon.
var ErrCooldown = errors.New("Anda harus menunggu 24 jam sebelum claim lagi")

// Claim is one row of the double_exp_claims table.
type Claim struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ClaimedAt   time.Time `json:"claimed_at"`
	ExpiresAt   time.Time `json:"expires_at"`
	NextClaimAt time.Time `json:"next_claim_at"`
	IsActive    bool      `json:"is_active"`
}

// Status is what the portal shows on the double-EXP widget.
type Status struct {
	Active      *Claim     `json:"active"`
	CanClaim    bool       `json:"can_claim"`
	NextClaimAt *time.Time `json:"next_claim_at"`
}

// Store reads and writes double_exp_claims rows.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

const claimColumns = `id::text, user_id::text, claimed_at, expires_at, next_claim_at, is_active`

func scanClaim(sc interface{ Scan(...any) error }) (*Claim, error) {
	var c Claim
	err := sc.Scan(&c.ID, &c.UserID, &c.ClaimedAt, &c.ExpiresAt, &c.NextClaimAt, &c.IsActive)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Active returns the user's current boost if one is active and not yet
// expired, or nil.
func (s *Store) Active(ctx context.Context, userID string) (*Claim, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+claimColumns+` FROM double_exp_claims
		WHERE user_id = $1 AND is_active AND expires_at > $2
		ORDER BY claimed_at DESC LIMIT 1`, userID, s.now())
	c, err := scanClaim(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("active claim: %w", err)
	}
	return c, nil
}

// latest returns the user's most recent claim regardless of state, or nil.
func (s *Store) latest(ctx context.Context, userID string) (*Claim, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+claimColumns+` FROM double_exp_claims
		WHERE user_id = $1
		ORDER BY claimed_at DESC LIMIT 1`, userID)
	c, err := scanClaim(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest claim: %w", err)
	}
	return c, nil
}

// Status reports the current boost, whether a new claim is allowed, and when
// the next claim unlocks.
func (s *Store) Status(ctx context.Context, userID string) (*Status, error) {
	last, err := s.latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	return statusFrom(last, s.now()), nil
}

// statusFrom derives the widget state from the most recent claim.
func statusFrom(last *Claim, now time.Time) *Status {
	st := &Status{CanClaim: true}
	if last == nil {
		return st
	}
	if last.IsActive && last.ExpiresAt.After(now) {
		st.Active = last
	}
	if last.NextClaimAt.After(now) {
		st.CanClaim = false
		next := last.NextClaimAt
		st.NextClaimAt = &next
	}
	return st
}

// Claim activates a one-hour double-EXP boost. A second claim inside the
// 24 hour cooldown fails with ErrCooldown.
func (s *Store) Claim(ctx context.Context, userID string) (*Claim, error) {
	last, err := s.latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if last != nil && last.NextClaimAt.After(now) {
		return nil, ErrCooldown
	}
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO double_exp_claims (user_id, claimed_at, expires_at, next_claim_at, is_active)
		VALUES ($1, $2, $3, $4, true)
		RETURNING `+claimColumns,
		userID, now, now.Add(ActiveWindow), now.Add(Cooldown))
	c, err := scanClaim(row)
	if err != nil {
		return nil, fmt.Errorf("insert claim: %w", err)
	}
	return c, nil
}

// DeactivateExpired flips is_active off for boosts past their window.
// Meant to run from a sweeper; claims stay readable for cooldown checks.
func (s *Store) DeactivateExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE double_exp_claims SET is_active = false
		WHERE is_active AND expires_at <= $1`, s.now())
	if err != nil {
		return 0, fmt.Errorf("deactivate expired: %w", err)
	}
	return res.RowsAffected()
}
