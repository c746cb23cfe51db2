package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kudetabet/portal/profile"
)

// fakeDirectory stands in for the profile store; only the lookup and
// availability paths the validations reach are scripted.
type fakeDirectory struct {
	emailTaken    bool
	usernameTaken bool
	referrals     map[string]bool
}

func (f *fakeDirectory) Get(ctx context.Context, id string) (*profile.Profile, error) {
	return nil, profile.ErrNotFound
}

func (f *fakeDirectory) GetByEmail(ctx context.Context, email string) (*profile.Profile, error) {
	return nil, profile.ErrNotFound
}

func (f *fakeDirectory) EmailForUsername(ctx context.Context, username string) (string, error) {
	return "", profile.ErrNotFound
}

func (f *fakeDirectory) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	return !f.usernameTaken, nil
}

func (f *fakeDirectory) EmailAvailable(ctx context.Context, email string) (bool, error) {
	return !f.emailTaken, nil
}

func (f *fakeDirectory) ReferralCodeValid(ctx context.Context, code string) (bool, error) {
	return f.referrals[code], nil
}

func (f *fakeDirectory) TouchLastSignIn(ctx context.Context, id string) error {
	return nil
}

func testService(dir *fakeDirectory) *Service {
	return NewService(nil, dir, NewSessionStore(5*time.Minute, time.Minute))
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:    "budi@example.com",
		Username: "budi88",
		Password: "rahasia-123",
	}
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	s := testService(&fakeDirectory{})
	in := registerInput()
	in.Email = "not-an-email"
	if _, _, err := s.Register(context.Background(), in); err == nil {
		t.Fatal("expected error for malformed email")
	}
}

func TestRegisterRejectsTakenEmail(t *testing.T) {
	s := testService(&fakeDirectory{emailTaken: true})
	_, _, err := s.Register(context.Background(), registerInput())
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	s := testService(&fakeDirectory{usernameTaken: true})
	_, _, err := s.Register(context.Background(), registerInput())
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("err = %v, want ErrUsernameTaken", err)
	}
}

func TestRegisterRejectsInvalidReferral(t *testing.T) {
	s := testService(&fakeDirectory{referrals: map[string]bool{"REF-OK": true}})
	in := registerInput()
	in.ReferralCode = "REF-NOPE"
	_, _, err := s.Register(context.Background(), in)
	if !errors.Is(err, ErrReferralInvalid) {
		t.Fatalf("err = %v, want ErrReferralInvalid", err)
	}
}

func TestLoginUnknownUsername(t *testing.T) {
	s := testService(&fakeDirectory{})
	_, _, err := s.Login(context.Background(), "no-such-user", "whatever")
	if !errors.Is(err, ErrUsernameNotFound) {
		t.Fatalf("err = %v, want ErrUsernameNotFound", err)
	}
}
