package doubleexp

import (
	"testing"
	"time"
)

func TestStatusNoClaims(t *testing.T) {
	st := statusFrom(nil, time.Now())
	if !st.CanClaim || st.Active != nil || st.NextClaimAt != nil {
		t.Fatalf("fresh user status = %+v", st)
	}
}

func TestStatusActiveBoost(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	claim := &Claim{
		ClaimedAt:   now.Add(-30 * time.Minute),
		ExpiresAt:   now.Add(30 * time.Minute),
		NextClaimAt: now.Add(23*time.Hour + 30*time.Minute),
		IsActive:    true,
	}
	st := statusFrom(claim, now)
	if st.Active == nil {
		t.Fatal("boost inside its window should be active")
	}
	if st.CanClaim {
		t.Error("cannot claim again during cooldown")
	}
	if st.NextClaimAt == nil || !st.NextClaimAt.Equal(claim.NextClaimAt) {
		t.Errorf("NextClaimAt = %v, want %v", st.NextClaimAt, claim.NextClaimAt)
	}
}

func TestStatusExpiredBoostStillCoolingDown(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	claim := &Claim{
		ClaimedAt:   now.Add(-2 * time.Hour),
		ExpiresAt:   now.Add(-time.Hour),
		NextClaimAt: now.Add(22 * time.Hour),
		IsActive:    true,
	}
	st := statusFrom(claim, now)
	if st.Active != nil {
		t.Error("expired boost should not be active")
	}
	if st.CanClaim {
		t.Error("cooldown runs from claim time, not expiry")
	}
}

func TestStatusAfterCooldown(t *testing.T) {
	now := time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)
	claim := &Claim{
		ClaimedAt:   now.Add(-25 * time.Hour),
		ExpiresAt:   now.Add(-24 * time.Hour),
		NextClaimAt: now.Add(-time.Hour),
		IsActive:    false,
	}
	st := statusFrom(claim, now)
	if !st.CanClaim {
		t.Error("claim should unlock once next_claim_at passes")
	}
	if st.NextClaimAt != nil {
		t.Errorf("NextClaimAt = %v, want nil", st.NextClaimAt)
	}
}
