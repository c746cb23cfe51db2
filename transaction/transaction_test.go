package transaction

import (
	"regexp"
	"testing"
	"time"
)

func TestNewReferenceFormat(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	dep := NewReference(TypeDeposit, now)
	if !regexp.MustCompile(`^DEP20250314092653-\d{4}$`).MatchString(dep) {
		t.Fatalf("deposit reference = %q", dep)
	}

	wd := NewReference(TypeWithdraw, now)
	if !regexp.MustCompile(`^WD20250314092653-\d{4}$`).MatchString(wd) {
		t.Fatalf("withdraw reference = %q", wd)
	}
}

func TestNewReferenceUsesUTC(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	now := time.Date(2025, 3, 14, 7, 0, 0, 0, loc)

	ref := NewReference(TypeDeposit, now)
	if got, want := ref[3:17], "20250314000000"; got != want {
		t.Fatalf("timestamp = %q, want %q", got, want)
	}
}

func TestBalanceDelta(t *testing.T) {
	if got := balanceDelta(TypeDeposit, 250000); got != 250000 {
		t.Errorf("deposit delta = %v, want 250000", got)
	}
	if got := balanceDelta(TypeWithdraw, 100000); got != -100000 {
		t.Errorf("withdraw delta = %v, want -100000", got)
	}
}

func TestSecureIntnBounds(t *testing.T) {
	for i := 0; i < 200; i++ {
		n := secureIntn(10000)
		if n < 0 || n >= 10000 {
			t.Fatalf("secureIntn out of range: %d", n)
		}
	}
	if secureIntn(0) != 0 {
		t.Fatal("secureIntn(0) should be 0")
	}
}
