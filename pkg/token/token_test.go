package token

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func newTestIssuer() (*Issuer, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	return &Issuer{Secret: "test-secret", Clock: clock}, clock
}

func TestIssueAndParse(t *testing.T) {
	issuer, _ := newTestIssuer()

	tests := []struct {
		name    string
		userID  uint
		role    string
		purpose Purpose
		ttl     time.Duration
	}{
		{"player session", 7, "player", PurposeSession, 7 * 24 * time.Hour},
		{"admin session", 3, "admin", PurposeSession, 12 * time.Hour},
		{"step-up", 7, "player", PurposeVerification, 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := issuer.Issue(tt.userID, tt.role, tt.purpose, tt.ttl)
			if err != nil {
				t.Fatalf("Issue: %v", err)
			}
			claims, err := issuer.Parse(s)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("UserID = %d, want %d", claims.UserID, tt.userID)
			}
			if claims.Role != tt.role {
				t.Errorf("Role = %q, want %q", claims.Role, tt.role)
			}
			if claims.Purpose != tt.purpose {
				t.Errorf("Purpose = %q, want %q", claims.Purpose, tt.purpose)
			}
		})
	}
}

func TestParseExpired(t *testing.T) {
	issuer, clock := newTestIssuer()

	s, err := issuer.Issue(1, "player", PurposeSession, 5*time.Minute)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	clock.Advance(6 * time.Minute)

	if _, err := issuer.Parse(s); !errors.Is(err, ErrExpired) {
		t.Errorf("Parse after expiry = %v, want ErrExpired", err)
	}
}

func TestParseWrongSecret(t *testing.T) {
	issuer, _ := newTestIssuer()
	s, err := issuer.Issue(1, "admin", PurposeSession, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other := &Issuer{Secret: "other-secret", Clock: issuer.Clock}
	if _, err := other.Parse(s); !errors.Is(err, ErrInvalid) {
		t.Errorf("Parse with wrong secret = %v, want ErrInvalid", err)
	}
}

func TestParseGarbage(t *testing.T) {
	issuer, _ := newTestIssuer()
	for _, s := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Parse(s); !errors.Is(err, ErrInvalid) {
			t.Errorf("Parse(%q) = %v, want ErrInvalid", s, err)
		}
	}
}
