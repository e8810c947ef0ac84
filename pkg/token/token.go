package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

// Purpose separates the credential domains carried by a token. A session
// token proves identity; a verification token proves a recent step-up
// challenge and is only accepted by sensitive profile mutations.
type Purpose string

const (
	PurposeSession      Purpose = "session"
	PurposeVerification Purpose = "verification"
)

var (
	ErrExpired = errors.New("token has expired")
	ErrInvalid = errors.New("token is invalid")
)

// Claims is the JWT payload for every token this service issues.
type Claims struct {
	UserID  uint    `json:"user_id"`
	Role    string  `json:"role"`
	Purpose Purpose `json:"purpose"`
	jwt.RegisteredClaims
}

// Issuer signs and validates tokens with a single HS256 secret. The
// clock is injected so expiry can be exercised in tests.
type Issuer struct {
	Secret string
	Clock  clockwork.Clock
}

func NewIssuer(secret string) *Issuer {
	return &Issuer{Secret: secret, Clock: clockwork.NewRealClock()}
}

// Issue signs a token for the given subject. The caller chooses the TTL:
// 7 days for player sessions, 12 hours for admin sessions, 5 minutes for
// step-up verification tokens.
func (i *Issuer) Issue(userID uint, role string, purpose Purpose, ttl time.Duration) (string, error) {
	now := i.Clock.Now()
	claims := &Claims{
		UserID:  userID,
		Role:    role,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "merasports-hub",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(i.Secret))
}

// Parse validates a token string and returns its claims. Expired tokens
// fail with ErrExpired so callers can prompt a re-login instead of
// rejecting outright; everything else collapses to ErrInvalid.
func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrInvalid
	}

	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(i.Secret), nil
	}, jwt.WithTimeFunc(i.Clock.Now))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !t.Valid || claims.UserID == 0 {
		return nil, ErrInvalid
	}
	return claims, nil
}
