package auth

import (
	"fmt"
	"time"

	"github.com/cityreport/api-go/utils"
	"github.com/dgrijalva/jwt-go"
)

const (
	purposeChallenge = "otp"
	purposeSession   = "session"
)

// ChallengeClaims is what the OTP screen carries instead of navigation state.
type ChallengeClaims struct {
	ChallengeID string
	Phone       string
}

// TokenIssuer signs and parses the HS256 tokens handed to the client.
type TokenIssuer struct {
	secret       []byte
	sessionTTL   time.Duration
	challengeTTL time.Duration
}

func NewTokenIssuer(secret string, sessionTTL, challengeTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:       []byte(secret),
		sessionTTL:   sessionTTL,
		challengeTTL: challengeTTL,
	}
}

// IssueChallenge signs a token for the OTP screen. A zero challenge TTL
// leaves out the exp claim so the token stays valid until the code is
// entered.
func (t *TokenIssuer) IssueChallenge(ch Challenge) (string, error) {
	claims := jwt.MapClaims{
		"purpose":      purposeChallenge,
		"challenge_id": ch.ID,
		"phone":        ch.Phone,
		"iat":          time.Now().Unix(),
	}
	if t.challengeTTL > 0 {
		claims["exp"] = time.Now().Add(t.challengeTTL).Unix()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *TokenIssuer) ParseChallenge(raw string) (ChallengeClaims, error) {
	claims, err := t.parse(raw, purposeChallenge)
	if err != nil {
		return ChallengeClaims{}, err
	}
	id, _ := claims["challenge_id"].(string)
	phone, _ := claims["phone"].(string)
	if id == "" || phone == "" {
		return ChallengeClaims{}, ErrInvalidToken
	}
	return ChallengeClaims{ChallengeID: id, Phone: phone}, nil
}

// IssueSession returns a session token for a verified phone and its expiry.
func (t *TokenIssuer) IssueSession(phone string) (string, time.Time, error) {
	expires := time.Now().Add(t.sessionTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"purpose": purposeSession,
		"phone":   phone,
		"iat":     time.Now().Unix(),
		"exp":     expires.Unix(),
	})
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, expires, nil
}

func (t *TokenIssuer) ParseSession(raw string) (*utils.UserClaims, error) {
	claims, err := t.parse(raw, purposeSession)
	if err != nil {
		return nil, err
	}
	phone, _ := claims["phone"].(string)
	exp, _ := claims["exp"].(float64)
	if phone == "" {
		return nil, ErrInvalidToken
	}
	return &utils.UserClaims{Phone: phone, ExpiresAt: time.Unix(int64(exp), 0)}, nil
}

func (t *TokenIssuer) parse(raw, purpose string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if p, _ := claims["purpose"].(string); p != purpose {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
