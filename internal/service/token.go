package service

import (
	"fmt"
	"time"

	"sportify-api/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	audienceSession      = "session"
	audienceVerification = "verify-email"
)

// TokenService issues and checks the two kinds of bearer tokens. Each kind is
// bound to its own audience so a verification link cannot be replayed as a
// session credential.
type TokenService interface {
	IssueSession(userID string) (string, error)
	ParseSession(token string) (string, error)
	IssueVerification(userID string) (string, error)
	ParseVerification(token string) (string, error)
}

type jwtTokenServiceImpl struct {
	secret          []byte
	sessionTTL      time.Duration
	verificationTTL time.Duration
	now             func() time.Time
}

func NewTokenService(cfg *config.JWT, now func() time.Time) TokenService {
	if now == nil {
		now = time.Now
	}
	return &jwtTokenServiceImpl{
		secret:          []byte(cfg.Secret),
		sessionTTL:      cfg.SessionTTL,
		verificationTTL: cfg.VerificationTTL,
		now:             now,
	}
}

func (s *jwtTokenServiceImpl) IssueSession(userID string) (string, error) {
	return s.issue(userID, audienceSession, s.sessionTTL)
}

func (s *jwtTokenServiceImpl) ParseSession(token string) (string, error) {
	return s.parse(token, audienceSession)
}

func (s *jwtTokenServiceImpl) IssueVerification(userID string) (string, error) {
	return s.issue(userID, audienceVerification, s.verificationTTL)
}

func (s *jwtTokenServiceImpl) ParseVerification(token string) (string, error) {
	return s.parse(token, audienceVerification)
}

func (s *jwtTokenServiceImpl) issue(userID, audience string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   userID,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", audience, err)
	}
	return signed, nil
}

func (s *jwtTokenServiceImpl) parse(token, audience string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return claims.Subject, nil
}
