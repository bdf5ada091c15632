package utils

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// SessionClaim represents the claims of an anonymous shopper session token
type SessionClaim struct {
	SessionID string `json:"sid"`
	jwt.StandardClaims
}

// SessionSigner mints and validates session tokens
type SessionSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionSigner creates a signer. ttl <= 0 means tokens never expire.
func NewSessionSigner(secret string, ttl time.Duration) (*SessionSigner, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	return &SessionSigner{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// NewSession generates a fresh session ID and its signed token
func (s *SessionSigner) NewSession() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	token, err = s.Sign(sessionID)
	if err != nil {
		return "", "", err
	}
	return sessionID, token, nil
}

// Sign generates a token for an existing session ID
func (s *SessionSigner) Sign(sessionID string) (string, error) {
	now := s.now()
	claims := &SessionClaim{
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt: now.Unix(),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = now.Add(s.ttl).Unix()
	}

	// Create token with claims
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Validate validates a session token and returns its claims
func (s *SessionSigner) Validate(signedToken string) (*SessionClaim, error) {
	token, err := jwt.ParseWithClaims(
		signedToken,
		&SessionClaim{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return s.secret, nil
		},
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaim)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if _, err := uuid.Parse(claims.SessionID); err != nil {
		return nil, errors.New("invalid session id")
	}

	// Verify expiration
	if claims.ExpiresAt != 0 && claims.ExpiresAt < s.now().Unix() {
		return nil, errors.New("token expired")
	}

	return claims, nil
}
