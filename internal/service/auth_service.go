package service

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/rosa-mystica-tuntang/web/internal/config"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "rosa-mystica-web"

// Session is an issued admin token
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// authService checks the single admin credential and signs HS256 tokens
type authService struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
	log          zerolog.Logger
}

func newAuthService(cfg config.AuthConfig, log zerolog.Logger) (*authService, error) {
	hash := []byte(cfg.AdminPasswordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
		log.Warn().Msg("ADMIN_PASSWORD is set in plaintext; prefer ADMIN_PASSWORD_HASH")
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &authService{
		username:     cfg.AdminUsername,
		passwordHash: hash,
		secret:       []byte(cfg.JWTSecret),
		ttl:          ttl,
		log:          log.With().Str("service", "auth").Logger(),
	}, nil
}

// Login issues a session token for valid credentials
func (s *authService) Login(username, password string) (*Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		s.log.Warn().Str("username", username).Msg("Admin login failed")
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	expires := now.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.New().String(),
		Issuer:    tokenIssuer,
		Subject:   s.username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info().Str("username", username).Msg("Admin logged in")
	return &Session{Token: token, Username: s.username, ExpiresAt: expires}, nil
}

// Verify checks a token and returns the admin username it was issued to
func (s *authService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrUnauthorized
	}
	if claims.Issuer != tokenIssuer || claims.Subject != s.username {
		return "", ErrUnauthorized
	}
	return claims.Subject, nil
}
