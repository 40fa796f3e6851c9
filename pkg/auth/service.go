package auth

import (
	"time"

	"github.com/footagedesk/catalogsync/pkg/config"
	"github.com/footagedesk/catalogsync/pkg/errcodes"
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// Service issues and verifies bearer tokens for the admin tool. There is a
// single configured staff credential; the password is stored as a bcrypt
// hash.
type Service struct {
	jwtSecret         []byte
	adminUsername     string
	adminPasswordHash string
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		jwtSecret:         []byte(cfg.JWTSecret),
		adminUsername:     cfg.AdminUsername,
		adminPasswordHash: cfg.AdminPasswordHash,
	}
}

// IssueToken exchanges the admin credential for a signed token.
func (svc *Service) IssueToken(username, password string) (string, error) {
	if username != svc.adminUsername {
		return "", errcodes.Unauthorized("Invalid credentials.")
	}
	err := bcrypt.CompareHashAndPassword([]byte(svc.adminPasswordHash), []byte(password))
	if err != nil {
		return "", errcodes.Unauthorized("Invalid credentials.")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})

	signed, err := token.SignedString(svc.jwtSecret)
	if err != nil {
		return "", errors.WithStack(err)
	}
	return signed, nil
}

// VerifyToken returns the subject of a valid token.
func (svc *Service) VerifyToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return svc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errcodes.Unauthorized("Invalid or expired token.")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errcodes.Unauthorized("Invalid or expired token.")
	}
	return claims.Subject, nil
}
