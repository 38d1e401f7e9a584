package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vettia/assessment-backend/internal/platform/logger"
)

// AdminTokenService guards the trait-configuration surface. Full auth policy
// lives upstream; this only validates the bearer token shape the admin app
// already issues.
type AdminTokenService interface {
	Issue(subject string) (string, error)
	Verify(tokenString string) (string, error)
}

type adminTokenService struct {
	log    *logger.Logger
	secret []byte
	ttl    time.Duration
}

func NewAdminTokenService(log *logger.Logger, secret string, ttl time.Duration) AdminTokenService {
	return &adminTokenService{
		log:    log.With("service", "AdminTokenService"),
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (s *adminTokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *adminTokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	return claims.Subject, nil
}
