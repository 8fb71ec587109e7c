package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityService validates the signed identity tokens issued by the
// platform's auth layer and can mint guest tokens for anonymous players.
// The room engine only ever sees the (user id, display name) pair.
type IdentityService struct {
	jwtSecret []byte
}

func NewIdentityService(jwtSecret string) *IdentityService {
	return &IdentityService{jwtSecret: []byte(jwtSecret)}
}

func (s *IdentityService) IssueToken(userID, displayName string) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": displayName,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *IdentityService) ValidateToken(tokenString string) (userID, displayName string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}

	userID, ok = claims["sub"].(string)
	if !ok || userID == "" {
		return "", "", errors.New("invalid subject in token")
	}
	displayName, _ = claims["name"].(string)
	return userID, displayName, nil
}
