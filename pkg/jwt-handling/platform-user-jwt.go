package jwthandling

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Information a token enocodes
type PlatformUserClaims struct {
	ID         string            `json:"id,omitempty"`
	InstanceID string            `json:"instance_id,omitempty"`
	Role       string            `json:"role,omitempty"`
	SessionID  string            `json:"session_id,omitempty"`
	Payload    map[string]string `json:"payload,omitempty"`
	jwt.RegisteredClaims
}

func GenerateNewPlatformUserToken(expiresIn time.Duration, id string, instanceID string, role string, sessionID string, payload map[string]string, secretKey string) (tokenString string, err error) {
	claims := PlatformUserClaims{
		id,
		instanceID,
		role,
		sessionID,
		payload,
		jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err = token.SignedString([]byte(secretKey))
	return
}

func ValidatePlatformUserToken(tokenString string, secretKey string) (claims *PlatformUserClaims, valid bool, err error) {
	token, err := jwt.ParseWithClaims(tokenString, &PlatformUserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if token == nil {
		return
	}
	claims, valid = token.Claims.(*PlatformUserClaims)
	valid = valid && token.Valid
	return
}
