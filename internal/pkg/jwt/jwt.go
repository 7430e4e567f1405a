package jwt

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service issues and verifies the API tokens that guard the scan and
// report endpoints. User management lives outside this system; callers
// are expected to be trusted internal services.
type Service interface {
	GenerateAccessToken(subject string) (token string, expiresAt int64, err error)
	GenerateSSEToken(subject string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (subject string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(subject string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"type": "access",
		"exp":  expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken creates a short-lived token for the event stream.
// EventSource clients cannot set headers, so the token travels as a
// query parameter and expires quickly.
func (j *JWTService) GenerateSSEToken(subject string) (token string, expiresIn int, err error) {
	const ttl = 60 * time.Second

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"sub":  subject,
		"type": "sse",
		"exp":  time.Now().Add(ttl).Unix(),
	})
	if err != nil {
		return "", 0, err
	}
	return tokenString, int(ttl.Seconds()), nil
}

func (j *JWTService) ValidateSSEToken(tokenString string) (subject string, err error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", fmt.Errorf("invalid SSE token: %w", err)
	}

	if err := jwt.Validate(token); err != nil {
		return "", fmt.Errorf("SSE token validation failed: %w", err)
	}

	claims, err := token.AsMap(context.Background())
	if err != nil {
		return "", fmt.Errorf("failed to read SSE token claims: %w", err)
	}
	if tokenType, _ := claims["type"].(string); tokenType != "sse" {
		return "", fmt.Errorf("token is not an SSE token")
	}

	subject, _ = claims["sub"].(string)
	return subject, nil
}
