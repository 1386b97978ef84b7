package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Service issues and verifies the kiosk session tokens an attendance camera
// obtains by presenting its organization's camera code.
type Service interface {
	GenerateKioskToken(organizationID string, organizationName string) (token string, expiresAt int64, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey           string
	kioskExpirationTime string
	tokenAuth           *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, kioskExpirationTime string) Service {
	return &JWTService{
		secretKey:           secretKey,
		kioskExpirationTime: kioskExpirationTime,
		tokenAuth:           jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateKioskToken(organizationID string, organizationName string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.kioskExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"organization_id":   organizationID,
		"organization_name": organizationName,
		"type":              "kiosk",
		"exp":               expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}
