package utils

import (
	"os"
	"strings"
	"time"

	"complaint-portal/pkg/middleware"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminTokenTTL is the validity window of an issued admin credential.
const AdminTokenTTL = 8 * time.Hour

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// VerifyAdminPassword checks the supplied password against the configured
// admin secret. ADMIN_PASSWORD_HASH (bcrypt) takes precedence over the plain
// ADMIN_PASSWORD comparison. With neither configured, login always fails.
func VerifyAdminPassword(supplied string) bool {
	if hash := strings.TrimSpace(os.Getenv("ADMIN_PASSWORD_HASH")); hash != "" {
		return CheckPasswordHash(supplied, hash)
	}
	if plain := os.Getenv("ADMIN_PASSWORD"); plain != "" {
		return supplied == plain
	}
	return false
}

// GenerateAdminToken mints a signed bearer token asserting the admin role.
func GenerateAdminToken() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"role": middleware.RoleAdmin,
		"iat":  now.Unix(),
		"exp":  now.Add(AdminTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.JWTSecret())
}
