package config

import "os"

// GetJWTSecret reads the signing secret from the JWT_SECRET environment
// variable, falling back to a development-only default.
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "floumy-dev-secret" // set JWT_SECRET in production
	}
	return secret
}
