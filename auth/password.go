package auth

import (
	"errors"

	"github.com/rpupo63/genai-portfolio-backend/errs"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// HashPassword returns the bcrypt hash stored in place of a password.
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", errs.NewInvalidFieldError("password", "must be at least 8 characters")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errs.NewInvalidFieldError("password", "must be at most 72 bytes")
		}
		return "", errs.NewInternalErrorWithCause("failed to hash password", err)
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
