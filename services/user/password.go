package user

import (
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// VerifyPasswordComplexity checks that the password meets complexity requirements.
func VerifyPasswordComplexity(pw string) error {
	var hasUpper, hasLower, hasNumber bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		}
	}
	if len([]rune(pw)) < 8 {
		return PasswordPolicyError{"password deve essere almeno 8 caratteri"}
	}
	if !hasUpper {
		return PasswordPolicyError{"password deve contenere almeno una maiuscola"}
	}
	if !hasLower {
		return PasswordPolicyError{"password deve contenere almeno una minuscola"}
	}
	if !hasNumber {
		return PasswordPolicyError{"password deve contenere almeno un numero"}
	}
	return nil
}

func hashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func checkPassword(hash, pw string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
