package utils

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
