package util

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"unicode"

	"golang.org/x/crypto/argon2"
)

// argon2id parameters. Changing these invalidates stored hashes, so they
// are fixed for the lifetime of the users table.
const (
	argonSaltLen = 16
	argonKeyLen  = 32
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

const minPasswordLength = 12

// ValidatePassword enforces the signup password policy: minimum length
// plus at least one character from each class.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 12 characters long")
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return errors.New("password must include uppercase, lowercase, number, and special character")
	}
	return nil
}

func HashPassword(password string, salt []byte) ([]byte, error) {
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	if len(salt) == 0 {
		return nil, errors.New("salt cannot be empty")
	}
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen), nil
}

// DerivePassword generates a fresh random salt and hashes the password
// with it. The pair is stored together on the user row.
func DerivePassword(password string) (hash, salt []byte, err error) {
	salt = make([]byte, argonSaltLen)
	if _, err = rand.Read(salt); err != nil {
		return nil, nil, err
	}
	hash, err = HashPassword(password, salt)
	if err != nil {
		return nil, nil, err
	}
	return hash, salt, nil
}

// VerifyPassword re-derives the key and compares in constant time.
func VerifyPassword(password string, salt, expectedHash []byte) bool {
	if password == "" || len(salt) == 0 || len(expectedHash) == 0 {
		return false
	}
	candidate, err := HashPassword(password, salt)
	if err != nil || len(candidate) != len(expectedHash) {
		return false
	}
	return subtle.ConstantTimeCompare(candidate, expectedHash) == 1
}
