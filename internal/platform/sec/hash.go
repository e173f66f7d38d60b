// Copyright (c) 2026 Classcord. All rights reserved.
// Author: dev@classcord.app

package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain-text password using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}

// NewClassKey derives the secret initialization key for a class.
//
// The key is the bcrypt hash of the class name. The random salt makes the
// value unguessable even though the input is public, and the UNIQUE
// constraint on class.key keeps lookups unambiguous. The bot quotes the key
// verbatim during the guild initialization handshake, so the key is compared
// by exact equality, never re-hashed.
func NewClassKey(className string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(className), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to derive class key: %w", err)
	}
	return string(hashedBytes), nil
}
