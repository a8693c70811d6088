package auth

import (
	"testing"

	"passport/config"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher(nil)

	password := "StrongPass123!"
	hash, err := hasher.Hash(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Verify the hash can be checked
	assert.True(t, hasher.Check(password, hash))
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasher(nil)
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	assert.NoError(t, err)

	// Test correct password
	assert.True(t, hasher.Check(password, hash))

	// Test incorrect password
	assert.False(t, hasher.Check("WrongPassword123!", hash))

	// Test empty password
	assert.False(t, hasher.Check("", hash))

	// Accounts without a local password never match
	assert.False(t, hasher.Check(password, ""))

	// Test invalid hash
	assert.False(t, hasher.Check(password, "invalid_hash"))
}

func TestBcryptHasher_UsesConfiguredCost(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.BcryptCost = bcrypt.MinCost
	hasher := NewBcryptHasher(cfg)

	hash, err := hasher.Hash("pw")
	assert.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	assert.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	cfg.Auth.BcryptCost = 99
	hash, err = NewBcryptHasher(cfg).Hash("pw")
	assert.NoError(t, err)
	cost, _ = bcrypt.Cost([]byte(hash))
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
