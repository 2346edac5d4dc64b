package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordFormat(t *testing.T) {
	hash, err := HashPassword("MySecurePassword123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=1,p=4$"), hash)

	again, err := HashPassword("MySecurePassword123")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salts must differ")

	_, err = HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("MySecurePassword123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  bool
	}{
		{name: "correct password", password: "MySecurePassword123", hash: hash, want: true},
		{name: "wrong password", password: "WrongPassword456", hash: hash},
		{name: "invalid format", password: "x", hash: "invalid", wantErr: true},
		{name: "wrong algorithm", password: "x", hash: "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA", wantErr: true},
		{name: "wrong version", password: "x", hash: "$argon2id$v=16$m=65536,t=1,p=4$c2FsdA$aGFzaA", wantErr: true},
		{name: "bad salt", password: "x", hash: "$argon2id$v=19$m=65536,t=1,p=4$!!$aGFzaA", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VerifyPassword(tt.password, tt.hash)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidHash)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCredentialsCheck(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	c := Credentials{Username: "admin", PasswordHash: hash}

	assert.True(t, c.Check("admin", "hunter22"))
	assert.False(t, c.Check("admin", "hunter23"))
	assert.False(t, c.Check("root", "hunter22"))
	assert.False(t, Credentials{Username: "admin", PasswordHash: "garbage"}.Check("admin", "hunter22"))
}
