package utils

import (
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestKey(t *testing.T) {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	t.Setenv("ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(key))
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	setTestKey(t)

	plaintext := "dear me, be patient with yourself"
	ciphertext, err := Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, ciphertext)

	got, err := Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestEncryptEmptyString(t *testing.T) {
	setTestKey(t)

	ciphertext, err := Encrypt("")
	require.NoError(t, err)
	assert.Equal(t, "", ciphertext)
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	setTestKey(t)

	ciphertext, err := Encrypt("secret")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF

	_, err = Decrypt(base64.StdEncoding.EncodeToString(raw))
	assert.Error(t, err)
}

func TestGetEncryptionKeyValidation(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEY", "")
		_, err := GetEncryptionKey()
		assert.Error(t, err)
		assert.False(t, EncryptionConfigured())
	})

	t.Run("not base64", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEY", "!!!not base64!!!")
		_, err := GetEncryptionKey()
		assert.Error(t, err)
	})

	t.Run("wrong length", func(t *testing.T) {
		t.Setenv("ENCRYPTION_KEY", base64.StdEncoding.EncodeToString([]byte("short")))
		_, err := GetEncryptionKey()
		assert.Error(t, err)
	})
}
