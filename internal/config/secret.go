package config

import (
	"errors"

	"github.com/fernet/fernet-go"
)

// DecryptSecret decrypts a fernet token with the given base64 fernet key.
// Tokens never expire.
func DecryptSecret(token, key string) (string, error) {
	if key == "" {
		return "", errors.New("SECRET_KEY is required to decrypt secrets")
	}
	keys, err := fernet.DecodeKeys(key)
	if err != nil {
		return "", err
	}
	msg := fernet.VerifyAndDecrypt([]byte(token), -1, keys)
	if msg == nil {
		return "", errors.New("invalid or tampered token")
	}
	return string(msg), nil
}

// GenerateSecretKey returns a new random base64 fernet key suitable for SECRET_KEY.
func GenerateSecretKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", err
	}
	return k.Encode(), nil
}

// EncryptSecret produces a fernet token for plaintext, the inverse of DecryptSecret.
func EncryptSecret(plaintext, key string) (string, error) {
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", err
	}
	tok, err := fernet.EncryptAndSign([]byte(plaintext), k)
	if err != nil {
		return "", err
	}
	return string(tok), nil
}
