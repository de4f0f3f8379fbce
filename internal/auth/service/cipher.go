package service

// SecretCipher seals TOTP secrets at rest. *cryptox.SecretCipher is the
// production implementation.
type SecretCipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(envelope string) (string, error)
}
