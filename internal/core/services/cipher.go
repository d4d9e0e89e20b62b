package services

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"github.com/adi3433/DS-project/internal/core/ports"
)

// hmacCipher is the default credential capability: peppered HMAC-SHA256 for
// identity digests, plain SHA-256 for access codes, URL-safe random codes.
type hmacCipher struct {
	pepper []byte
}

func NewHMACCipher(pepper []byte) ports.CredentialCipher {
	return &hmacCipher{pepper: pepper}
}

func (c *hmacCipher) IdentityDigest(voterID string) string {
	mac := hmac.New(sha256.New, c.pepper)
	mac.Write([]byte(voterID))
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *hmacCipher) CodeDigest(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

func (c *hmacCipher) GenerateCode() (string, string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("failed to generate access code: %w", err)
	}
	code := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b)
	return code, c.CodeDigest(code), nil
}
