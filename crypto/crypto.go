// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"jobs-api/commons"

	"github.com/alexedwards/argon2id"
)

func NewCrypto(cfg *commons.Config) *Crypto {
	return &Crypto{
		ArgonTime:    cfg.ArgonTime,
		ArgonMemory:  cfg.ArgonMemory,
		ArgonThreads: cfg.ArgonThreads,
		ArgonKeyLen:  cfg.ArgonKeyLen,
		ArgonSaltLen: cfg.ArgonSaltLen,
	}
}

func (c *Crypto) params() *argon2id.Params {
	return &argon2id.Params{
		Memory:      c.ArgonMemory,
		Iterations:  c.ArgonTime,
		Parallelism: c.ArgonThreads,
		SaltLength:  c.ArgonSaltLen,
		KeyLength:   c.ArgonKeyLen,
	}
}

// HashSecret returns the argon2id encoded hash of secret with a fresh salt.
func (c *Crypto) HashSecret(secret string) (string, error) {
	commons.Logger.Debug("Hashing secret")
	hash, err := argon2id.CreateHash(secret, c.params())
	if err != nil {
		return "", err
	}
	return hash, nil
}

// VerifySecret compares secret against an encoded hash. The digest comparison
// runs in constant time.
func (c *Crypto) VerifySecret(secret, encodedHash string) error {
	match, err := argon2id.ComparePasswordAndHash(secret, encodedHash)
	if err != nil {
		return err
	}
	if !match {
		return fmt.Errorf("secret verification failed")
	}
	return nil
}

func GenerateRandomString(prefix string, length int, encoding string) (string, error) {
	supportedEncodings := []string{"hex", "base64", "base64url"}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	switch encoding {
	case "hex":
		return prefix + hex.EncodeToString(b), nil
	case "base64":
		return prefix + base64.StdEncoding.EncodeToString(b), nil
	case "base64url":
		return prefix + base64.RawURLEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s, Supported encodings are: %s", encoding, supportedEncodings)
	}
}
