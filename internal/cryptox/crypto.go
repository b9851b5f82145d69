// Package cryptox seals and opens small JSON records with AES-GCM. It is
// used to protect the persisted session (bearer token and cached user
// snapshot) at rest, under a key derived from a per-device secret file.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"

	"github.com/dsmolyakov/jobdeck/internal/common"
)

const (
	secretSize = 32
	saltSize   = 16
)

// ErrCorruptRecord reports a blob that could not be authenticated or
// decoded. Callers are expected to treat such records as absent.
var ErrCorruptRecord = errors.New("corrupt sealed record")

// DeriveSealKey derives a 32-byte AES-256 key from the device secret and
// salt using argon2id.
func DeriveSealKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// LoadOrCreateSecret reads the device secret file at path, creating it with
// fresh random contents and 0600 permissions on first use. The file holds
// the secret followed by the key-derivation salt.
//
// Returns (secret, salt, error). Losing the file invalidates every record
// sealed under it; readers then observe ErrCorruptRecord and fall back to
// an empty state.
func LoadOrCreateSecret(path string) ([]byte, []byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		if len(data) != secretSize+saltSize {
			return nil, nil, fmt.Errorf("device secret %s: unexpected size %d", path, len(data))
		}
		return data[:secretSize], data[secretSize:], nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, nil, err
	}

	secret := common.GenerateRandByteArray(secretSize)
	salt := common.GenerateRandByteArray(saltSize)

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	if err := os.WriteFile(path, append(append([]byte{}, secret...), salt...), 0o600); err != nil {
		return nil, nil, err
	}
	return secret, salt, nil
}

// Seal serializes record to JSON and encrypts it with AES-GCM under key.
// The random nonce is prepended to the returned blob.
func Seal(record any, key []byte) ([]byte, error) {
	plaintext, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := common.GenerateRandByteArray(aesgcm.NonceSize())
	return aesgcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts a blob produced by Seal and unmarshals the JSON into v.
// Any authentication or decoding failure is reported as ErrCorruptRecord,
// so callers can uniformly discard damaged state.
func Open(blob, key []byte, v any) error {
	block, err := aes.NewCipher(key)
	if err != nil {
		return err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return err
	}

	if len(blob) < aesgcm.NonceSize() {
		return ErrCorruptRecord
	}
	nonce, ciphertext := blob[:aesgcm.NonceSize()], blob[aesgcm.NonceSize():]

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return ErrCorruptRecord
	}
	if err := json.Unmarshal(plaintext, v); err != nil {
		return ErrCorruptRecord
	}
	return nil
}
