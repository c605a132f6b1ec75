package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SecretSize is the byte length of generated signing secrets. 32 bytes gives
// a full-strength HMAC-SHA256 key.
const SecretSize = 32

// LoadOrGenerateSecret reads a base64url-encoded signing secret from path,
// generating and persisting a fresh one if the file does not exist. Unlike
// the pepper this is not process-global state; the caller owns the returned
// key and injects it where needed.
func LoadOrGenerateSecret(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}

	if raw, err := os.ReadFile(path); err == nil {
		key, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(string(raw)))
		if err != nil {
			return nil, fmt.Errorf("cryptox: decode secret file %s: %w", path, err)
		}
		if len(key) == 0 {
			return nil, fmt.Errorf("cryptox: secret file %s is empty", path)
		}
		return key, nil
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	key := make([]byte, SecretSize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	encoded := base64.RawURLEncoding.EncodeToString(key)
	if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
		return nil, err
	}
	return key, nil
}
