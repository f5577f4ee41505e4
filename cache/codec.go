// api/cache/codec.go
package cache

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
)

// Codec turns values into the bytes stored in a backend: JSON, optionally
// sealed with AES-256-GCM and base64 encoded.
type Codec struct {
	gcm cipher.AEAD
}

// NewCodec returns a plain JSON codec when key is empty. A non-empty key must
// be 32 bytes.
func NewCodec(key []byte) (*Codec, error) {
	if len(key) == 0 {
		return &Codec{}, nil
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("invalid encryption key length: must be 32 bytes")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Codec{gcm: gcm}, nil
}

func (c *Codec) Encode(value any) ([]byte, error) {
	data, err := sonic.ConfigStd.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}
	if c.gcm == nil {
		return data, nil
	}

	nonce := make([]byte, c.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	sealed := c.gcm.Seal(nonce, nonce, data, nil)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sealed)))
	base64.StdEncoding.Encode(out, sealed)
	return out, nil
}

func (c *Codec) Decode(data []byte, dest any) error {
	if c.gcm != nil {
		sealed := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
		n, err := base64.StdEncoding.Decode(sealed, data)
		if err != nil {
			return fmt.Errorf("failed to decode value: %w", err)
		}
		sealed = sealed[:n]

		nonceSize := c.gcm.NonceSize()
		if len(sealed) < nonceSize {
			return fmt.Errorf("ciphertext too short")
		}
		nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
		if data, err = c.gcm.Open(nil, nonce, ciphertext, nil); err != nil {
			return fmt.Errorf("failed to decrypt value: %w", err)
		}
	}

	if err := sonic.ConfigStd.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}
