// Package crypto implements the field-level codec used by the record store.
// Every sensitive value crosses exactly one boundary: it is encrypted by a
// mapper before it reaches the repository and decrypted on the way back out.
// Nothing above that boundary ever sees ciphertext.
package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/pbkdf2"
)

// KeySize is the required symmetric key length in bytes (AES-256).
const KeySize = 32

// pbkdf2Iterations matches the work factor used for passphrase-derived keys.
const pbkdf2Iterations = 100_000

// dateLayout is the canonical plaintext form for encrypted dates.
const dateLayout = time.RFC3339

// ErrCrypto marks any encryption or decryption failure. Callers must never
// translate it into a recoverable condition: a value that fails to decrypt is
// unreadable financial data, and pretending otherwise is worse than failing.
var ErrCrypto = errors.New("crypto failure")

// Codec encrypts and decrypts scalar values with a single process-lifetime
// key. Construct it once at startup and inject it into the stores; there is
// no lazy initialization and no global instance.
type Codec struct {
	aead cipher.AEAD
}

// New creates a Codec from a raw 32-byte key. It fails fast on a missing or
// wrongly sized key so that no encrypt/decrypt call can run without one.
func New(key []byte) (*Codec, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("New: key must be %d bytes, got %d: %w", KeySize, len(key), ErrCrypto)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("New: creating cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("New: creating gcm: %w", err)
	}

	return &Codec{aead: aead}, nil
}

// NewFromPassphrase derives a key from a passphrase and salt via
// PBKDF2-SHA256 and builds a Codec from it.
func NewFromPassphrase(passphrase, salt string) (*Codec, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("NewFromPassphrase: empty passphrase: %w", ErrCrypto)
	}
	key := pbkdf2.Key([]byte(passphrase), []byte(salt), pbkdf2Iterations, KeySize, sha256.New)
	return New(key)
}

// seal encrypts plaintext with a fresh random nonce. The nonce is prepended
// to the ciphertext and the whole payload is base64 encoded, so repeated
// encryption of equal plaintexts never yields equal ciphertexts. Persisted
// ciphertext is therefore useless for equality filters or ORDER BY; all
// filtering on sensitive values happens after decryption.
func (c *Codec) seal(plaintext []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("seal: reading nonce: %w", err)
	}
	out := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(out), nil
}

// open decrypts a payload produced by seal.
func (c *Codec) open(opaque string) ([]byte, error) {
	data, err := base64.RawURLEncoding.DecodeString(opaque)
	if err != nil {
		return nil, fmt.Errorf("open: decoding payload: %v: %w", err, ErrCrypto)
	}
	ns := c.aead.NonceSize()
	if len(data) < ns {
		return nil, fmt.Errorf("open: payload shorter than nonce: %w", ErrCrypto)
	}
	plaintext, err := c.aead.Open(nil, data[:ns], data[ns:], nil)
	if err != nil {
		return nil, fmt.Errorf("open: decrypting: %v: %w", err, ErrCrypto)
	}
	return plaintext, nil
}

// EncryptString encrypts a string value.
func (c *Codec) EncryptString(s string) (string, error) {
	return c.seal([]byte(s))
}

// DecryptString decrypts a string value.
func (c *Codec) DecryptString(opaque string) (string, error) {
	b, err := c.open(opaque)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// EncryptNumber encrypts a decimal value.
func (c *Codec) EncryptNumber(d decimal.Decimal) (string, error) {
	return c.seal([]byte(d.String()))
}

// DecryptNumber decrypts a decimal value.
func (c *Codec) DecryptNumber(opaque string) (decimal.Decimal, error) {
	b, err := c.open(opaque)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return decimal.Zero, fmt.Errorf("DecryptNumber: parsing %q: %v: %w", string(b), err, ErrCrypto)
	}
	return d, nil
}

// EncryptDate encrypts a timestamp in RFC3339 form.
func (c *Codec) EncryptDate(t time.Time) (string, error) {
	return c.seal([]byte(t.UTC().Format(dateLayout)))
}

// DecryptDate decrypts a timestamp encrypted by EncryptDate.
func (c *Codec) DecryptDate(opaque string) (time.Time, error) {
	b, err := c.open(opaque)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(dateLayout, string(b))
	if err != nil {
		return time.Time{}, fmt.Errorf("DecryptDate: parsing %q: %v: %w", string(b), err, ErrCrypto)
	}
	return t, nil
}

// EncryptStringList encrypts a list of strings as a JSON array.
func (c *Codec) EncryptStringList(vals []string) (string, error) {
	b, err := json.Marshal(vals)
	if err != nil {
		return "", fmt.Errorf("EncryptStringList: marshaling: %w", err)
	}
	return c.seal(b)
}

// DecryptStringList decrypts a list encrypted by EncryptStringList.
func (c *Codec) DecryptStringList(opaque string) ([]string, error) {
	b, err := c.open(opaque)
	if err != nil {
		return nil, err
	}
	var vals []string
	if err := json.Unmarshal(b, &vals); err != nil {
		return nil, fmt.Errorf("DecryptStringList: unmarshaling: %v: %w", err, ErrCrypto)
	}
	return vals, nil
}

// EncryptBytes encrypts an opaque byte payload (encrypted JSON blobs such as
// notification configs go through here).
func (c *Codec) EncryptBytes(b []byte) (string, error) {
	return c.seal(b)
}

// DecryptBytes decrypts a payload encrypted by EncryptBytes.
func (c *Codec) DecryptBytes(opaque string) ([]byte, error) {
	return c.open(opaque)
}

// Pointer variants. Nil passes through unencrypted in both directions: null
// is not secret, and the persisted column stays NULL so absence remains
// visible to the schema without leaking anything else.

// EncryptStringPtr encrypts an optional string, passing nil through.
func (c *Codec) EncryptStringPtr(s *string) (*string, error) {
	if s == nil {
		return nil, nil
	}
	enc, err := c.EncryptString(*s)
	if err != nil {
		return nil, err
	}
	return &enc, nil
}

// DecryptStringPtr decrypts an optional string, passing nil through.
func (c *Codec) DecryptStringPtr(opaque *string) (*string, error) {
	if opaque == nil {
		return nil, nil
	}
	s, err := c.DecryptString(*opaque)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// EncryptNumberPtr encrypts an optional decimal, passing nil through.
func (c *Codec) EncryptNumberPtr(d *decimal.Decimal) (*string, error) {
	if d == nil {
		return nil, nil
	}
	enc, err := c.EncryptNumber(*d)
	if err != nil {
		return nil, err
	}
	return &enc, nil
}

// DecryptNumberPtr decrypts an optional decimal, passing nil through.
func (c *Codec) DecryptNumberPtr(opaque *string) (*decimal.Decimal, error) {
	if opaque == nil {
		return nil, nil
	}
	d, err := c.DecryptNumber(*opaque)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// EncryptDatePtr encrypts an optional timestamp, passing nil through.
func (c *Codec) EncryptDatePtr(t *time.Time) (*string, error) {
	if t == nil {
		return nil, nil
	}
	enc, err := c.EncryptDate(*t)
	if err != nil {
		return nil, err
	}
	return &enc, nil
}

// DecryptDatePtr decrypts an optional timestamp, passing nil through.
func (c *Codec) DecryptDatePtr(opaque *string) (*time.Time, error) {
	if opaque == nil {
		return nil, nil
	}
	t, err := c.DecryptDate(*opaque)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// EncryptStringListPtr encrypts an optional string list. Both nil and empty
// lists pass through as nil: an empty association and no association are the
// same absence and must not produce distinguishable ciphertext rows.
func (c *Codec) EncryptStringListPtr(vals []string) (*string, error) {
	if len(vals) == 0 {
		return nil, nil
	}
	enc, err := c.EncryptStringList(vals)
	if err != nil {
		return nil, err
	}
	return &enc, nil
}

// DecryptStringListPtr decrypts an optional string list, passing nil through.
func (c *Codec) DecryptStringListPtr(opaque *string) ([]string, error) {
	if opaque == nil {
		return nil, nil
	}
	return c.DecryptStringList(*opaque)
}
