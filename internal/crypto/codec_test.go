package crypto

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func testCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New(bytes.Repeat([]byte{0x42}, KeySize))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c
}

func TestNew_KeySize(t *testing.T) {
	tests := []struct {
		name    string
		keyLen  int
		wantErr bool
	}{
		{name: "exact size", keyLen: KeySize, wantErr: false},
		{name: "too short", keyLen: 16, wantErr: true},
		{name: "empty", keyLen: 0, wantErr: true},
		{name: "too long", keyLen: 64, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(make([]byte, tt.keyLen))
			if (err != nil) != tt.wantErr {
				t.Errorf("New(%d bytes) error = %v, wantErr %v", tt.keyLen, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrCrypto) {
				t.Errorf("New(%d bytes) error = %v, want ErrCrypto", tt.keyLen, err)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	c := testCodec(t)

	t.Run("string", func(t *testing.T) {
		for _, s := range []string{"", "Chase Bank", "acct ****1234"} {
			enc, err := c.EncryptString(s)
			if err != nil {
				t.Fatalf("EncryptString(%q) failed: %v", s, err)
			}
			got, err := c.DecryptString(enc)
			if err != nil {
				t.Fatalf("DecryptString failed: %v", err)
			}
			if got != s {
				t.Errorf("round trip = %q, want %q", got, s)
			}
		}
	})

	t.Run("number", func(t *testing.T) {
		for _, s := range []string{"0", "-300000", "1234.56", "0.001"} {
			d := decimal.RequireFromString(s)
			enc, err := c.EncryptNumber(d)
			if err != nil {
				t.Fatalf("EncryptNumber(%s) failed: %v", s, err)
			}
			got, err := c.DecryptNumber(enc)
			if err != nil {
				t.Fatalf("DecryptNumber failed: %v", err)
			}
			if !got.Equal(d) {
				t.Errorf("round trip = %s, want %s", got, d)
			}
		}
	})

	t.Run("date", func(t *testing.T) {
		d := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
		enc, err := c.EncryptDate(d)
		if err != nil {
			t.Fatalf("EncryptDate failed: %v", err)
		}
		got, err := c.DecryptDate(enc)
		if err != nil {
			t.Fatalf("DecryptDate failed: %v", err)
		}
		if !got.Equal(d) {
			t.Errorf("round trip = %v, want %v", got, d)
		}
	})

	t.Run("string list", func(t *testing.T) {
		vals := []string{"acc-1", "acc-2"}
		enc, err := c.EncryptStringList(vals)
		if err != nil {
			t.Fatalf("EncryptStringList failed: %v", err)
		}
		got, err := c.DecryptStringList(enc)
		if err != nil {
			t.Fatalf("DecryptStringList failed: %v", err)
		}
		if len(got) != 2 || got[0] != "acc-1" || got[1] != "acc-2" {
			t.Errorf("round trip = %v, want %v", got, vals)
		}
	})
}

// Encrypting the same plaintext twice must produce distinct ciphertexts that
// both decrypt to the original. Equal ciphertexts would leak plaintext
// equality to anyone holding the database file.
func TestNonDeterministicCiphertext(t *testing.T) {
	c := testCodec(t)
	d := decimal.RequireFromString("5000.00")

	first, err := c.EncryptNumber(d)
	if err != nil {
		t.Fatalf("first EncryptNumber failed: %v", err)
	}
	second, err := c.EncryptNumber(d)
	if err != nil {
		t.Fatalf("second EncryptNumber failed: %v", err)
	}
	if first == second {
		t.Fatalf("two encryptions of the same value produced equal ciphertext %q", first)
	}

	for _, enc := range []string{first, second} {
		got, err := c.DecryptNumber(enc)
		if err != nil {
			t.Fatalf("DecryptNumber failed: %v", err)
		}
		if !got.Equal(d) {
			t.Errorf("decrypt = %s, want %s", got, d)
		}
	}
}

func TestDecrypt_WrongKeyIsFatal(t *testing.T) {
	c := testCodec(t)
	enc, err := c.EncryptString("sensitive")
	if err != nil {
		t.Fatalf("EncryptString failed: %v", err)
	}

	other, err := New(bytes.Repeat([]byte{0x01}, KeySize))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := other.DecryptString(enc); !errors.Is(err, ErrCrypto) {
		t.Errorf("DecryptString with wrong key error = %v, want ErrCrypto", err)
	}
}

func TestDecrypt_CorruptCiphertext(t *testing.T) {
	c := testCodec(t)

	tests := []struct {
		name   string
		opaque string
	}{
		{name: "not base64", opaque: "%%%not-base64%%%"},
		{name: "too short", opaque: "AAAA"},
		{name: "flipped bits", opaque: func() string {
			enc, _ := c.EncryptString("value")
			b := []byte(enc)
			b[len(b)-1] ^= 0x01
			return string(b)
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.DecryptString(tt.opaque); !errors.Is(err, ErrCrypto) {
				t.Errorf("DecryptString(%q) error = %v, want ErrCrypto", tt.opaque, err)
			}
		})
	}
}

func TestPointerVariants_NilPassthrough(t *testing.T) {
	c := testCodec(t)

	if got, err := c.EncryptStringPtr(nil); err != nil || got != nil {
		t.Errorf("EncryptStringPtr(nil) = (%v, %v), want (nil, nil)", got, err)
	}
	if got, err := c.DecryptNumberPtr(nil); err != nil || got != nil {
		t.Errorf("DecryptNumberPtr(nil) = (%v, %v), want (nil, nil)", got, err)
	}
	if got, err := c.EncryptDatePtr(nil); err != nil || got != nil {
		t.Errorf("EncryptDatePtr(nil) = (%v, %v), want (nil, nil)", got, err)
	}
}

// Empty and nil lists are the same absence: neither produces a stored value.
func TestStringListPtr_EmptyNormalizedToNil(t *testing.T) {
	c := testCodec(t)

	for _, vals := range [][]string{nil, {}} {
		got, err := c.EncryptStringListPtr(vals)
		if err != nil {
			t.Fatalf("EncryptStringListPtr(%v) failed: %v", vals, err)
		}
		if got != nil {
			t.Errorf("EncryptStringListPtr(%v) = %v, want nil", vals, got)
		}
	}
}

func TestNewFromPassphrase(t *testing.T) {
	if _, err := NewFromPassphrase("", "salt"); !errors.Is(err, ErrCrypto) {
		t.Errorf("NewFromPassphrase with empty passphrase error = %v, want ErrCrypto", err)
	}

	a, err := NewFromPassphrase("correct horse", "salt")
	if err != nil {
		t.Fatalf("NewFromPassphrase failed: %v", err)
	}
	b, err := NewFromPassphrase("correct horse", "salt")
	if err != nil {
		t.Fatalf("NewFromPassphrase failed: %v", err)
	}

	enc, err := a.EncryptString("hello")
	if err != nil {
		t.Fatalf("EncryptString failed: %v", err)
	}
	got, err := b.DecryptString(enc)
	if err != nil {
		t.Fatalf("DecryptString across identically derived codecs failed: %v", err)
	}
	if got != "hello" {
		t.Errorf("decrypt = %q, want %q", got, "hello")
	}
}
