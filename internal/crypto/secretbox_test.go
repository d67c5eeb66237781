package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestSealOpen_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		plaintext []byte
	}{
		{"empty", []byte{}},
		{"simple", []byte("hello world")},
		{"json", []byte(`{"okay": true}`)},
		{"binary", []byte{0x00, 0xff, 0x7f, 0x80}},
		{"large", make([]byte, 10000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := RandomBytes(SecretBoxKeySize)
			if err != nil {
				t.Fatal(err)
			}

			box, err := Seal(key, ZeroNonce[:], tt.plaintext)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}
			if len(box) != len(tt.plaintext)+SecretBoxOverhead {
				t.Errorf("box length = %d, want %d", len(box), len(tt.plaintext)+SecretBoxOverhead)
			}

			opened, err := Open(key, ZeroNonce[:], box)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !bytes.Equal(opened, tt.plaintext) {
				t.Errorf("opened = %v, want %v", opened, tt.plaintext)
			}
		})
	}
}

func TestOpen_WrongKey(t *testing.T) {
	key := bytes.Repeat([]byte{1}, SecretBoxKeySize)
	other := bytes.Repeat([]byte{2}, SecretBoxKeySize)

	box, err := Seal(key, ZeroNonce[:], []byte("secret"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Open(other, ZeroNonce[:], box); !errors.Is(err, ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}
}

func TestSeal_InvalidParams(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		nonce   []byte
		wantErr error
	}{
		{"short key", make([]byte, 16), ZeroNonce[:], ErrInvalidKeySize},
		{"long key", make([]byte, 64), ZeroNonce[:], ErrInvalidKeySize},
		{"short nonce", make([]byte, SecretBoxKeySize), make([]byte, 12), ErrInvalidNonceSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Seal(tt.key, tt.nonce, []byte("x")); !errors.Is(err, tt.wantErr) {
				t.Errorf("Seal() error = %v, want %v", err, tt.wantErr)
			}
			if _, err := Open(tt.key, tt.nonce, make([]byte, 32)); !errors.Is(err, tt.wantErr) {
				t.Errorf("Open() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSealWithRandomNonce(t *testing.T) {
	key := bytes.Repeat([]byte{7}, SecretBoxKeySize)

	b1, err := SealWithRandomNonce(nil, key, []byte("same"))
	if err != nil {
		t.Fatalf("SealWithRandomNonce() error = %v", err)
	}
	b2, err := SealWithRandomNonce(nil, key, []byte("same"))
	if err != nil {
		t.Fatalf("SealWithRandomNonce() error = %v", err)
	}
	if bytes.Equal(b1[:SecretBoxNonceSize], b2[:SecretBoxNonceSize]) {
		t.Error("nonces repeated across calls")
	}

	opened, err := OpenWithNonce(key, b1)
	if err != nil {
		t.Fatalf("OpenWithNonce() error = %v", err)
	}
	if string(opened) != "same" {
		t.Errorf("opened = %q, want %q", opened, "same")
	}
}

func TestOpenWithNonce_TooShort(t *testing.T) {
	key := make([]byte, SecretBoxKeySize)
	for _, n := range []int{0, SecretBoxNonceSize, SecretBoxNonceSize + SecretBoxOverhead - 1} {
		if _, err := OpenWithNonce(key, make([]byte, n)); !errors.Is(err, ErrDecryptionFailed) {
			t.Errorf("length %d: expected ErrDecryptionFailed, got %v", n, err)
		}
	}
}

func TestSealWithRandomNonce_Reader(t *testing.T) {
	key := bytes.Repeat([]byte{7}, SecretBoxKeySize)
	nonce := bytes.Repeat([]byte{9}, SecretBoxNonceSize)

	box, err := SealWithRandomNonce(bytes.NewReader(nonce), key, []byte("x"))
	if err != nil {
		t.Fatalf("SealWithRandomNonce() error = %v", err)
	}
	if !bytes.Equal(box[:SecretBoxNonceSize], nonce) {
		t.Errorf("nonce = %x, want %x", box[:SecretBoxNonceSize], nonce)
	}

	if _, err := SealWithRandomNonce(bytes.NewReader(nonce[:10]), key, []byte("x")); err == nil {
		t.Error("SealWithRandomNonce() accepted a short random source")
	}
}
