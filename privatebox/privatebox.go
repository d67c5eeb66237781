package privatebox

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/scuttlekit/ssbkeys/internal/crypto"
)

const (
	// KeySize is the size of Curve25519 public and secret keys.
	KeySize = crypto.CurveKeySize

	// HeaderSize is the size of one sealed header slot.
	HeaderSize = crypto.SecretBoxKeySize + 2 + crypto.SecretBoxOverhead

	// MaxRecipients is the largest recipient count the skip field can carry.
	MaxRecipients = 65535

	headerPlainSize = crypto.SecretBoxKeySize + 2
)

// Overhead returns the number of bytes an envelope for n recipients adds to
// the message.
func Overhead(n int) int {
	return KeySize + n*HeaderSize + crypto.SecretBoxOverhead
}

// Boxer encrypts envelopes using its own random source.
type Boxer struct {
	rand io.Reader
}

// NewBoxer returns a Boxer that draws ephemeral keys and body keys from r.
// A nil r uses the package's cryptographically secure default.
func NewBoxer(r io.Reader) *Boxer {
	return &Boxer{rand: r}
}

var defaultBoxer = NewBoxer(nil)

// Encrypt seals msg for recipients using the default random source.
func Encrypt(msg []byte, recipients ...[]byte) ([]byte, error) {
	return defaultBoxer.Encrypt(msg, recipients...)
}

func (b *Boxer) reader() io.Reader {
	if b.rand != nil {
		return b.rand
	}
	return crypto.Reader()
}

// Encrypt seals msg so that each recipient can open it. Recipients are
// Curve25519 public keys; headers are written in the order given.
func (b *Boxer) Encrypt(msg []byte, recipients ...[]byte) ([]byte, error) {
	n := len(recipients)
	if n == 0 {
		return nil, ErrNoRecipients
	}
	if n > MaxRecipients {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrTooManyRecipients, n, MaxRecipients)
	}
	for i, r := range recipients {
		if len(r) != KeySize {
			return nil, fmt.Errorf("%w: recipient %d has %d bytes", ErrInvalidRecipientKey, i, len(r))
		}
	}

	r := b.reader()
	eph, err := crypto.GenerateCurveKeypair(r)
	if err != nil {
		return nil, err
	}
	defer eph.Wipe()

	var bodyKey [crypto.SecretBoxKeySize]byte
	if _, err := io.ReadFull(r, bodyKey[:]); err != nil {
		return nil, fmt.Errorf("read body key: %w", err)
	}
	defer crypto.Wipe(bodyKey[:])

	out := make([]byte, 0, Overhead(n)+len(msg))
	out = append(out, eph.PublicKey[:]...)

	var plain [headerPlainSize]byte
	copy(plain[:], bodyKey[:])
	defer crypto.Wipe(plain[:])

	for i, recp := range recipients {
		shared, err := crypto.SharedKey(eph.SecretKey[:], recp, recp)
		if err != nil {
			return nil, fmt.Errorf("%w: recipient %d: %v", ErrInvalidRecipientKey, i, err)
		}
		binary.BigEndian.PutUint16(plain[crypto.SecretBoxKeySize:], uint16(n-i-1))
		header, err := crypto.Seal(shared[:], crypto.ZeroNonce[:], plain[:])
		crypto.Wipe(shared[:])
		if err != nil {
			return nil, err
		}
		out = append(out, header...)
	}

	body, err := crypto.Seal(bodyKey[:], crypto.ZeroNonce[:], msg)
	if err != nil {
		return nil, err
	}
	return append(out, body...), nil
}

// recipientKey derives the key that opens this recipient's header.
// ok is false when the ephemeral key is a low-order point.
func recipientKey(secret, ephemeral []byte) (key [crypto.SecretBoxKeySize]byte, ok bool, err error) {
	if len(secret) != KeySize {
		return key, false, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(secret), KeySize)
	}
	pub, err := crypto.CurvePublicKey(secret)
	if err != nil {
		return key, false, err
	}
	key, err = crypto.SharedKey(secret, ephemeral, pub[:])
	if errors.Is(err, crypto.ErrKeyAgreement) {
		return key, false, nil
	}
	if err != nil {
		return key, false, err
	}
	return key, true, nil
}

// openHeader tries one header slot. It returns the body key and the number
// of headers that follow the slot.
func openHeader(key, slot []byte) ([]byte, int, bool) {
	plain, err := crypto.Open(key, crypto.ZeroNonce[:], slot)
	if err != nil || len(plain) != headerPlainSize {
		return nil, 0, false
	}
	skip := int(binary.BigEndian.Uint16(plain[crypto.SecretBoxKeySize:]))
	return plain[:crypto.SecretBoxKeySize], skip, true
}

// Decrypt opens envelope with a Curve25519 secret key. It returns ok ==
// false, with no error, when secret is not among the recipients or the
// envelope has been tampered with.
func Decrypt(secret, envelope []byte) ([]byte, bool, error) {
	if len(envelope) < KeySize {
		return nil, false, fmt.Errorf("%w: %d bytes", ErrTruncatedEnvelope, len(envelope))
	}

	key, ok, err := recipientKey(secret, envelope[:KeySize])
	if err != nil || !ok {
		return nil, false, err
	}
	defer crypto.Wipe(key[:])

	for i := 0; i < MaxRecipients && KeySize+(i+1)*HeaderSize+crypto.SecretBoxOverhead <= len(envelope); i++ {
		start := KeySize + i*HeaderSize
		bodyKey, skip, ok := openHeader(key[:], envelope[start:start+HeaderSize])
		if !ok {
			continue
		}
		defer crypto.Wipe(bodyKey)

		bodyStart := KeySize + (i+1+skip)*HeaderSize
		if bodyStart+crypto.SecretBoxOverhead > len(envelope) {
			return nil, false, nil
		}
		msg, err := crypto.Open(bodyKey, crypto.ZeroNonce[:], envelope[bodyStart:])
		if err != nil {
			return nil, false, nil
		}
		return msg, true, nil
	}
	return nil, false, nil
}

// DecryptReader is Decrypt for an envelope read from r. Header slots are
// read one at a time, and once this recipient's header opens the remaining
// headers are discarded unread using its skip count.
func DecryptReader(r io.Reader, secret []byte) ([]byte, bool, error) {
	var ephemeral [KeySize]byte
	if _, err := io.ReadFull(r, ephemeral[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, false, ErrTruncatedEnvelope
		}
		return nil, false, err
	}

	key, ok, err := recipientKey(secret, ephemeral[:])
	if err != nil || !ok {
		return nil, false, err
	}
	defer crypto.Wipe(key[:])

	slot := make([]byte, HeaderSize)
	for i := 0; i < MaxRecipients; i++ {
		if _, err := io.ReadFull(r, slot); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, false, nil
			}
			return nil, false, err
		}
		bodyKey, skip, ok := openHeader(key[:], slot)
		if !ok {
			continue
		}
		defer crypto.Wipe(bodyKey)

		if _, err := io.CopyN(io.Discard, r, int64(skip*HeaderSize)); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, false, nil
			}
			return nil, false, err
		}
		body, err := io.ReadAll(r)
		if err != nil {
			return nil, false, err
		}
		msg, err := crypto.Open(bodyKey, crypto.ZeroNonce[:], body)
		if err != nil {
			return nil, false, nil
		}
		return msg, true, nil
	}
	return nil, false, nil
}
