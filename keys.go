package ssbkeys

import (
	"bytes"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/scuttlekit/ssbkeys/internal/crypto"
)

// CurveEd25519 is the only supported curve.
const CurveEd25519 = "ed25519"

// Key sizes.
const (
	SeedSize       = crypto.SeedSize
	PublicKeySize  = crypto.PublicKeySize
	PrivateKeySize = crypto.PrivateKeySize
	SignatureSize  = crypto.SignatureSize
)

// Keypair is an identity: an Ed25519 keypair and the feed id derived from
// its public key.
type Keypair struct {
	Curve   string
	Public  []byte // 32 bytes
	Private []byte // 64 bytes, seed || public
	ID      string // "@" + base64(Public) + ".ed25519"
}

// Generate creates a keypair from a random seed.
func Generate() (*Keypair, error) {
	kp, err := crypto.GenerateSigningKeypair()
	if err != nil {
		return nil, err
	}
	return fromSigning(kp), nil
}

// GenerateFromSeed derives a keypair from a 32-byte seed. The same seed
// always yields the same keypair.
func GenerateFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidSeed, len(seed), SeedSize)
	}
	kp, err := crypto.SigningKeypairFromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}
	return fromSigning(kp), nil
}

// KeypairFromPrivate rebuilds a keypair from a 64-byte private key.
func KeypairFromPrivate(private []byte) (*Keypair, error) {
	kp, err := crypto.SigningKeypairFromPrivateKey(private)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKeyFormat, err)
	}
	return fromSigning(kp), nil
}

func fromSigning(kp *crypto.SigningKeypair) *Keypair {
	return &Keypair{
		Curve:   CurveEd25519,
		Public:  kp.PublicKey,
		Private: kp.PrivateKey,
		ID:      identity(kp.PublicKey),
	}
}

// PublicString returns the tagged public key.
func (k *Keypair) PublicString() string {
	return tagged(k.Public, TagEd25519)
}

// PrivateString returns the tagged private key.
func (k *Keypair) PrivateString() string {
	return tagged(k.Private, TagEd25519)
}

// Equal reports whether both keypairs hold the same four fields.
func (k *Keypair) Equal(other *Keypair) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.Curve == other.Curve &&
		k.ID == other.ID &&
		bytes.Equal(k.Public, other.Public) &&
		subtle.ConstantTimeCompare(k.Private, other.Private) == 1
}

// Clone returns a deep copy of k.
func (k *Keypair) Clone() *Keypair {
	if k == nil {
		return nil
	}
	return &Keypair{
		Curve:   k.Curve,
		Public:  bytes.Clone(k.Public),
		Private: bytes.Clone(k.Private),
		ID:      k.ID,
	}
}

// Zero overwrites the private key. The keypair cannot sign or decrypt
// afterwards.
func (k *Keypair) Zero() {
	if k == nil {
		return
	}
	crypto.Wipe(k.Private)
}

// keyText is the serialized form of a Keypair.
type keyText struct {
	Curve   string `json:"curve" yaml:"curve"`
	Public  string `json:"public" yaml:"public"`
	Private string `json:"private" yaml:"private"`
	ID      string `json:"id" yaml:"id"`
}

// EncodeKeypair returns the text form of k: a JSON object with curve,
// public, private and id fields, indented by two spaces.
func EncodeKeypair(k *Keypair) (string, error) {
	if err := k.validate(); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(k.text(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (k *Keypair) text() keyText {
	return keyText{
		Curve:   k.Curve,
		Public:  k.PublicString(),
		Private: k.PrivateString(),
		ID:      k.ID,
	}
}

func (k *Keypair) validate() error {
	if k == nil {
		return errors.New("nil keypair")
	}
	if k.Curve != CurveEd25519 {
		return fmt.Errorf("%w: %q", ErrUnsupportedCurve, k.Curve)
	}
	if len(k.Public) != PublicKeySize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPublicKeyFormat, len(k.Public), PublicKeySize)
	}
	if len(k.Private) != PrivateKeySize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPrivateKeyFormat, len(k.Private), PrivateKeySize)
	}
	return nil
}

// DecodeKeypair parses keypair text produced by EncodeKeypair. It also
// accepts the relaxed object-literal form with unquoted keys and
// single-quoted values:
//
//	{ curve: 'ed25519', public: '...', private: '...', id: '@...' }
//
// Every field must be present and consistent with the others.
func DecodeKeypair(text string) (*Keypair, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &KeyTextError{Err: errors.New("empty input")}
	}

	var kt keyText
	if err := yaml.Unmarshal([]byte(text), &kt); err != nil {
		return nil, &KeyTextError{Err: err}
	}
	return kt.keypair()
}

func (kt keyText) keypair() (*Keypair, error) {
	missing := func(field string) error {
		return &KeyTextError{Field: field, Err: errors.New("missing")}
	}

	switch {
	case kt.Curve == "":
		return nil, missing("curve")
	case kt.Public == "":
		return nil, missing("public")
	case kt.Private == "":
		return nil, missing("private")
	case kt.ID == "":
		return nil, missing("id")
	}

	if kt.Curve != CurveEd25519 {
		return nil, &KeyTextError{Field: "curve", Err: fmt.Errorf("%w: %q", ErrUnsupportedCurve, kt.Curve)}
	}

	public, err := ToBytes(kt.Public)
	if err != nil {
		return nil, &KeyTextError{Field: "public", Err: err}
	}
	if len(public) != PublicKeySize {
		return nil, &KeyTextError{Field: "public", Err: fmt.Errorf("%w: got %d bytes", ErrInvalidPublicKeyFormat, len(public))}
	}

	private, err := ToBytes(kt.Private)
	if err != nil {
		return nil, &KeyTextError{Field: "private", Err: err}
	}
	k, err := KeypairFromPrivate(private)
	crypto.Wipe(private)
	if err != nil {
		return nil, &KeyTextError{Field: "private", Err: err}
	}
	if !bytes.Equal(k.Public, public) {
		k.Zero()
		return nil, &KeyTextError{Field: "public", Err: errors.New("does not match private key")}
	}
	if kt.ID != k.ID {
		k.Zero()
		return nil, &KeyTextError{Field: "id", Err: errors.New("does not match public key")}
	}
	return k, nil
}

// MarshalJSON encodes k in its text form.
func (k *Keypair) MarshalJSON() ([]byte, error) {
	if err := k.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(k.text())
}

// UnmarshalJSON decodes and validates the text form.
func (k *Keypair) UnmarshalJSON(data []byte) error {
	var kt keyText
	if err := json.Unmarshal(data, &kt); err != nil {
		return &KeyTextError{Err: err}
	}
	decoded, err := kt.keypair()
	if err != nil {
		return err
	}
	*k = *decoded
	return nil
}
