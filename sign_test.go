package ssbkeys

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/scuttlekit/ssbkeys/canonical"
)

const zeroSeedSignature = "asU/lslEJEFfqquLuyMPy00VfxA5TakLp5aKgUF7sNUpSlxxU2/Uvoc4M1X0CJH+L4ZxR9dpUkeA76Zlyxr5BQ==.sig.ed25519"

func TestSign_ZeroSeedScenario(t *testing.T) {
	k0, err := GenerateFromSeed(make([]byte, 32))
	if err != nil {
		t.Fatal(err)
	}
	k1, err := GenerateFromSeed(bytes.Repeat([]byte{1}, 32))
	if err != nil {
		t.Fatal(err)
	}
	msg := []byte("secure scuttlebutt")

	sig, err := Sign(k0.Private, msg)
	if err != nil {
		t.Fatalf("Sign() error = %v", err)
	}
	if sig != zeroSeedSignature {
		t.Errorf("Sign() = %s, want %s", sig, zeroSeedSignature)
	}

	ok, err := k0.Verify(sig, msg)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if !ok {
		t.Error("signature does not verify against its own key")
	}

	ok, err = k1.Verify(sig, msg)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if ok {
		t.Error("signature verifies against an unrelated key")
	}
}

func TestSignVerify_Messages(t *testing.T) {
	messages := [][]byte{
		nil,
		[]byte("secure scuttlebutt"),
		{0x00, 0xff, 0x10},
		bytes.Repeat([]byte("long "), 1000),
	}

	for _, msg := range messages {
		k := mustGenerate(t)
		sig, err := k.Sign(msg)
		if err != nil {
			t.Fatalf("Sign() error = %v", err)
		}
		raw, err := ToBytes(sig)
		if err != nil {
			t.Fatal(err)
		}

		ok, err := Verify(k.Public, raw, msg)
		if err != nil || !ok {
			t.Errorf("Verify() = %v, %v; want true, nil", ok, err)
		}

		altered := append(bytes.Clone(msg), 'x')
		ok, err = Verify(k.Public, raw, altered)
		if err != nil || ok {
			t.Errorf("Verify(altered) = %v, %v; want false, nil", ok, err)
		}
	}
}

func TestSignVerify_InvalidFormats(t *testing.T) {
	k := mustGenerate(t)
	sig := make([]byte, SignatureSize)

	if _, err := Sign(k.Private[:32], []byte("m")); !errors.Is(err, ErrInvalidPrivateKeyFormat) {
		t.Errorf("Sign(32-byte key) error = %v, want ErrInvalidPrivateKeyFormat", err)
	}
	if _, err := Verify(k.Public[:31], sig, nil); !errors.Is(err, ErrInvalidPublicKeyFormat) {
		t.Errorf("Verify(31-byte key) error = %v, want ErrInvalidPublicKeyFormat", err)
	}
	if _, err := Verify(k.Public, sig[:63], nil); !errors.Is(err, ErrInvalidSignatureFormat) {
		t.Errorf("Verify(63-byte signature) error = %v, want ErrInvalidSignatureFormat", err)
	}

	// A well-formed but wrong signature is a result, not an error.
	ok, err := Verify(k.Public, sig, []byte("m"))
	if err != nil || ok {
		t.Errorf("Verify(zero signature) = %v, %v; want false, nil", ok, err)
	}
}

func TestSignString_VerifyString(t *testing.T) {
	k := fixedKeypair(t)

	sig, err := SignString(fixedPrivate, "hello")
	if err != nil {
		t.Fatalf("SignString() error = %v", err)
	}

	for _, pub := range []string{fixedPublic, fixedID} {
		ok, err := VerifyString(pub, sig, "hello")
		if err != nil {
			t.Fatalf("VerifyString(%s) error = %v", pub, err)
		}
		if !ok {
			t.Errorf("VerifyString(%s) = false", pub)
		}
	}

	if ok, _ := VerifyString(k.PublicString(), sig, "goodbye"); ok {
		t.Error("VerifyString() accepted a different message")
	}
	if _, err := VerifyString("not base64!", sig, "hello"); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("VerifyString(bad key) error = %v, want ErrInvalidEncoding", err)
	}
	if _, err := SignString("!!!", "hello"); !errors.Is(err, ErrInvalidEncoding) {
		t.Errorf("SignString(bad key) error = %v, want ErrInvalidEncoding", err)
	}
}

func TestSignValue_VerifyValue(t *testing.T) {
	k := mustGenerate(t)
	v := canonical.NewMap().
		Set("type", "post").
		Set("text", "hello").
		Set("mentions", []any{k.ID})

	sig, err := k.SignValue(v)
	if err != nil {
		t.Fatalf("SignValue() error = %v", err)
	}

	ok, err := k.VerifyValue(sig, v)
	if err != nil || !ok {
		t.Fatalf("VerifyValue() = %v, %v; want true, nil", ok, err)
	}

	// The indented canonical encoding is what gets signed.
	encoded, err := canonical.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	ok, err = k.Verify(sig, encoded)
	if err != nil || !ok {
		t.Errorf("Verify(canonical bytes) = %v, %v; want true, nil", ok, err)
	}
	ok, _ = k.Verify(sig, []byte(`{"type":"post","text":"hello","mentions":["`+k.ID+`"]}`))
	if ok {
		t.Error("signature over the indented form verified against compact JSON")
	}

	// Key order is part of the signed content.
	reordered := canonical.NewMap().
		Set("text", "hello").
		Set("type", "post").
		Set("mentions", []any{k.ID})
	ok, err = k.VerifyValue(sig, reordered)
	if err != nil || ok {
		t.Errorf("VerifyValue(reordered) = %v, %v; want false, nil", ok, err)
	}

	ok, err = VerifyValueString(k.ID, sig, v)
	if err != nil || !ok {
		t.Errorf("VerifyValueString() = %v, %v; want true, nil", ok, err)
	}
}

func TestSignValue_Unencodable(t *testing.T) {
	k := mustGenerate(t)
	if _, err := k.SignValue(map[string]any{"n": math.Inf(1)}); !errors.Is(err, ErrUnencodableValue) {
		t.Errorf("SignValue() error = %v, want ErrUnencodableValue", err)
	}
	if _, err := VerifyValue(k.Public, make([]byte, SignatureSize), math.NaN()); !errors.Is(err, ErrUnencodableValue) {
		t.Errorf("VerifyValue() error = %v, want ErrUnencodableValue", err)
	}
}
