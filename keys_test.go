package ssbkeys

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

const (
	fixedPublic  = "1nf1T1tUSa43dWglCHzyKIxV61jG/EeeL1Xq1Nk8I3U=.ed25519"
	fixedPrivate = "GO0Lv5BvcuuJJdHrokHoo0PmCDC/XjO/SZ6H+ddq4UvWd/VPW1RJrjd1aCUIfPIojFXrWMb8R54vVerU2TwjdQ==.ed25519"
	fixedID      = "@1nf1T1tUSa43dWglCHzyKIxV61jG/EeeL1Xq1Nk8I3U=.ed25519"

	zeroSeedPublic = "O2onvM62pC1io6jQKm8Nc2UyFXcd4kOmOsBIoYtZ2ik=.ed25519"
	onesSeedPublic = "iojj3XQJ8ZX9UtstPLpdcspnCb8dlBIb83SIAbQPb1w=.ed25519"
)

func fixedKeypair(t *testing.T) *Keypair {
	t.Helper()
	priv, err := ToBytes(fixedPrivate)
	if err != nil {
		t.Fatalf("ToBytes() error = %v", err)
	}
	k, err := KeypairFromPrivate(priv)
	if err != nil {
		t.Fatalf("KeypairFromPrivate() error = %v", err)
	}
	return k
}

func mustGenerate(t *testing.T) *Keypair {
	t.Helper()
	k, err := Generate()
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return k
}

func TestGenerate(t *testing.T) {
	k := mustGenerate(t)

	if k.Curve != CurveEd25519 {
		t.Errorf("Curve = %q, want %q", k.Curve, CurveEd25519)
	}
	if len(k.Public) != PublicKeySize {
		t.Errorf("len(Public) = %d, want %d", len(k.Public), PublicKeySize)
	}
	if len(k.Private) != PrivateKeySize {
		t.Errorf("len(Private) = %d, want %d", len(k.Private), PrivateKeySize)
	}
	if k.ID != "@"+k.PublicString() {
		t.Errorf("ID = %q, want %q", k.ID, "@"+k.PublicString())
	}

	other := mustGenerate(t)
	if k.Equal(other) {
		t.Error("two generated keypairs are equal")
	}
}

func TestGenerateFromSeed(t *testing.T) {
	tests := []struct {
		name string
		seed []byte
		want string
	}{
		{"zero seed", make([]byte, 32), zeroSeedPublic},
		{"ones seed", bytes.Repeat([]byte{1}, 32), onesSeedPublic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k1, err := GenerateFromSeed(tt.seed)
			if err != nil {
				t.Fatalf("GenerateFromSeed() error = %v", err)
			}
			k2, err := GenerateFromSeed(tt.seed)
			if err != nil {
				t.Fatalf("GenerateFromSeed() error = %v", err)
			}
			if !k1.Equal(k2) {
				t.Error("same seed produced different keypairs")
			}
			if got := k1.PublicString(); got != tt.want {
				t.Errorf("PublicString() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestGenerateFromSeed_InvalidSeed(t *testing.T) {
	for _, size := range []int{0, 31, 33, 64} {
		if _, err := GenerateFromSeed(make([]byte, size)); !errors.Is(err, ErrInvalidSeed) {
			t.Errorf("GenerateFromSeed(%d bytes) error = %v, want ErrInvalidSeed", size, err)
		}
	}
}

func TestKeypairFromPrivate_FixedKey(t *testing.T) {
	k := fixedKeypair(t)

	if got := k.PublicString(); got != fixedPublic {
		t.Errorf("PublicString() = %s, want %s", got, fixedPublic)
	}
	if got := k.PrivateString(); got != fixedPrivate {
		t.Errorf("PrivateString() = %s, want %s", got, fixedPrivate)
	}
	if k.ID != fixedID {
		t.Errorf("ID = %s, want %s", k.ID, fixedID)
	}
}

func TestKeypairFromPrivate_Invalid(t *testing.T) {
	k := mustGenerate(t)

	mismatched := bytes.Clone(k.Private)
	mismatched[40] ^= 0xff

	for name, priv := range map[string][]byte{
		"seed only":         k.Private[:32],
		"too long":          append(bytes.Clone(k.Private), 0),
		"mismatched public": mismatched,
	} {
		if _, err := KeypairFromPrivate(priv); !errors.Is(err, ErrInvalidPrivateKeyFormat) {
			t.Errorf("%s: error = %v, want ErrInvalidPrivateKeyFormat", name, err)
		}
	}
}

func TestEncodeDecodeKeypair_RoundTrip(t *testing.T) {
	for i := 0; i < 5; i++ {
		k := mustGenerate(t)

		text, err := EncodeKeypair(k)
		if err != nil {
			t.Fatalf("EncodeKeypair() error = %v", err)
		}
		decoded, err := DecodeKeypair(text)
		if err != nil {
			t.Fatalf("DecodeKeypair() error = %v\n%s", err, text)
		}
		if !decoded.Equal(k) {
			t.Errorf("round trip mismatch for %s", k.ID)
		}
	}
}

func TestEncodeKeypair_Format(t *testing.T) {
	text, err := EncodeKeypair(fixedKeypair(t))
	if err != nil {
		t.Fatalf("EncodeKeypair() error = %v", err)
	}
	want := `{
  "curve": "ed25519",
  "public": "` + fixedPublic + `",
  "private": "` + fixedPrivate + `",
  "id": "` + fixedID + `"
}`
	if text != want {
		t.Errorf("EncodeKeypair() =\n%s\nwant\n%s", text, want)
	}
}

func TestDecodeKeypair_Forms(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "strict json",
			text: `{"curve":"ed25519","public":"` + fixedPublic + `","private":"` + fixedPrivate + `","id":"` + fixedID + `"}`,
		},
		{
			name: "relaxed literal",
			text: "{ curve: 'ed25519',\n\t\t  public: '" + fixedPublic + "',\n\t\t  private: '" + fixedPrivate + "',\n\t\t  id: '" + fixedID + "' }",
		},
		{
			name: "relaxed literal with spaces",
			text: "{ curve: 'ed25519',\n  public: '" + fixedPublic + "',\n  private: '" + fixedPrivate + "',\n  id: '" + fixedID + "' }",
		},
	}

	want := fixedKeypair(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeKeypair(tt.text)
			if err != nil {
				t.Fatalf("DecodeKeypair() error = %v", err)
			}
			if !got.Equal(want) {
				t.Errorf("DecodeKeypair() = %s, want %s", got.ID, want.ID)
			}
		})
	}
}

func TestDecodeKeypair_Malformed(t *testing.T) {
	other := mustGenerate(t)

	field := func(curve, public, private, id string) string {
		b, _ := json.Marshal(map[string]string{"curve": curve, "public": public, "private": private, "id": id})
		return string(b)
	}

	tests := []struct {
		name      string
		text      string
		wantField string
	}{
		{"empty", "", ""},
		{"not an object", "this is invalid content", ""},
		{"array", "[1, 2]", ""},
		{"missing curve", field("", fixedPublic, fixedPrivate, fixedID), "curve"},
		{"missing public", field("ed25519", "", fixedPrivate, fixedID), "public"},
		{"missing private", field("ed25519", fixedPublic, "", fixedID), "private"},
		{"missing id", field("ed25519", fixedPublic, fixedPrivate, ""), "id"},
		{"unknown curve", field("secp256k1", fixedPublic, fixedPrivate, fixedID), "curve"},
		{"bad base64", field("ed25519", "not base64!.ed25519", fixedPrivate, fixedID), "public"},
		{"short public", field("ed25519", "AAAA.ed25519", fixedPrivate, fixedID), "public"},
		{"short private", field("ed25519", fixedPublic, "AAAA.ed25519", fixedID), "private"},
		{"public from other key", field("ed25519", other.PublicString(), fixedPrivate, fixedID), "public"},
		{"id from other key", field("ed25519", fixedPublic, fixedPrivate, other.ID), "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeKeypair(tt.text)
			if !errors.Is(err, ErrMalformedKeyText) {
				t.Fatalf("DecodeKeypair() error = %v, want ErrMalformedKeyText", err)
			}
			var kte *KeyTextError
			if !errors.As(err, &kte) {
				t.Fatalf("error %T is not *KeyTextError", err)
			}
			if kte.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", kte.Field, tt.wantField)
			}
		})
	}
}

func TestDecodeKeypair_UnsupportedCurve(t *testing.T) {
	text := `{"curve":"secp256k1","public":"` + fixedPublic + `","private":"` + fixedPrivate + `","id":"` + fixedID + `"}`
	if _, err := DecodeKeypair(text); !errors.Is(err, ErrUnsupportedCurve) {
		t.Errorf("DecodeKeypair() error = %v, want ErrUnsupportedCurve", err)
	}
}

func TestKeypair_JSON(t *testing.T) {
	k := fixedKeypair(t)

	b, err := json.Marshal(k)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var decoded Keypair
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !decoded.Equal(k) {
		t.Error("JSON round trip mismatch")
	}

	if err := json.Unmarshal([]byte(`{"curve":"ed25519"}`), &decoded); !errors.Is(err, ErrMalformedKeyText) {
		t.Errorf("json.Unmarshal() error = %v, want ErrMalformedKeyText", err)
	}

	if _, err := json.Marshal(&Keypair{Curve: CurveEd25519}); err == nil {
		t.Error("expected error marshalling an empty keypair")
	}
}

func TestKeypair_EqualCloneZero(t *testing.T) {
	k := mustGenerate(t)
	c := k.Clone()

	if !c.Equal(k) {
		t.Fatal("Clone() is not Equal to original")
	}

	c.Zero()
	if bytes.Equal(c.Private, k.Private) {
		t.Error("Zero() on the clone did not change its private key")
	}
	if !bytes.Equal(c.Private, make([]byte, PrivateKeySize)) {
		t.Error("Zero() left non-zero bytes")
	}
	if c.Equal(k) {
		t.Error("zeroed clone still Equal to original")
	}
	if len(k.Private) != PrivateKeySize || bytes.Equal(k.Private, make([]byte, PrivateKeySize)) {
		t.Error("Zero() on the clone affected the original")
	}

	var nilKey *Keypair
	if !nilKey.Equal(nil) || nilKey.Equal(k) || nilKey.Clone() != nil {
		t.Error("nil keypair handling")
	}
	nilKey.Zero()
}
