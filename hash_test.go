package ssbkeys

import (
	"errors"
	"math"
	"testing"

	"github.com/scuttlekit/ssbkeys/canonical"
)

func TestHash(t *testing.T) {
	// sha256("")
	want := "47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU=.sha256"
	if got := Hash(nil); got != want {
		t.Errorf("Hash(nil) = %s, want %s", got, want)
	}
	if Tag(Hash([]byte("x"))) != TagSHA256 {
		t.Error("Hash() is not tagged sha256")
	}
}

func TestHashValue_LegacyMessage(t *testing.T) {
	const root = "%VBfEJjeNUlxLuK0eyRzVha3TLu5PPWLwsvGgnmAdPas=.sha256"

	msg := canonical.NewMap().
		Set("previous", root).
		Set("author", "@/02iw6SFEPIHl8nMkYSwcCgRWxiG6VP547Wcp1NW8Bo=.ed25519").
		Set("sequence", 2888).
		Set("timestamp", 1457679971682.0).
		Set("hash", "sha256").
		Set("content", canonical.NewMap().
			Set("type", "post").
			Set("text", "oh no\n\nhttps://medium.com/making-instapaper/bookmarklets-are-dead-d470d4bbb626\n\n> The ultimate catch-22 of the new Content Security Policy wording is that it’s intended to benefit the users, by providing additional security from hypothetical malicious add-ons on websites that enforce a Content Security Policy. In the end the bookmarklet has been relegated obsolete by the change, a casualty of one clause in one section of one web specification, and end-users and developers are the ones who will mourn its demise. The path to hell is paved with good intentions.\n\n> I’d probably try to do more about it, but I’m too busy rewriting Instapaper’s bookmarklet into extensions for every major browser.\n\nhttps://www.youtube.com/watch?v=n5diMImYIIA").
			Set("root", root).
			Set("branch", root).
			Set("channel", "javascript")).
		Set("signature", "Pv+LWJumKE8nIOfsZxgMcg/EcR/tZeJShmiVIGizERuiAMzwzTTjg78r+InmJopJwMogEG7/W3FLTnH/EOzLCg==.sig.ed25519")

	got, err := HashValue(msg)
	if err != nil {
		t.Fatalf("HashValue() error = %v", err)
	}
	want := "lFluepOmDxEUcZWlLfz0rHU61xLQYxknAEd6z4un8P8=.sha256"
	if got != want {
		t.Errorf("HashValue() = %s, want %s", got, want)
	}

	// The same message decoded from its wire form hashes identically.
	wire, err := canonical.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := canonical.Unmarshal(wire)
	if err != nil {
		t.Fatal(err)
	}
	again, err := HashValue(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if again != want {
		t.Errorf("HashValue(decoded) = %s, want %s", again, want)
	}

	if utf8Hash := Hash(wire); utf8Hash == want {
		t.Error("hashing UTF-8 bytes should not reproduce the legacy id")
	}
}

func TestHashValue_Unencodable(t *testing.T) {
	if _, err := HashValue(math.NaN()); !errors.Is(err, ErrUnencodableValue) {
		t.Errorf("HashValue(NaN) error = %v, want ErrUnencodableValue", err)
	}
}
