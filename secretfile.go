package ssbkeys

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSecretFileName is the conventional name of a secret file inside an
// application directory.
const DefaultSecretFileName = "secret"

var secretHeader = []string{
	"# WARNING: Never show this to anyone.",
	"# WARNING: Never edit it or use it on multiple devices at once.",
	"#",
	"# This is your SECRET, it gives you magical powers. With your secret you can",
	"# sign your messages so that your friends can verify that the messages came",
	"# from you. If anyone learns your secret, they can use it to impersonate you.",
	"#",
	"# If you use this secret on more than one device you will create a fork and",
	"# your friends will stop replicating your content.",
	"#",
}

// FormatSecret renders k as secret file text. The payload is the keypair
// text, or with legacy set just the tagged private key. The public id is
// repeated in a trailing comment.
func FormatSecret(k *Keypair, legacy bool) (string, error) {
	var payload string
	if legacy {
		if err := k.validate(); err != nil {
			return "", err
		}
		payload = k.PrivateString()
	} else {
		text, err := EncodeKeypair(k)
		if err != nil {
			return "", err
		}
		payload = text
	}

	var b strings.Builder
	for _, line := range secretHeader {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(payload)
	b.WriteString("\n#\n")
	b.WriteString("# The only part of this file that's safe to share is your public name:\n")
	b.WriteString("#\n")
	b.WriteString("#   " + k.ID + "\n")
	return b.String(), nil
}

// ParseSecret reads secret file text. Lines starting with '#' are ignored;
// what remains is either keypair text or a bare tagged private key.
func ParseSecret(text string) (*Keypair, error) {
	var payload []string
	for _, line := range strings.FieldsFunc(text, func(r rune) bool { return r == '\n' || r == '\r' }) {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		payload = append(payload, line)
	}

	body := strings.TrimSpace(strings.Join(payload, "\n"))
	if body == "" {
		return nil, &KeyTextError{Err: errors.New("no key in secret text")}
	}
	if strings.HasPrefix(body, "{") {
		return DecodeKeypair(body)
	}

	private, err := ToBytes(body)
	if err != nil {
		return nil, &KeyTextError{Field: "private", Err: err}
	}
	k, err := KeypairFromPrivate(private)
	if err != nil {
		return nil, &KeyTextError{Field: "private", Err: err}
	}
	return k, nil
}

// CreateSecretFile generates a keypair and writes it to path with mode 0600.
// Missing parent directories are created. An existing file is never
// overwritten.
func CreateSecretFile(path string, legacy bool) (*Keypair, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	k, err := Generate()
	if err != nil {
		return nil, err
	}
	if err := WriteSecretFile(path, k, legacy); err != nil {
		k.Zero()
		return nil, err
	}
	return k, nil
}

// WriteSecretFile writes k to a new file at path.
func WriteSecretFile(path string, k *Keypair, legacy bool) error {
	if path == "" {
		return ErrEmptyPath
	}
	text, err := FormatSecret(k, legacy)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create secret directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create secret file: %w", err)
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return fmt.Errorf("write secret file: %w", err)
	}
	return f.Close()
}

// LoadSecretFile reads the keypair stored at path.
func LoadSecretFile(path string) (*Keypair, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read secret file: %w", err)
	}
	return ParseSecret(string(data))
}
