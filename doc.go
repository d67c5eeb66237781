// Package ssbkeys provides identity keys, signatures and confidential
// messaging for Secure Scuttlebutt style feeds.
//
// An identity is an Ed25519 keypair. Keys, signatures, hashes and encrypted
// envelopes travel as tagged strings, base64 followed by a type tag:
//
//	1nf1T1tUSa43dWglCHzyKIxV61jG/EeeL1Xq1Nk8I3U=.ed25519   public key
//	@1nf1T1tUSa43dWglCHzyKIxV61jG/EeeL1Xq1Nk8I3U=.ed25519  identity
//	<64 bytes>.sig.ed25519                                  signature
//	<32 bytes>.sha256                                       hash
//	<envelope>.box                                          private message
//
// Basic usage:
//
//	keys, err := ssbkeys.Generate()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer keys.Zero()
//
//	// Sign the canonical encoding of a value
//	content := canonical.NewMap().Set("type", "post").Set("text", "hello")
//	sig, err := keys.SignValue(content)
//
//	// Encrypt for two identities, readable by either
//	boxed, err := ssbkeys.Box(content, [][]byte{keys.Public, friend.Public})
//
//	// Decrypt; ok is false when keys is not a recipient
//	value, ok, err := keys.Unbox(boxed)
//
// Values are signed, hashed and boxed in their canonical form (see package
// canonical), which is byte-identical to JSON.stringify(value, null, 2) so
// signatures made by other implementations verify here and vice versa.
//
// Cryptographic non-matches are results, not errors: a signature that does
// not verify is false, and an envelope that cannot be opened is ok == false.
// Errors are reserved for malformed input.
package ssbkeys
