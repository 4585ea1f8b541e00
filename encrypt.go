package secid

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
)

const (
	// tagLen is the truncated HMAC-SHA256 length appended to every envelope.
	tagLen = 8

	// MinEnvelopeLen is the shortest decoded envelope worth decrypting:
	// a five byte string header plus the tag.
	MinEnvelopeLen = stringHeaderLen + tagLen
)

// envelope implements encrypt-then-MAC with AES-128-CTR and a truncated
// HMAC-SHA256 over the ciphertext. Key and IV are fixed per factory so
// serialization is deterministic.
type envelope struct {
	block   cipher.Block
	iv      []byte
	hmacKey []byte
}

func newEnvelope(keys *keyMaterial) (*envelope, error) {
	block, err := aes.NewCipher(keys.encryptionKey)
	if err != nil {
		return nil, fmt.Errorf("envelope cipher: %w", err)
	}
	return &envelope{
		block:   block,
		iv:      keys.encryptionIV,
		hmacKey: keys.hmacKey,
	}, nil
}

// seal returns ciphertext || tag.
func (e *envelope) seal(plaintext []byte) []byte {
	out := make([]byte, len(plaintext), len(plaintext)+tagLen)
	cipher.NewCTR(e.block, e.iv).XORKeyStream(out, plaintext)
	return append(out, e.tag(out)...)
}

// open decrypts raw and reports whether its tag verifies, as 1 or 0.
// Decryption always runs so the caller's verdict does not depend on
// which check failed first. raw must be at least MinEnvelopeLen long.
func (e *envelope) open(raw []byte) (plaintext []byte, tagOK int) {
	body := raw[:len(raw)-tagLen]
	claimed := raw[len(raw)-tagLen:]

	plaintext = make([]byte, len(body))
	cipher.NewCTR(e.block, e.iv).XORKeyStream(plaintext, body)

	return plaintext, tagsEqual(e.tag(body), claimed)
}

func (e *envelope) tag(ciphertext []byte) []byte {
	mac := hmac.New(sha256.New, e.hmacKey)
	mac.Write(ciphertext)
	return mac.Sum(nil)[:tagLen]
}

// tagsEqual compares in constant time. The shorter input is zero padded so
// the comparison never exits early on length; a length mismatch still fails.
func tagsEqual(a, b []byte) int {
	n := max(len(a), len(b))
	pa := make([]byte, n)
	pb := make([]byte, n)
	copy(pa, a)
	copy(pb, b)
	sameLen := subtle.ConstantTimeEq(int32(len(a)), int32(len(b))) // #nosec G115 -- tag sized inputs
	return subtle.ConstantTimeCompare(pa, pb) & sameLen
}
