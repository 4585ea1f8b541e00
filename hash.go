package secid

import (
	"crypto/sha1" //nolint:gosec // type ids only need accidental-collision resistance
	"crypto/sha512"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Fixed public salts, one per derivation. Each is passed to PBKDF2 as the
// UTF-8 bytes of the hex text, not the decoded bytes.
const (
	typeKeySalt       = "2773246209f10fc3381f5ca55c67dac5486e27ff1ce3f698b1859008fe0053e3"
	encryptionKeySalt = "a638abdfb70e39476858543b3216b23ca5d1ac773eaf797a130639a76081c3aa"
	encryptionIVSalt  = "4c66c9e004fb48caaa38aa72dc749f946d0ccfe4edf8f993776388b6349a2895"
	hmacKeySalt       = "c15c63b812d78d8e368f2d702e43dd885f3bcf0e446203951b12cf3ab9715716"
	hashidsSalt       = "11705939e5cad46fa04a6fc838a3fa25c0f50439c946101199b8506ff73a2ebe"
)

// DefaultIterations is the PBKDF2-SHA512 iteration count for every derivation.
const DefaultIterations = 100000

// Derived key sizes in bytes.
const (
	typeSaltLen      = 32
	encryptionKeyLen = 16
	encryptionIVLen  = 16
	hmacKeyLen       = 64
	hashidsSaltLen   = 32
)

// keyMaterial is everything derived from a factory secret.
// It is immutable after deriveKeys returns and shared by pointer.
type keyMaterial struct {
	typeSalt      string // hex, hashed with type names
	encryptionKey []byte
	encryptionIV  []byte
	hmacKey       []byte
	hashidsSalt   string // hex, seeds the hashids alphabet
}

// deriveKeys runs the five salted derivations.
func deriveKeys(secret []byte, iterations int) *keyMaterial {
	derive := func(salt string, n int) []byte {
		return pbkdf2.Key(secret, []byte(salt), iterations, n, sha512.New)
	}
	return &keyMaterial{
		typeSalt:      hex.EncodeToString(derive(typeKeySalt, typeSaltLen)),
		encryptionKey: derive(encryptionKeySalt, encryptionKeyLen),
		encryptionIV:  derive(encryptionIVSalt, encryptionIVLen),
		hmacKey:       derive(hmacKeySalt, hmacKeyLen),
		hashidsSalt:   hex.EncodeToString(derive(hashidsSalt, hashidsSaltLen)),
	}
}

// typeID hashes the salted, lowercased type name and keeps the first two bytes.
// Collisions are possible and are rejected by the registry.
func (k *keyMaterial) typeID(typeName string) uint16 {
	h := sha1.New() //nolint:gosec // see import
	h.Write([]byte(k.typeSalt))
	h.Write([]byte(strings.ToLower(typeName)))
	return binary.BigEndian.Uint16(h.Sum(nil))
}
