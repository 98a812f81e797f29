package domain

import (
	"crypto/rand"
	"encoding/hex"
)

// idBytes is the number of random bytes in a document identifier.
// 16 bytes gives 128 bits of entropy, so collisions are negligible
// and no existence check is performed before use.
const idBytes = 16

// IDLength is the length of a document identifier on the wire:
// a fixed-width lowercase hexadecimal string.
const IDLength = idBytes * 2

// NewDocumentID generates a fresh random document identifier.
func NewDocumentID() string {
	buf := make([]byte, idBytes)
	// rand.Read never returns an error on supported platforms.
	if _, err := rand.Read(buf); err != nil {
		panic("domain: crypto/rand unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
