package uid

import (
	"crypto/rand"
	"encoding/hex"
)

// OpaqueToken generates unguessable credential strings: 32 bytes from
// crypto/rand, hex encoded (256 bits of entropy).
//
// Use it for anything handed to a client that must not be forgeable, such as
// session tokens. For plain identifiers use UUID or Snowflake instead.
type OpaqueToken struct{}

// NewOpaqueToken returns an OpaqueToken generator.
func NewOpaqueToken() *OpaqueToken {
	return &OpaqueToken{}
}

// Generate returns a new 64-char hex token.
func (o *OpaqueToken) Generate() string {
	var raw [32]byte
	// crypto/rand.Read never fails since go1.24
	_, _ = rand.Read(raw[:])
	return hex.EncodeToString(raw[:])
}
