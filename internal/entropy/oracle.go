// Package entropy provides the entropy oracle abstraction mentioned in
// the design: every operation that needs randomness (SRS setup, key
// generation, and sampling a test beacon value) takes an io.Reader
// rather than reaching for a global RNG.
//
// In production the beacon's seed comes from an external unbiased
// randomness source; Deterministic below is only meant for
// reproducible tests and benchmarks.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Reader is the entropy oracle interface consumed by setup, gen, and
// sample_seed. crypto/rand.Reader satisfies it for production use.
type Reader = io.Reader

// Secure returns the process-wide cryptographically secure entropy
// oracle.
func Secure() Reader {
	return rand.Reader
}

// Deterministic returns a reproducible entropy oracle derived from seed
// via HKDF extract-then-expand (RFC 5869) over SHA-256, so that test vectors and
// benchmark scenarios (see SPEC_FULL.md S1-S6) can be replayed
// byte-for-byte without stashing large random blobs.
func Deterministic(seed []byte, label string) Reader {
	salt := make([]byte, 8)
	binary.LittleEndian.PutUint64(salt, uint64(len(label)))
	return hkdf.New(newSHA256, seed, salt, []byte("jackpot/entropy/v1/"+label))
}
