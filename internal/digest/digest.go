// Package digest turns a password string into a fixed-length hexadecimal
// digest. The output is a plain one-way hash: no salt and no iteration.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	// DefaultAlgorithm is used when no algorithm is configured.
	DefaultAlgorithm = "sha256"

	// HexLength is the length of every digest produced by this package.
	HexLength = 64
)

var constructors = map[string]func() hash.Hash{
	"sha256":   sha256.New,
	"sha3-256": sha3.New256,
	"blake2b-256": func() hash.Hash {
		// A nil key never fails.
		h, _ := blake2b.New256(nil)
		return h
	},
}

// Digester computes digests with a fixed algorithm.
type Digester struct {
	name    string
	newHash func() hash.Hash
}

// New returns a Digester for the named algorithm.
func New(name string) (*Digester, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = DefaultAlgorithm
	}
	ctor, ok := constructors[key]
	if !ok {
		return nil, fmt.Errorf("unknown digest algorithm %q (supported: %s)", name, strings.Join(Algorithms(), ", "))
	}
	return &Digester{name: key, newHash: ctor}, nil
}

// Name returns the algorithm name.
func (d *Digester) Name() string {
	return d.name
}

// Sum returns the lowercase hex digest of the UTF-8 bytes of text.
func (d *Digester) Sum(text string) string {
	h := d.newHash()
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Sum returns the SHA-256 of text as 64 lowercase hex characters.
func Sum(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Algorithms lists the supported algorithm names in sorted order.
func Algorithms() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
