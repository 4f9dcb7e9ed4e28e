// Package gitlib wraps the parts of libgit2 used to read a repository
// snapshot: commits, trees, blobs and line blame.
package gitlib

import (
	"encoding/hex"
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// HashSize is the size of a SHA-1 object id in bytes.
const HashSize = 20

// ErrBadHash indicates a string that is not a full hex object id.
var ErrBadHash = errors.New("invalid object hash")

// Hash is a git object id.
type Hash [HashSize]byte

// ParseHash decodes a 40-character hex object id.
func ParseHash(s string) (Hash, error) {
	var h Hash

	if hex.DecodedLen(len(s)) != HashSize {
		return h, fmt.Errorf("%w: %q", ErrBadHash, s)
	}

	_, err := hex.Decode(h[:], []byte(s))
	if err != nil {
		return Hash{}, fmt.Errorf("%w: %w", ErrBadHash, err)
	}

	return h, nil
}

// HashFromOid converts a libgit2 Oid to Hash.
func HashFromOid(oid *git2go.Oid) Hash {
	var h Hash
	if oid != nil {
		copy(h[:], oid[:])
	}

	return h
}

// String returns the hex form of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash is all zeros.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// ToOid converts the hash back to a libgit2 Oid.
func (h Hash) ToOid() *git2go.Oid {
	oid := new(git2go.Oid)
	copy(oid[:], h[:])

	return oid
}
