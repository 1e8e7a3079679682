package ast

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/roach88/modelir/internal/value"
)

// DomainNode prefixes every structural digest. The version suffix allows the
// encoding to change without colliding with older digests.
const DomainNode = "modelir/node/v1"

// Attribute encoding. Every value is self-delimiting so that the encodings of
// two nodes are equal exactly when their attributes are.

func appendString(b []byte, s string) []byte {
	b = binary.AppendUvarint(b, uint64(len(s)))
	return append(b, s...)
}

func appendInt(b []byte, i int64) []byte {
	return binary.AppendVarint(b, i)
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, 1)
	}
	return append(b, 0)
}

func appendLen(b []byte, n int) []byte {
	return binary.AppendUvarint(b, uint64(n))
}

func appendStrings(b []byte, list []string) []byte {
	b = appendLen(b, len(list))
	for _, s := range list {
		b = appendString(b, s)
	}
	return b
}

func appendType(b []byte, t Type) []byte {
	return append(b, byte(t))
}

// appendValue encodes a literal value with a type tag. Int(1) and Double(1)
// therefore encode differently.
func appendValue(b []byte, v value.Value) []byte {
	switch x := v.(type) {
	case value.Bool:
		return appendBool(append(b, 'b'), bool(x))
	case value.Int:
		return appendInt(append(b, 'i'), int64(x))
	case value.Double:
		return binary.BigEndian.AppendUint64(append(b, 'd'), math.Float64bits(float64(x)))
	default:
		return append(b, '-')
	}
}

// Attrs returns the encoded own attributes of n: everything that identifies
// the node except its children and source position.
func Attrs(n Node) []byte {
	if IsNil(n) {
		return nil
	}
	return n.appendAttrs(nil)
}

// Equal reports whether a and b are structurally equal: same kind, same
// attributes and pairwise structurally equal children. Positions are ignored.
// Shared sub-DAGs are compared once.
func Equal(a, b Node) bool {
	return (&equalizer{seen: make(map[[2]Node]bool)}).equal(a, b)
}

type equalizer struct {
	seen map[[2]Node]bool
}

func (q *equalizer) equal(a, b Node) bool {
	an, bn := IsNil(a), IsNil(b)
	if an || bn {
		return an && bn
	}
	if a == b {
		return true
	}
	key := [2]Node{a, b}
	if r, ok := q.seen[key]; ok {
		return r
	}
	r := q.compare(a, b)
	q.seen[key] = r
	return r
}

func (q *equalizer) compare(a, b Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	if !bytes.Equal(a.appendAttrs(nil), b.appendAttrs(nil)) {
		return false
	}
	ac, bc := a.Children(), b.Children()
	if len(ac) != len(bc) {
		return false
	}
	for i := range ac {
		if !q.equal(ac[i], bc[i]) {
			return false
		}
	}
	return true
}

// Digest is a structural hash of a node and everything below it.
type Digest [sha256.Size]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Hasher computes structural digests. Digests are memoized by node identity,
// so a Hasher must not outlive the pass that owns it if nodes can change.
//
// Structurally equal nodes always have equal digests.
type Hasher struct {
	memo map[Node]Digest
	buf  []byte
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{memo: make(map[Node]Digest)}
}

// Sum returns the digest of n. A nil node has the zero digest.
//
// Format: SHA256(DomainNode + 0x00 + kind + attrs + child digests), where each
// child slot contributes a presence byte followed by its digest.
func (h *Hasher) Sum(n Node) Digest {
	if IsNil(n) {
		return Digest{}
	}
	if d, ok := h.memo[n]; ok {
		return d
	}
	children := n.Children()
	childSums := make([]Digest, len(children))
	for i, c := range children {
		childSums[i] = h.Sum(c)
	}

	b := h.buf[:0]
	b = append(b, DomainNode...)
	b = append(b, 0x00)
	b = appendLen(b, int(n.Kind()))
	b = appendString(b, string(n.appendAttrs(nil)))
	b = appendLen(b, len(children))
	for i, c := range children {
		if IsNil(c) {
			b = append(b, 0)
			continue
		}
		b = append(b, 1)
		b = append(b, childSums[i][:]...)
	}
	d := Digest(sha256.Sum256(b))
	h.buf = b
	h.memo[n] = d
	return d
}

// Len returns the number of memoized digests.
func (h *Hasher) Len() int {
	return len(h.memo)
}
