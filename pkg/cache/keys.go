package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer derives cache keys from query inputs. Keys are content addresses:
// the same degree and generator list always map to the same key, regardless
// of where the query originates.
type Keyer interface {
	// OrderKey keys the order of the group generated by gens.
	OrderKey(degree int, gens []string) string

	// MembershipKey keys a membership answer for element in the group
	// generated by gens.
	MembershipKey(degree int, gens []string, element string) string

	// OrbitKey keys the orbit of point under gens.
	OrbitKey(degree int, gens []string, point int) string
}

// DefaultKeyer hashes query inputs with SHA-256. Generator lists are keyed
// as given: the same group presented by a different generator list gets a
// different key, which is safe (a miss, never a wrong hit).
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// OrderKey generates a key for group order caching.
func (k *DefaultKeyer) OrderKey(degree int, gens []string) string {
	return hashKey("order", degree, gens)
}

// MembershipKey generates a key for membership caching.
func (k *DefaultKeyer) MembershipKey(degree int, gens []string, element string) string {
	return hashKey("member", degree, gens, element)
}

// OrbitKey generates a key for orbit caching.
func (k *DefaultKeyer) OrbitKey(degree int, gens []string, point int) string {
	return hashKey("orbit", degree, gens, point)
}

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or users
// sharing one backend get disjoint namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// OrderKey generates a prefixed key for group order caching.
func (k *ScopedKeyer) OrderKey(degree int, gens []string) string {
	return k.prefix + k.inner.OrderKey(degree, gens)
}

// MembershipKey generates a prefixed key for membership caching.
func (k *ScopedKeyer) MembershipKey(degree int, gens []string, element string) string {
	return k.prefix + k.inner.MembershipKey(degree, gens, element)
}

// OrbitKey generates a prefixed key for orbit caching.
func (k *ScopedKeyer) OrbitKey(degree int, gens []string, point int) string {
	return k.prefix + k.inner.OrbitKey(degree, gens, point)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions.
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes the SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
