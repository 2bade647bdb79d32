// Package strid implements the string-id hashing used to key shader
// in/out variables and uniforms. The hash is a plain FNV-like running
// multiply-add, chosen so it can run identically at shader-authoring time
// (string literals) and at runtime (names built dynamically).
package strid

// Id is a 32-bit string hash. Collisions between distinct strings are the
// caller's responsibility, same as the source this was grounded on.
type Id uint32

// Hash computes h = 0; h = h*31 + c for every byte of s.
func Hash(s string) Id {
	var h uint32
	for i := 0; i < len(s); i++ {
		h = h*31 + uint32(s[i])
	}
	return Id(h)
}
