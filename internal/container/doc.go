// Package container aggregates plaintext records, secret records and the
// key-derivation entries they are encrypted under.
//
// Add<Kind>Secret and Replace<Kind>Secret come in two shapes: one takes a
// password and derives the key through the named entry, the other takes an
// already derived key. Every call runs the same checks in the same order
// (record present, key identifier known, password or key usable, index in
// range for Replace) before any key is derived, then encrypts the record
// under fresh algorithm parameters and appends or overwrites it. A failed
// call returns an error and leaves the container untouched.
//
// A Container is not safe for concurrent use.
package container
