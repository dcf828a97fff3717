// Package secrets implements encrypted secret records.
//
// A secret wraps the field map of one plaintext record. The map is
// serialized by the suite's codec, encrypted with a derived key and the
// secret's algorithm parameters, and protected by a checksum over the key
// identifier, the ciphertext and the algorithm parameters. No plaintext is
// kept on the secret itself.
//
// Reads (Get, GetFields and the named getters) validate the key, decrypt
// and structurally decode the payload, and return common.ErrInvalidKey or
// common.ErrMalformedPayload on failure. Set rewrites the whole record under
// fresh IV material and leaves the secret untouched unless every step
// succeeds.
package secrets
