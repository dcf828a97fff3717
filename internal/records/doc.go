// Package records defines the plaintext record kinds stored in a vault:
// login information, notes, file entries, contacts, payment cards and
// history events.
//
// Every record carries creation and modification timestamps and a
// self-checksum over all of its fields. Records are mutated only through
// their Update methods, which bump the modification time and recompute the
// checksum. Fields returns the record as a fields.Map, and the matching
// From<Kind>Fields function rebuilds it, splitting tab-joined multi-value
// fields back into slices.
package records
