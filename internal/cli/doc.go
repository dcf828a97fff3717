// Package cli provides vaultctl's interactive shell.
//
// The App wires a secrets container to persistent storage and optional S3
// backups and runs a read-eval-print loop over stdin. Passwords are read
// without echo; derived keys are wiped after each command.
//
// Commands:
//
//	addkey [id]                  register a key-derivation entry
//	addlogin | addnote | addcard | addcontact | addfile | addhistory
//	                             create a record, sealed under a key or plaintext
//	list                         list key entries, records and secrets
//	show <kind> <i> [plain]      print a record's fields
//	set <kind> <i> <field>       change one field of a sealed record
//	extract <i> [plain]          write a file entry's content to ./exports
//	verify                       report checksum mismatches
//	forget                       drop cached derived keys
//	save                         persist the vault
//	backup | backups | restore [key|latest|url] | share <key>
//	help | exit
//
// Kinds are login, note, file, contact, card and history.
package cli
