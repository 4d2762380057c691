// Package cli is the presentation layer of TrackStudent.
//
// It offers two front ends over the same App:
//
//   - an interactive text menu (the default command), driven by Run;
//   - cobra subcommands (add, find, update, remove, report) for scripts.
//
// Field values are validated here with the validation package before they
// reach the store, because the store applies whatever it is given. Store
// outcomes (not found, duplicate id, failed save) are reported to the user
// as messages; only input errors such as EOF end the menu loop.
//
// Execute wires configuration, logging and the storage backend, then runs
// the selected command.
package cli
