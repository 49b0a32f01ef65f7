// Package types defines the game record, the Catalog interface, configuration,
// and the error taxonomy shared by the store, the interaction loop, and the CLI.
//
// Errors fall into three kinds. An *InputError means operator input failed to
// parse or validate and never reached storage. A *StorageError wraps any
// failure from the persistence engine. A missing record is not an error at
// all: UpdateStatus and DeleteGame report it as an affected count of zero.
package types
