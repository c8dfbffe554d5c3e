// Package codec defines the per-client translation layer between canonical
// server entries and each MCP client's native configuration file schema.
package codec

import "github.com/klauern/mcpsync/internal/model"

// Codec translates a client's whole config file into a collection of
// canonical server entries and back.
//
// Load returns an empty map when the config file does not exist; a missing
// file is not an error. Save must preserve every non-MCP top-level key in the
// file, each entry's client-specific extra fields, and the client's wrapper
// structure, and must replace the file atomically.
type Codec interface {
	// Client returns the client this codec handles.
	Client() model.Client

	// Path returns the config file path this codec reads and writes.
	Path() string

	// Detect reports whether the client's config file exists.
	Detect() bool

	// Load parses the config file into canonical entries keyed by name.
	Load() (model.ServerMap, error)

	// Save serializes the entries back into the client's native schema.
	Save(model.ServerMap) error
}
