package codec

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/klauern/mcpsync/internal/model"
)

const (
	// DirPerm is the permission for created config directories (rwxr-x---)
	DirPerm = 0o750
	// FilePerm is the permission for written config files (rw-r--r--)
	FilePerm = 0o644
)

// Document is one client config file decoded into a generic JSON object.
// Top-level keys the codec does not own are carried through save untouched,
// which is what keeps a client's own settings intact across a sync.
type Document struct {
	client model.Client
	path   string
	exists bool

	// Root is the decoded top-level object.
	Root map[string]any
}

// LoadDocument reads and decodes the config file at path. A missing file
// yields a document with an empty root. Editor-style JSON with comments and
// trailing commas (VS Code and Cursor settings allow both) is accepted.
func LoadDocument(client model.Client, path string) (*Document, error) {
	doc := &Document{
		client: client,
		path:   path,
		Root:   make(map[string]any),
	}

	// #nosec G304 - path comes from discovery or explicit user config
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return doc, nil
		}
		return nil, &MalformedError{Client: client, Path: path, Err: err}
	}
	doc.exists = true

	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, &MalformedError{Client: client, Path: path, Err: err}
	}

	if err := json.Unmarshal(std, &doc.Root); err != nil {
		return nil, &MalformedError{Client: client, Path: path, Err: err}
	}

	return doc, nil
}

// Exists reports whether the file was present when the document was loaded.
func (d *Document) Exists() bool {
	return d.exists
}

// Path returns the file path backing the document.
func (d *Document) Path() string {
	return d.path
}

// Save serializes the document and atomically replaces the config file.
// The content is written to a temporary file in the same directory and
// renamed into place so a crash mid-write never leaves a torn config.
func (d *Document) Save() error {
	data, err := json.MarshalIndent(d.Root, "", "  ")
	if err != nil {
		return &WriteError{Client: d.client, Path: d.path, Err: err}
	}
	data = append(data, '\n')

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return &WriteError{Client: d.client, Path: d.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(d.path)+".tmp-*")
	if err != nil {
		return &WriteError{Client: d.client, Path: d.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return &WriteError{Client: d.client, Path: d.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Client: d.client, Path: d.path, Err: err}
	}
	if err := os.Chmod(tmpName, FilePerm); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Client: d.client, Path: d.path, Err: err}
	}

	if err := os.Rename(tmpName, d.path); err != nil {
		_ = os.Remove(tmpName)
		return &WriteError{Client: d.client, Path: d.path, Err: err}
	}

	d.exists = true
	return nil
}
