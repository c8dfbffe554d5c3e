package sync

import (
	"strings"

	"github.com/klauern/mcpsync/internal/logging"
	"github.com/klauern/mcpsync/internal/model"
)

// Add writes a single server into one client's config. Fails with
// DuplicateServerError when the name exists, unless replace is set. The
// entry is validated before anything is touched.
func (e *Engine) Add(client model.Client, server model.Server, replace, withBackup bool) error {
	if err := server.Validate(); err != nil {
		return err
	}

	c, err := e.registry.Resolve(client)
	if err != nil {
		return err
	}

	servers, err := c.Load()
	if err != nil {
		return err
	}
	if _, exists := servers[server.Name]; exists && !replace {
		return &DuplicateServerError{Client: client, Name: server.Name}
	}

	if withBackup {
		if _, err := e.backups.Snapshot(client, c.Path(), "pre-add "+server.Name); err != nil {
			logging.Warn("backup failed, continuing",
				logging.Client(string(client)),
				logging.Err(err),
			)
		}
	}

	servers[server.Name] = server
	if err := c.Save(servers); err != nil {
		return err
	}

	logging.Info("server added",
		logging.Client(string(client)),
		logging.Server(server.Name),
	)
	return nil
}

// Remove deletes a named server from one client's config, snapshotting
// the file first. Fails with ServerNotFoundError when the name is absent.
func (e *Engine) Remove(client model.Client, name string, withBackup bool) error {
	c, err := e.registry.Resolve(client)
	if err != nil {
		return err
	}

	servers, err := c.Load()
	if err != nil {
		return err
	}
	if _, exists := servers[name]; !exists {
		return &ServerNotFoundError{Client: client, Name: name}
	}

	if withBackup {
		if _, err := e.backups.Snapshot(client, c.Path(), "pre-remove "+name); err != nil {
			logging.Warn("backup failed, continuing",
				logging.Client(string(client)),
				logging.Err(err),
			)
		}
	}

	delete(servers, name)
	if err := c.Save(servers); err != nil {
		return err
	}

	logging.Info("server removed",
		logging.Client(string(client)),
		logging.Server(name),
	)
	return nil
}

// List returns one client's servers sorted by name, optionally filtered
// by a case-insensitive substring match. Pure read, nothing is written.
func (e *Engine) List(client model.Client, filter string) ([]model.Server, error) {
	c, err := e.registry.Resolve(client)
	if err != nil {
		return nil, err
	}

	servers, err := c.Load()
	if err != nil {
		return nil, err
	}

	// Names() is already sorted.
	out := make([]model.Server, 0, len(servers))
	for _, name := range servers.Names() {
		if filter != "" && !strings.Contains(strings.ToLower(name), strings.ToLower(filter)) {
			continue
		}
		out = append(out, servers[name])
	}
	return out, nil
}
