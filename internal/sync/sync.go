// Package sync copies MCP server entries from one client's config into
// others, with conflict resolution, name filtering, and per-target
// failure isolation.
package sync

import (
	"fmt"
	"log/slog"

	"github.com/klauern/mcpsync/internal/backup"
	"github.com/klauern/mcpsync/internal/codec"
	"github.com/klauern/mcpsync/internal/logging"
	"github.com/klauern/mcpsync/internal/model"
	"github.com/klauern/mcpsync/internal/registry"
)

// Options configures synchronization behavior.
type Options struct {
	// Servers restricts the sync to the named entries. Empty means all.
	Servers []string

	// Overwrite resolves conflicts in favor of the source entry.
	// Without it, conflicting entries are skipped and reported.
	Overwrite bool

	// DryRun reports the classification without writing anything.
	DryRun bool

	// Backup snapshots each target's config before writing it.
	Backup bool
}

// DefaultOptions returns the default sync options.
func DefaultOptions() Options {
	return Options{Backup: true}
}

// Engine performs sync operations across client configs.
type Engine struct {
	registry *registry.Registry
	backups  *backup.Store
}

// New creates an Engine backed by the given registry and backup store.
func New(reg *registry.Registry, store *backup.Store) *Engine {
	return &Engine{registry: reg, backups: store}
}

// Sync copies entries from source into each target. Targets are
// processed in order and fail independently: one target's load or save
// error is recorded in its report and the rest continue. The returned
// error is non-nil only for whole-operation failures (unknown client,
// unavailable source, empty name filter).
func (e *Engine) Sync(source model.Client, targets []model.Client, opts Options) (*Report, error) {
	defer logging.Timer("sync")()

	logging.Debug("starting sync",
		logging.Client(string(source)),
		logging.Operation("sync"),
		slog.Bool("overwrite", opts.Overwrite),
		slog.Bool("dry_run", opts.DryRun),
	)

	sourceCodec, err := e.registry.Resolve(source)
	if err != nil {
		return nil, err
	}

	// Resolve every target up front so a bad client id aborts before
	// anything is written.
	targetCodecs := make([]codec.Codec, 0, len(targets))
	for _, target := range targets {
		tc, err := e.registry.Resolve(target)
		if err != nil {
			return nil, err
		}
		targetCodecs = append(targetCodecs, tc)
	}

	if !sourceCodec.Detect() {
		return nil, &SourceUnavailableError{Client: source, Path: sourceCodec.Path()}
	}
	entries, err := sourceCodec.Load()
	if err != nil {
		return nil, &SourceUnavailableError{Client: source, Path: sourceCodec.Path(), Err: err}
	}

	entries, err = filterServers(entries, opts.Servers)
	if err != nil {
		return nil, err
	}

	logging.Debug("loaded source entries",
		logging.Client(string(source)),
		logging.Count(len(entries)),
	)

	report := &Report{Source: source, DryRun: opts.DryRun}
	for _, tc := range targetCodecs {
		report.Targets = append(report.Targets, e.syncTarget(entries, tc, opts))
	}
	return report, nil
}

// filterServers restricts entries to the named subset.
func filterServers(entries model.ServerMap, names []string) (model.ServerMap, error) {
	if len(names) == 0 {
		return entries, nil
	}

	filtered := make(model.ServerMap, len(names))
	var missing []string
	for _, name := range names {
		if s, ok := entries[name]; ok {
			filtered[name] = s
		} else {
			missing = append(missing, name)
		}
	}
	if len(filtered) == 0 {
		return nil, &NoMatchingServersError{Requested: names}
	}
	if len(missing) > 0 {
		logging.Warn("some requested servers are absent from the source",
			slog.Any("missing", missing),
		)
	}
	return filtered, nil
}

// syncTarget applies the source entries to a single target.
func (e *Engine) syncTarget(entries model.ServerMap, tc codec.Codec, opts Options) TargetReport {
	target := tc.Client()
	result := TargetReport{Client: target}

	existing, err := tc.Load()
	if err != nil {
		logging.Error("failed to load target config",
			logging.Client(string(target)),
			logging.Err(err),
		)
		result.Err = err
		return result
	}

	merged := existing.Clone()
	changes := 0
	for _, name := range entries.Names() {
		src := entries[name]
		current, exists := merged[name]

		switch {
		case !exists:
			result.Servers = append(result.Servers, ServerResult{Name: name, Action: ActionAdded})
			// Extra is per-client data; it never follows an entry into
			// another client's file.
			merged[name] = src.WithoutExtra()
			changes++
		case current.Equal(src):
			result.Servers = append(result.Servers, ServerResult{Name: name, Action: ActionUnchanged})
		case opts.Overwrite:
			result.Servers = append(result.Servers, ServerResult{Name: name, Action: ActionUpdated})
			// Keep the target's own extra fields; only canonical data
			// moves across clients.
			updated := src
			updated.Extra = current.Extra
			merged[name] = updated
			changes++
		default:
			result.Servers = append(result.Servers, ServerResult{
				Name:   name,
				Action: ActionSkipped,
				Reason: "differs from existing entry; use overwrite to replace",
			})
		}
	}

	if opts.DryRun || changes == 0 {
		return result
	}

	if opts.Backup {
		if _, err := e.backups.Snapshot(target, tc.Path(), "pre-sync"); err != nil {
			logging.Warn("backup failed, continuing with sync",
				logging.Client(string(target)),
				logging.Err(err),
			)
		}
	}

	if err := tc.Save(merged); err != nil {
		logging.Error("failed to save target config",
			logging.Client(string(target)),
			logging.Err(err),
		)
		result.Err = fmt.Errorf("failed to save %s config: %w", target, err)
		return result
	}

	logging.Info("target synced",
		logging.Client(string(target)),
		logging.Count(changes),
	)
	return result
}
