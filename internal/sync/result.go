package sync

import (
	"fmt"
	"strings"

	"github.com/klauern/mcpsync/internal/model"
)

// Action classifies what happened to one server on one target.
type Action string

const (
	// ActionAdded indicates the server was new to the target.
	ActionAdded Action = "added"

	// ActionUpdated indicates an existing entry was replaced by the
	// source version.
	ActionUpdated Action = "updated"

	// ActionUnchanged indicates the target already had an identical entry.
	ActionUnchanged Action = "unchanged"

	// ActionSkipped indicates a conflicting entry was left alone.
	ActionSkipped Action = "skipped"
)

// ServerResult is the outcome for a single server on a single target.
type ServerResult struct {
	Name   string
	Action Action
	// Reason explains a skip.
	Reason string
}

// TargetReport is the outcome for one target client.
type TargetReport struct {
	Client  model.Client
	Servers []ServerResult
	// Err is set when the target as a whole failed (unreadable config,
	// failed save). Per-server classifications before the failure are
	// still present.
	Err error
}

// Added returns the names of servers added to this target.
func (tr *TargetReport) Added() []string { return tr.names(ActionAdded) }

// Updated returns the names of servers overwritten on this target.
func (tr *TargetReport) Updated() []string { return tr.names(ActionUpdated) }

// Unchanged returns the names of servers already in sync.
func (tr *TargetReport) Unchanged() []string { return tr.names(ActionUnchanged) }

// Skipped returns the names of conflicting servers left untouched.
func (tr *TargetReport) Skipped() []string { return tr.names(ActionSkipped) }

func (tr *TargetReport) names(action Action) []string {
	var out []string
	for _, sr := range tr.Servers {
		if sr.Action == action {
			out = append(out, sr.Name)
		}
	}
	return out
}

// Changed returns how many servers were added or updated.
func (tr *TargetReport) Changed() int {
	return len(tr.Added()) + len(tr.Updated())
}

// Success reports whether the target completed without error.
func (tr *TargetReport) Success() bool {
	return tr.Err == nil
}

// Report is the complete outcome of one sync operation.
type Report struct {
	Source  model.Client
	Targets []TargetReport
	DryRun  bool
}

// Success reports whether every target completed without error.
func (r *Report) Success() bool {
	for _, tr := range r.Targets {
		if !tr.Success() {
			return false
		}
	}
	return true
}

// Failed returns the targets that errored.
func (r *Report) Failed() []TargetReport {
	var out []TargetReport
	for _, tr := range r.Targets {
		if tr.Err != nil {
			out = append(out, tr)
		}
	}
	return out
}

// Summary returns a human-readable summary of the whole run.
func (r *Report) Summary() string {
	var sb strings.Builder

	if r.DryRun {
		sb.WriteString("Dry run - no changes made\n")
	}
	sb.WriteString(fmt.Sprintf("Synced from %s\n", r.Source))

	for _, tr := range r.Targets {
		sb.WriteString(fmt.Sprintf("  %s:", tr.Client))
		if tr.Err != nil {
			sb.WriteString(fmt.Sprintf(" FAILED: %v\n", tr.Err))
			continue
		}
		sb.WriteString(fmt.Sprintf(" %d added, %d updated, %d unchanged, %d skipped\n",
			len(tr.Added()), len(tr.Updated()), len(tr.Unchanged()), len(tr.Skipped())))

		for _, sr := range tr.Servers {
			if sr.Action == ActionSkipped {
				sb.WriteString(fmt.Sprintf("    - %s skipped: %s\n", sr.Name, sr.Reason))
			}
		}
	}
	return sb.String()
}
