// Package config owns the single on-disk source of truth for devm's two
// required settings: the projects root directory and the editor launch
// command.
//
// # Load outcomes
//
// [Store.Load] classifies every load attempt three ways so callers dispatch
// without inspecting file contents themselves:
//
//	res, err := store.Load()
//	switch {
//	case err != nil:
//	    // *CorruptError: file unsalvageable without manual repair.
//	    // Anything else: unexpected I/O failure, possibly transient.
//	case res.State == config.StateReady:
//	    use(res.Record)
//	case res.State == config.StateNeedsSetup:
//	    // Normal, recoverable branch: run the setup flow and call
//	    // CreateAndPersist with fresh values.
//	}
//
// A file that is merely missing a value, holds a blank value, or points at a
// directory that no longer validates is always a needs-setup outcome, never
// an error: the user can fix all of those by re-entering two fields.
// Malformed YAML cannot be fixed that way, so it is a *CorruptError.
//
// # Persistence
//
// [Store.CreateAndPersist] applies exactly the same validation the loader
// applies, then writes atomically: serialize, write a temp sibling, fsync,
// rename over the canonical path. A crash mid-write leaves the previous
// file (or its absence) intact.
//
// # Validation
//
// [ValidateDirectory] is the single source of truth for what counts as a
// usable projects directory; the loader downgrades its faults to a
// needs-setup outcome while the persister surfaces them as save errors.
// Collaborators that act on the directory later (project creation, project
// listing) re-invoke it defensively, since validation guarantees are
// point-in-time only.
package config
