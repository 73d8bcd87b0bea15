package operations

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
	"github.com/arthur-debert/fstour/pkg/fstour/listing"
)

// Delete removes a file or an empty directory. A missing entry yields
// NotFoundError and a directory with children yields NotEmptyError.
func Delete(fsys filesystem.FullFileSystem, p core.Path) error {
	return fsys.Remove(p.String())
}

// DeleteIfExists removes p and reports whether anything was there.
func DeleteIfExists(fsys filesystem.FullFileSystem, p core.Path) (bool, error) {
	err := fsys.Remove(p.String())
	switch {
	case err == nil:
		return true, nil
	case core.IsNotFound(err):
		return false, nil
	default:
		return false, err
	}
}

// DeleteFailure records one entry that could not be removed.
type DeleteFailure struct {
	Path core.Path
	Err  error
}

// DeleteReport is the outcome of a best-effort tree deletion.
type DeleteReport struct {
	Root     core.Path
	Deleted  []core.Path
	Failures []DeleteFailure
}

// OK reports whether every entry was removed.
func (r *DeleteReport) OK() bool {
	return len(r.Failures) == 0
}

// Err joins all per-entry failures, or returns nil when there were none.
func (r *DeleteReport) Err() error {
	if r.OK() {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = fmt.Errorf("%s: %w", f.Path, f.Err)
	}
	return errors.Join(errs...)
}

func (r *DeleteReport) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "deleted %d entries under %s", len(r.Deleted), r.Root)
	if !r.OK() {
		fmt.Fprintf(&b, ", %d failed", len(r.Failures))
	}
	return b.String()
}

// DeleteTree removes root and everything below it, children before parents.
// A failure on one entry is logged and recorded in the report but never
// stops the remaining deletions. Only a failure to enumerate the tree is
// returned as an error.
func DeleteTree(fsys filesystem.FullFileSystem, root core.Path, logger zerolog.Logger) (*DeleteReport, error) {
	entries, err := listing.Collect(listing.Walk(fsys, root))
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s for deletion: %w", root, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Compare(entries[j]) > 0
	})

	report := &DeleteReport{Root: root}
	for _, p := range entries {
		if err := fsys.Remove(p.String()); err != nil {
			logger.Warn().
				Str("path", p.String()).
				Err(err).
				Msg("could not delete entry")
			report.Failures = append(report.Failures, DeleteFailure{Path: p, Err: err})
			continue
		}
		logger.Trace().Str("path", p.String()).Msg("deleted")
		report.Deleted = append(report.Deleted, p)
	}

	logger.Debug().
		Str("root", root.String()).
		Int("deleted", len(report.Deleted)).
		Int("failed", len(report.Failures)).
		Msg("tree deletion finished")

	return report, nil
}
