package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/listing"
	"github.com/arthur-debert/fstour/pkg/fstour/metadata"
	"github.com/arthur-debert/fstour/pkg/fstour/operations"
	"github.com/arthur-debert/fstour/pkg/fstour/validation"
)

func newStatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stat [path]",
		Short: "Show metadata of an entry",
		Long:  "Show size, ownership, permissions and times of an entry. Symlinks are not followed.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, fsys, _, err := setup(cmd)
			if err != nil {
				return err
			}

			info, err := metadata.Lget(fsys, core.Of(args[0]))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			kind := "file"
			switch {
			case info.IsSymlink:
				kind = "symlink"
			case info.IsDir:
				kind = "directory"
			}
			fmt.Fprintf(out, "Path: %s\n", info.Path)
			fmt.Fprintf(out, "Type: %s\n", kind)
			if info.IsSymlink {
				fmt.Fprintf(out, "Target: %s\n", info.SymlinkTo)
			}
			fmt.Fprintf(out, "Size: %s (%d bytes)\n", info.HumanSize(), info.Size)
			fmt.Fprintf(out, "Permissions: %s %s\n", info.Permissions.Symbolic(), info.Permissions)
			fmt.Fprintf(out, "Owner: %s (%d)\n", info.Owner, info.UID)
			fmt.Fprintf(out, "Group: %s (%d)\n", info.Group, info.GID)
			fmt.Fprintf(out, "Inode: %d\n", info.Inode)
			fmt.Fprintf(out, "Modified: %s (%s)\n", metadata.FormatTime(info.ModifiedAt), humanize.Time(info.ModifiedAt))
			fmt.Fprintf(out, "Accessed: %s (%s)\n", metadata.FormatTime(info.AccessedAt), humanize.Time(info.AccessedAt))
			return nil
		},
	}
}

func newCompareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [a] [b]",
		Short: "Find the first differing byte of two files",
		Long:  "Print the offset of the first differing byte, -1 when the contents are identical, and the BLAKE3 digest of each file.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, fsys, _, err := setup(cmd)
			if err != nil {
				return err
			}

			a, b := core.Of(args[0]), core.Of(args[1])
			idx, err := validation.Mismatch(fsys, a, b)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Mismatch index: %d\n", idx)
			for _, p := range []core.Path{a, b} {
				rec, err := validation.ComputeFileChecksum(fsys, p)
				if err != nil {
					return err
				}
				if rec == nil {
					return fmt.Errorf("%s is a directory", p)
				}
				fmt.Fprintf(out, "Checksum %s: %s\n", p, rec.BLAKE3)
			}
			return nil
		},
	}
}

func newListCommand() *cobra.Command {
	var (
		pattern   string
		recursive bool
		maxDepth  int
	)

	cmd := &cobra.Command{
		Use:   "ls [dir]",
		Short: "List directory entries",
		Long:  "List the children of a directory, optionally filtered by a glob pattern, or walk it recursively.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if recursive && pattern != "" {
				return fmt.Errorf("--glob and --recursive cannot be combined")
			}
			_, fsys, _, err := setup(cmd)
			if err != nil {
				return err
			}

			dir := core.Of(args[0])
			seq := listing.List(fsys, dir)
			switch {
			case recursive:
				seq = listing.Walk(fsys, dir, listing.WithMaxDepth(maxDepth))
			case pattern != "":
				seq = listing.Glob(fsys, dir, pattern)
			}

			out := cmd.OutOrStdout()
			for p, err := range seq {
				if err != nil {
					return err
				}
				fmt.Fprintln(out, p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "glob", "g", "", "only list names matching this pattern")
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "walk the whole tree, root included")
	cmd.Flags().IntVar(&maxDepth, "max-depth", -1, "with --recursive, how deep to descend (-1 is unlimited)")

	return cmd
}

func newRemoveTreeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rmtree [dir]",
		Short: "Delete a directory tree, children first",
		Long:  "Delete every entry under a directory and then the directory itself. Entries that cannot be removed are reported and skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, fsys, logger, err := setup(cmd)
			if err != nil {
				return err
			}

			report, err := operations.DeleteTree(fsys, core.Of(args[0]), logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), report)
			return report.Err()
		},
	}
}
