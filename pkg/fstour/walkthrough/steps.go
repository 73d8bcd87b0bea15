package walkthrough

import (
	"fmt"
	"iter"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/listing"
	"github.com/arthur-debert/fstour/pkg/fstour/metadata"
	"github.com/arthur-debert/fstour/pkg/fstour/operations"
	"github.com/arthur-debert/fstour/pkg/fstour/validation"
)

// Text written by the write step.
const (
	TaskContent        = "Hello World!"
	AutoCreatedContent = "this is my string ää öö üü"
)

// DefaultRegistry returns the tour steps in declaration order.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	err := reg.Register(
		Step{Name: "path", Description: "build the notes path and make it absolute", Run: stepPath},
		Step{Name: "modified", Description: "last modified time of the notes file", Run: stepModified},
		Step{Name: "exists", Description: "check the notes file exists", Run: stepExists},
		Step{Name: "size", Description: "size of the notes file", Run: stepSize},
		Step{Name: "compare", Description: "compare the notes file with its copy", Run: stepCompare},
		Step{Name: "owner", Description: "owner of the notes file", Run: stepOwner},
		Step{Name: "temp", Description: "create and delete a temp file and directory", Run: stepTemp},
		Step{Name: "create", Description: "create the tasks directory and task file", Run: stepCreate},
		Step{Name: "permissions", Description: "permission set of the notes file", Run: stepPermissions},
		Step{Name: "write", Description: "write and read back text files", Requires: []string{"create"}, Run: stepWrite},
		Step{Name: "list", Description: "list the tasks directory", Requires: []string{"write"}, Run: stepList},
		Step{Name: "glob", Description: "list text files in the tasks directory", Requires: []string{"write"}, Run: stepGlob},
		Step{Name: "walk", Description: "walk the assets directory", Requires: []string{"write"}, Run: stepWalk},
		Step{Name: "paths", Description: "absolute, normalized and relative paths", Run: stepPaths},
		Step{Name: "move", Description: "move a file into the new-tasks directory", Requires: []string{"create"}, Run: stepMove},
		Step{Name: "cleanup", Description: "delete the tasks directory tree", Requires: []string{"create"}, Run: stepCleanup},
	)
	if err != nil {
		panic(err)
	}
	return reg
}

func stepPath(t *Tour) error {
	p := t.Notes()
	t.Printf("%s", p)
	t.Printf("Absolute path: %s", p.Abs(t.FS.WorkDir()))
	return nil
}

func stepModified(t *Tour) error {
	mtime, err := metadata.LastModified(t.FS, t.Notes())
	if err != nil {
		return err
	}
	t.Printf("Last modified time: %s", metadata.FormatTime(mtime))
	return nil
}

func stepExists(t *Tour) error {
	t.Printf("Exists: %t", metadata.Exists(t.FS, t.Notes()))
	return nil
}

func stepSize(t *Tour) error {
	info, err := metadata.Get(t.FS, t.Notes())
	if err != nil {
		return err
	}
	t.Printf("Size: %s (%d bytes)", info.HumanSize(), info.Size)
	return nil
}

func stepCompare(t *Tour) error {
	idx, err := validation.Mismatch(t.FS, t.Notes(), t.NotesCopy())
	if err != nil {
		return err
	}
	t.Printf("Mismatch index: %d", idx)

	for _, p := range []core.Path{t.Notes(), t.NotesCopy()} {
		rec, err := validation.ComputeFileChecksum(t.FS, p)
		if err != nil {
			return err
		}
		if rec == nil {
			return fmt.Errorf("%s is a directory", p)
		}
		t.Printf("Checksum %s: %s", p, rec.BLAKE3)
	}
	return nil
}

func stepOwner(t *Tour) error {
	owner, err := metadata.Owner(t.FS, t.Notes())
	if err != nil {
		return err
	}
	t.Printf("Owner: %s", owner)
	return nil
}

func stepTemp(t *Tour) error {
	dir := core.Of(t.Config.TempDir)

	tempFile, err := operations.CreateTempFile(t.FS, dir, "temp", ".txt")
	if err != nil {
		return err
	}
	t.Printf("Temp file: %s", tempFile)

	tempDir, err := operations.CreateTempDir(t.FS, dir, "temp")
	if err != nil {
		return err
	}
	t.Printf("Temp directory: %s", tempDir)

	if err := operations.Delete(t.FS, tempFile); err != nil {
		return err
	}
	t.Printf("Temp file deleted")

	if err := operations.Delete(t.FS, tempDir); err != nil {
		return err
	}
	t.Printf("Temp directory deleted")
	return nil
}

func stepCreate(t *Tour) error {
	dir := t.Tasks()
	created, err := operations.EnsureDir(t.FS, dir)
	if err != nil {
		return err
	}
	t.Logger.Debug().Bool("created", created).Str("path", dir.String()).Msg("ensured directory")
	t.Printf("Directory created: %s", dir)

	file := dir.Join("task.txt")
	created, err = operations.EnsureFile(t.FS, file)
	if err != nil {
		return err
	}
	t.Logger.Debug().Bool("created", created).Str("path", file.String()).Msg("ensured file")
	t.Printf("File created: %s", file)
	return nil
}

func stepPermissions(t *Tour) error {
	perms, err := metadata.Permissions(t.FS, t.Notes())
	if err != nil {
		return err
	}
	t.Printf("Permissions: %s", perms)
	return nil
}

func stepWrite(t *Tour) error {
	task := t.Tasks().Join("task.txt")
	if err := operations.WriteString(t.FS, task, TaskContent); err != nil {
		return err
	}
	content, err := operations.ReadString(t.FS, task)
	if err != nil {
		return err
	}
	t.Printf("File content: %s", content)

	auto := t.Tasks().Join("auto-created.txt")
	err = operations.Write(t.FS, auto, []byte(AutoCreatedContent),
		core.OpenCreate, core.OpenTruncate, core.OpenWrite)
	if err != nil {
		return err
	}
	content, err = operations.ReadString(t.FS, auto)
	if err != nil {
		return err
	}
	t.Printf("File (auto created and edited) content: %s", content)
	return nil
}

func stepList(t *Tour) error {
	t.Printf("Files in directory (%s): ", t.Tasks())
	return t.printAll(listing.List(t.FS, t.Tasks()))
}

func stepGlob(t *Tour) error {
	t.Printf("Files in directory (%s) using a directory stream with a glob pattern: ", t.Tasks())
	return t.printAll(listing.Glob(t.FS, t.Tasks(), "*.txt"))
}

func stepWalk(t *Tour) error {
	t.Printf("Files in directory (%s) recursively: ", t.Assets())
	return t.printAll(listing.Walk(t.FS, t.Assets()))
}

func (t *Tour) printAll(seq iter.Seq2[core.Path, error]) error {
	for p, err := range seq {
		if err != nil {
			return err
		}
		t.Printf("%s", p)
	}
	return nil
}

func stepPaths(t *Tour) error {
	relative := core.Of(".", t.Config.AssetsDir, "tasks")
	t.Printf("Relative path: %s is absolute: %t", relative, relative.IsAbs())

	absolute := relative.Abs(t.FS.WorkDir())
	t.Printf("Absolute path: %s is absolute: %t", absolute, absolute.IsAbs())

	normalized := absolute.Normalize()
	t.Printf("Normalized path: %s is absolute: %t", normalized, normalized.IsAbs())

	relativized, err := core.Of(t.Config.RelativizeBase).Relativize(normalized)
	if err != nil {
		return err
	}
	t.Printf("Relativized path: %s is absolute: %t", relativized, relativized.IsAbs())
	return nil
}

func stepMove(t *Tour) error {
	dest := t.NewTasks()
	if _, err := operations.EnsureDir(t.FS, dest); err != nil {
		return err
	}

	src := t.Tasks().Join("to-be-moved.txt")
	dst := dest.Join("moved.txt")

	srcExists, err := t.FS.Exists(src.String())
	if err != nil {
		return err
	}
	dstExists, err := t.FS.Exists(dst.String())
	if err != nil {
		return err
	}
	if !srcExists && !dstExists {
		if err := operations.CreateFile(t.FS, src); err != nil {
			return err
		}
		if err := operations.Move(t.FS, src, dst); err != nil {
			return err
		}
	} else {
		t.Logger.Debug().Bool("src_exists", srcExists).Bool("dst_exists", dstExists).Msg("move skipped")
	}

	t.Printf("Moved file: %s to: %s", src, dst)
	return nil
}

func stepCleanup(t *Tour) error {
	report, err := operations.DeleteTree(t.FS, t.Tasks(), t.Logger)
	if err != nil {
		return err
	}
	if !report.OK() {
		t.Logger.Warn().Int("failures", len(report.Failures)).Msg(report.String())
	}
	t.Printf("Directory deleted: %s", t.Tasks())
	return nil
}
