// Package change defines the closed set of atomic filesystem Change variants
// that a Changeset is built from, and the FileSystem abstraction they operate
// through (spec.md §4.3).
package change

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// FileSystem exposes the filesystem operations a Change needs to apply
// itself. A real OSFileSystem backs production use; tests may substitute a
// fake to exercise failure paths the real OS rarely produces on demand.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, contents []byte, mode fs.FileMode) error
	Remove(path string) error
	Rename(oldPath string, newPath string) error
	MkdirAll(path string, mode fs.FileMode) error
	RemoveDirectory(path string) error
	RemoveTree(path string) error
	CopyTree(sourcePath string, destinationPath string) error
}

// OSFileSystem implements FileSystem using operating-system primitives,
// grounded on the teacher's internal/repos/filesystem.OSFileSystem.
type OSFileSystem struct{}

const defaultDirectoryPermissionConstant fs.FileMode = 0o755

// Stat retrieves file metadata.
func (OSFileSystem) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// ReadFile reads the full contents of path.
func (OSFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// WriteFile writes contents to path, creating it if necessary.
func (OSFileSystem) WriteFile(path string, contents []byte, mode fs.FileMode) error {
	return os.WriteFile(path, contents, mode)
}

// Remove deletes the file at path.
func (OSFileSystem) Remove(path string) error { return os.Remove(path) }

// Rename renames oldPath to newPath, falling back to copy+delete when the
// underlying os.Rename reports a cross-device link error.
func (fileSystem OSFileSystem) Rename(oldPath string, newPath string) error {
	renameError := os.Rename(oldPath, newPath)
	if renameError == nil {
		return nil
	}
	if !isCrossDeviceError(renameError) {
		return renameError
	}
	return fileSystem.renameAcrossDevices(oldPath, newPath)
}

func (fileSystem OSFileSystem) renameAcrossDevices(oldPath string, newPath string) error {
	contents, readError := fileSystem.ReadFile(oldPath)
	if readError != nil {
		return readError
	}
	info, statError := fileSystem.Stat(oldPath)
	if statError != nil {
		return statError
	}
	if writeError := fileSystem.WriteFile(newPath, contents, info.Mode()); writeError != nil {
		return writeError
	}
	return fileSystem.Remove(oldPath)
}

func isCrossDeviceError(err error) bool {
	var linkError *os.LinkError
	return errors.As(err, &linkError) && errors.Is(linkError.Err, syscall.EXDEV)
}

// MkdirAll creates path and any missing parents.
func (OSFileSystem) MkdirAll(path string, mode fs.FileMode) error {
	return os.MkdirAll(path, mode)
}

// RemoveDirectory removes path, which must be an empty directory.
func (OSFileSystem) RemoveDirectory(path string) error {
	return os.Remove(path)
}

// RemoveTree removes path and everything beneath it, regardless of
// emptiness. Used for regenerable build-artifact directories
// (Binaries/, Intermediate/, Saved/) that a project rename discards.
func (OSFileSystem) RemoveTree(path string) error {
	return os.RemoveAll(path)
}

// CopyTree recursively copies sourcePath to destinationPath, preserving
// directory structure and regular-file permissions. It is used by the
// BackupRegistry to stage a pre-image of a directory before it is removed
// by a DeleteDirectoryTree Change.
func (OSFileSystem) CopyTree(sourcePath string, destinationPath string) error {
	return filepath.WalkDir(sourcePath, func(currentPath string, entry fs.DirEntry, walkError error) error {
		if walkError != nil {
			return walkError
		}
		relativePath, relativeError := filepath.Rel(sourcePath, currentPath)
		if relativeError != nil {
			return relativeError
		}
		target := filepath.Join(destinationPath, relativePath)

		if entry.IsDir() {
			return os.MkdirAll(target, defaultDirectoryPermissionConstant)
		}

		info, infoError := entry.Info()
		if infoError != nil {
			return infoError
		}
		contents, readError := os.ReadFile(currentPath)
		if readError != nil {
			return readError
		}
		return os.WriteFile(target, contents, info.Mode())
	})
}

// Change is the closed set of atomic filesystem mutations a Changeset is
// built from. Each variant knows how to Apply itself and how to produce its
// own Inverse, except for backup-mediated variants (DeleteFile,
// SetFileContents) whose inverse requires the Engine's BackupRegistry and is
// therefore computed by the Engine rather than by the Change itself.
type Change interface {
	// Apply performs the mutation against fileSystem.
	Apply(fileSystem FileSystem) error
	// Describe renders a short human-readable summary for dry-run reporting
	// and logging.
	Describe() string
}

// RenameFile renames From to To, preserving file metadata. Its inverse is
// RenameFile{From: To, To: From}.
type RenameFile struct {
	From string
	To   string
}

// Apply implements Change.
func (renameChange RenameFile) Apply(fileSystem FileSystem) error {
	return fileSystem.Rename(renameChange.From, renameChange.To)
}

// Describe implements Change.
func (renameChange RenameFile) Describe() string {
	return "rename " + renameChange.From + " -> " + renameChange.To
}

// Inverse returns the Change that undoes this rename.
func (renameChange RenameFile) Inverse() Change {
	return RenameFile{From: renameChange.To, To: renameChange.From}
}

// CopyFile copies From to To. Its inverse is DeleteFile{Path: To}.
type CopyFile struct {
	From string
	To   string
}

// Apply implements Change.
func (copyChange CopyFile) Apply(fileSystem FileSystem) error {
	contents, readError := fileSystem.ReadFile(copyChange.From)
	if readError != nil {
		return readError
	}
	info, statError := fileSystem.Stat(copyChange.From)
	if statError != nil {
		return statError
	}
	return fileSystem.WriteFile(copyChange.To, contents, info.Mode())
}

// Describe implements Change.
func (copyChange CopyFile) Describe() string {
	return "copy " + copyChange.From + " -> " + copyChange.To
}

// Inverse returns the Change that undoes this copy.
func (copyChange CopyFile) Inverse() Change {
	return DeleteFile{Path: copyChange.To}
}

// DeleteFile deletes Path. Its inverse is backup-mediated: the Engine backs
// up Path's contents before applying and restores them on revert.
type DeleteFile struct {
	Path string
}

// Apply implements Change.
func (deleteChange DeleteFile) Apply(fileSystem FileSystem) error {
	return fileSystem.Remove(deleteChange.Path)
}

// Describe implements Change.
func (deleteChange DeleteFile) Describe() string {
	return "delete " + deleteChange.Path
}

// RequiresBackup reports that DeleteFile needs a pre-image backed up before
// it applies.
func (DeleteFile) RequiresBackup() bool { return true }

// BackupPath reports the path whose pre-image must be backed up.
func (deleteChange DeleteFile) BackupPath() string { return deleteChange.Path }

// SetFileContents overwrites Path with NewContents. Its inverse is
// backup-mediated, like DeleteFile.
type SetFileContents struct {
	Path        string
	NewContents []byte
}

// Apply implements Change.
func (setChange SetFileContents) Apply(fileSystem FileSystem) error {
	info, statError := fileSystem.Stat(setChange.Path)
	mode := fs.FileMode(0o644)
	if statError == nil {
		mode = info.Mode()
	}
	return fileSystem.WriteFile(setChange.Path, setChange.NewContents, mode)
}

// Describe implements Change.
func (setChange SetFileContents) Describe() string {
	return "set contents of " + setChange.Path
}

// RequiresBackup reports that SetFileContents needs a pre-image backed up.
func (SetFileContents) RequiresBackup() bool { return true }

// BackupPath reports the path whose pre-image must be backed up.
func (setChange SetFileContents) BackupPath() string { return setChange.Path }

// ReplaceInFile replaces every literal occurrence of Needle with Replacement
// in Path. Its inverse swaps Needle and Replacement; that inverse is
// well-defined only when Replacement did not already occur in the file
// before this Change applied, which generators must guarantee by choosing a
// novel name (spec.md §4.3).
type ReplaceInFile struct {
	Path        string
	Needle      string
	Replacement string
}

// Apply implements Change.
func (replaceChange ReplaceInFile) Apply(fileSystem FileSystem) error {
	contents, readError := fileSystem.ReadFile(replaceChange.Path)
	if readError != nil {
		return readError
	}
	info, statError := fileSystem.Stat(replaceChange.Path)
	mode := fs.FileMode(0o644)
	if statError == nil {
		mode = info.Mode()
	}
	updated := strings.ReplaceAll(string(contents), replaceChange.Needle, replaceChange.Replacement)
	return fileSystem.WriteFile(replaceChange.Path, []byte(updated), mode)
}

// Describe implements Change.
func (replaceChange ReplaceInFile) Describe() string {
	return "replace \"" + replaceChange.Needle + "\" with \"" + replaceChange.Replacement + "\" in " + replaceChange.Path
}

// Inverse returns the Change that undoes this literal replacement.
func (replaceChange ReplaceInFile) Inverse() Change {
	return ReplaceInFile{
		Path:        replaceChange.Path,
		Needle:      replaceChange.Replacement,
		Replacement: replaceChange.Needle,
	}
}

// CreateDirectory creates Path (and any missing parents). Its inverse is
// RemoveEmptyDirectory{Path}.
type CreateDirectory struct {
	Path string
}

// Apply implements Change.
func (createChange CreateDirectory) Apply(fileSystem FileSystem) error {
	return fileSystem.MkdirAll(createChange.Path, defaultDirectoryPermissionConstant)
}

// Describe implements Change.
func (createChange CreateDirectory) Describe() string {
	return "create directory " + createChange.Path
}

// Inverse returns the Change that undoes this directory creation.
func (createChange CreateDirectory) Inverse() Change {
	return RemoveEmptyDirectory{Path: createChange.Path}
}

// RemoveEmptyDirectory removes Path, which must be an empty directory. It is
// the inverse of CreateDirectory and is never emitted directly by a
// generator.
type RemoveEmptyDirectory struct {
	Path string
}

// Apply implements Change.
func (removeChange RemoveEmptyDirectory) Apply(fileSystem FileSystem) error {
	return fileSystem.RemoveDirectory(removeChange.Path)
}

// Describe implements Change.
func (removeChange RemoveEmptyDirectory) Describe() string {
	return "remove empty directory " + removeChange.Path
}

// Inverse returns the Change that undoes this directory removal.
func (removeChange RemoveEmptyDirectory) Inverse() Change {
	return CreateDirectory{Path: removeChange.Path}
}

// DeleteDirectoryTree removes Path and everything beneath it. Its inverse is
// backup-mediated like DeleteFile and SetFileContents, except the
// BackupRegistry stages a recursive copy rather than a single file's bytes.
// Generators emit this for regenerable build-artifact directories
// (Binaries/, Intermediate/, Saved/, .vs/) rather than the single-file
// DeleteFile, since those directories are rarely empty.
type DeleteDirectoryTree struct {
	Path string
}

// Apply implements Change.
func (deleteChange DeleteDirectoryTree) Apply(fileSystem FileSystem) error {
	return fileSystem.RemoveTree(deleteChange.Path)
}

// Describe implements Change.
func (deleteChange DeleteDirectoryTree) Describe() string {
	return "delete directory tree " + deleteChange.Path
}

// RequiresBackup reports that DeleteDirectoryTree needs a pre-image backed
// up before it applies.
func (DeleteDirectoryTree) RequiresBackup() bool { return true }

// BackupPath reports the path whose pre-image must be backed up.
func (deleteChange DeleteDirectoryTree) BackupPath() string { return deleteChange.Path }
