package change_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ziyabahceci/renom/internal/renom/change"
)

func TestRenameFileAppliesAndInverts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	from := filepath.Join(root, "Code.Build.cs")
	to := filepath.Join(root, "Game.Build.cs")
	require.NoError(t, os.WriteFile(from, []byte("public class Code : ModuleRules {}"), 0o644))

	fileSystem := change.OSFileSystem{}
	renameChange := change.RenameFile{From: from, To: to}
	require.NoError(t, renameChange.Apply(fileSystem))
	require.FileExists(t, to)
	require.NoFileExists(t, from)

	require.NoError(t, renameChange.Inverse().Apply(fileSystem))
	require.FileExists(t, from)
	require.NoFileExists(t, to)
}

func TestCopyFileApplyAndInverse(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	from := filepath.Join(root, "Alpha.uplugin")
	to := filepath.Join(root, "Beta.uplugin")
	require.NoError(t, os.WriteFile(from, []byte(`{"FriendlyName":"Alpha"}`), 0o644))

	fileSystem := change.OSFileSystem{}
	copyChange := change.CopyFile{From: from, To: to}
	require.NoError(t, copyChange.Apply(fileSystem))
	require.FileExists(t, to)
	require.FileExists(t, from)

	inverse := copyChange.Inverse()
	require.IsType(t, change.DeleteFile{}, inverse)
	require.NoError(t, inverse.Apply(fileSystem))
	require.NoFileExists(t, to)
}

func TestReplaceInFileApplyAndInverse(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "Code.Build.cs")
	require.NoError(t, os.WriteFile(path, []byte("public class Code : ModuleRules { Code() {} }"), 0o644))

	fileSystem := change.OSFileSystem{}
	replaceChange := change.ReplaceInFile{Path: path, Needle: "Code", Replacement: "Game"}
	require.NoError(t, replaceChange.Apply(fileSystem))

	contents, readError := os.ReadFile(path)
	require.NoError(t, readError)
	require.Equal(t, "public class Game : ModuleRules { Game() {} }", string(contents))

	require.NoError(t, replaceChange.Inverse().Apply(fileSystem))
	contents, readError = os.ReadFile(path)
	require.NoError(t, readError)
	require.Equal(t, "public class Code : ModuleRules { Code() {} }", string(contents))
}

func TestCreateDirectoryApplyAndInverse(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "Plugins", "Beta")

	fileSystem := change.OSFileSystem{}
	createChange := change.CreateDirectory{Path: path}
	require.NoError(t, createChange.Apply(fileSystem))
	require.DirExists(t, path)

	inverse := createChange.Inverse()
	require.IsType(t, change.RemoveEmptyDirectory{}, inverse)
	require.NoError(t, inverse.Apply(fileSystem))
	require.NoDirExists(t, path)
}

func TestDeleteFileRequiresBackup(t *testing.T) {
	t.Parallel()

	deleteChange := change.DeleteFile{Path: "/tmp/whatever"}
	require.True(t, deleteChange.RequiresBackup())
	require.Equal(t, "/tmp/whatever", deleteChange.BackupPath())
}

func TestSetFileContentsRequiresBackup(t *testing.T) {
	t.Parallel()

	setChange := change.SetFileContents{Path: "/tmp/whatever", NewContents: []byte("x")}
	require.True(t, setChange.RequiresBackup())
	require.Equal(t, "/tmp/whatever", setChange.BackupPath())
}

func TestDeleteDirectoryTreeApply(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	directory := filepath.Join(root, "Intermediate")
	require.NoError(t, os.MkdirAll(directory, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(directory, "Cache.bin"), []byte("x"), 0o644))

	fileSystem := change.OSFileSystem{}
	deleteChange := change.DeleteDirectoryTree{Path: directory}
	require.True(t, deleteChange.RequiresBackup())
	require.Equal(t, directory, deleteChange.BackupPath())
	require.NoError(t, deleteChange.Apply(fileSystem))
	require.NoDirExists(t, directory)
}

func TestSetFileContentsApply(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := filepath.Join(root, "Alpha.uplugin")
	require.NoError(t, os.WriteFile(path, []byte(`{"FriendlyName":"Alpha"}`), 0o644))

	fileSystem := change.OSFileSystem{}
	setChange := change.SetFileContents{Path: path, NewContents: []byte(`{"FriendlyName":"Beta"}`)}
	require.NoError(t, setChange.Apply(fileSystem))

	contents, readError := os.ReadFile(path)
	require.NoError(t, readError)
	require.Equal(t, `{"FriendlyName":"Beta"}`, string(contents))
}
