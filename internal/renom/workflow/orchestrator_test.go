package workflow_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ziyabahceci/renom/internal/renom/identifier"
	"github.com/ziyabahceci/renom/internal/renom/renomerr"
	"github.com/ziyabahceci/renom/internal/renom/renomlog"
	"github.com/ziyabahceci/renom/internal/renom/workflow"
)

const directoryPermissionConstant = 0o755

func writeFile(t *testing.T, path string, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), directoryPermissionConstant))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func buildFixtureProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "Code.uproject"), `{"FileVersion":3,"Modules":[{"Name": "Code","Type":"Runtime"}]}`)
	writeFile(t, filepath.Join(root, "Source", "Code", "Code.Build.cs"), "public class Code : ModuleRules { public Code() {} }")
	writeFile(t, filepath.Join(root, "Source", "Code", "Code.h"), "#pragma once")
	writeFile(t, filepath.Join(root, "Source", "Code", "Code.cpp"),
		`#include "Code.h"
IMPLEMENT_PRIMARY_GAME_MODULE(FCodeGameModule, "Code");`)
	writeFile(t, filepath.Join(root, "Source", "Code.Target.cs"), "public class CodeTarget : TargetRules {}")
	writeFile(t, filepath.Join(root, "Source", "CodeEditor.Target.cs"), "public class CodeEditorTarget : TargetRules {}")
	writeFile(t, filepath.Join(root, "Plugins", "Group", "Alpha", "Alpha.uplugin"), `{"FriendlyName": "Alpha"}`)

	return root
}

func TestRunDirectRenamesProject(t *testing.T) {
	t.Parallel()

	root := buildFixtureProject(t)
	logger := renomlog.NewNop()

	params := workflow.Params{ProjectRoot: root, NewName: "Codex"}
	err := workflow.RunDirect(identifier.KindProject, params, logger, false)
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(root, "Codex.uproject"))
	require.NoFileExists(t, filepath.Join(root, "Code.uproject"))
	require.DirExists(t, filepath.Join(root, "Source", "Codex"))
	require.FileExists(t, filepath.Join(root, "Source", "Codex", "Codex.Build.cs"))
	require.FileExists(t, filepath.Join(root, "Source", "Codex.Target.cs"))
	require.FileExists(t, filepath.Join(root, "Source", "CodexEditor.Target.cs"))

	descriptorContents, readError := os.ReadFile(filepath.Join(root, "Codex.uproject"))
	require.NoError(t, readError)
	require.Contains(t, string(descriptorContents), `"Name": "Codex"`)
}

func TestRunDirectRejectsSameName(t *testing.T) {
	t.Parallel()

	root := buildFixtureProject(t)
	logger := renomlog.NewNop()

	params := workflow.Params{ProjectRoot: root, NewName: "Code"}
	err := workflow.RunDirect(identifier.KindProject, params, logger, false)
	require.Error(t, err)

	var invalidInput renomerr.InputInvalidError
	require.ErrorAs(t, err, &invalidInput)
	require.FileExists(t, filepath.Join(root, "Code.uproject"))
}

func TestRunDirectRejectsInvalidIdentifier(t *testing.T) {
	t.Parallel()

	root := buildFixtureProject(t)
	logger := renomlog.NewNop()

	params := workflow.Params{ProjectRoot: root, NewName: "My Game"}
	err := workflow.RunDirect(identifier.KindProject, params, logger, false)
	require.Error(t, err)

	var invalidInput renomerr.InputInvalidError
	require.ErrorAs(t, err, &invalidInput)
}

func TestRunDirectDryRunDoesNotMutate(t *testing.T) {
	t.Parallel()

	root := buildFixtureProject(t)
	logger := renomlog.NewNop()

	params := workflow.Params{ProjectRoot: root, NewName: "Codex"}
	err := workflow.RunDirect(identifier.KindProject, params, logger, true)
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(root, "Code.uproject"))
	require.NoFileExists(t, filepath.Join(root, "Codex.uproject"))
}

func TestRunDirectRenamesTarget(t *testing.T) {
	t.Parallel()

	root := buildFixtureProject(t)
	logger := renomlog.NewNop()

	params := workflow.Params{ProjectRoot: root, EntityName: "CodeEditor", NewName: "CodexEditor"}
	err := workflow.RunDirect(identifier.KindTarget, params, logger, false)
	require.NoError(t, err)

	require.FileExists(t, filepath.Join(root, "Source", "CodexEditor.Target.cs"))
	require.NoFileExists(t, filepath.Join(root, "Source", "CodeEditor.Target.cs"))
}

func TestRunDirectRenamesPluginNested(t *testing.T) {
	t.Parallel()

	root := buildFixtureProject(t)
	logger := renomlog.NewNop()

	params := workflow.Params{ProjectRoot: root, EntityName: "Alpha", NewName: "Beta"}
	err := workflow.RunDirect(identifier.KindPlugin, params, logger, false)
	require.NoError(t, err)

	require.DirExists(t, filepath.Join(root, "Plugins", "Group", "Beta"))
	require.FileExists(t, filepath.Join(root, "Plugins", "Group", "Beta", "Beta.uplugin"))
}

func TestRunDirectUnknownEntityIsInputInvalid(t *testing.T) {
	t.Parallel()

	root := buildFixtureProject(t)
	logger := renomlog.NewNop()

	params := workflow.Params{ProjectRoot: root, EntityName: "DoesNotExist", NewName: "Whatever"}
	err := workflow.RunDirect(identifier.KindModule, params, logger, false)
	require.Error(t, err)

	var invalidInput renomerr.InputInvalidError
	require.ErrorAs(t, err, &invalidInput)
}

func TestRunDirectRejectsWhenDescriptorAlreadyContainsNewName(t *testing.T) {
	t.Parallel()

	root := buildFixtureProject(t)
	writeFile(t, filepath.Join(root, "Code.uproject"), `{"FileVersion":3,"Modules":[{"Name": "Code","Type":"Runtime"}],"Note":"Codex reserved"}`)
	logger := renomlog.NewNop()

	params := workflow.Params{ProjectRoot: root, NewName: "Codex"}
	err := workflow.RunDirect(identifier.KindProject, params, logger, false)
	require.Error(t, err)

	var invalidInput renomerr.InputInvalidError
	require.ErrorAs(t, err, &invalidInput)
	require.FileExists(t, filepath.Join(root, "Code.uproject"))
}

func TestRunDirectAllowsDescriptorCollisionWhenCleanCheckDisabled(t *testing.T) {
	workflow.Configure("", false)
	defer workflow.Configure("", true)

	root := buildFixtureProject(t)
	writeFile(t, filepath.Join(root, "Code.uproject"), `{"FileVersion":3,"Modules":[{"Name": "Code","Type":"Runtime"}],"Note":"Codex reserved"}`)
	logger := renomlog.NewNop()

	params := workflow.Params{ProjectRoot: root, NewName: "Codex"}
	err := workflow.RunDirect(identifier.KindProject, params, logger, false)
	require.NoError(t, err)
}

func TestRunDirectUsesConfiguredBackupDirectoryName(t *testing.T) {
	workflow.Configure("custom-backup", true)
	defer workflow.Configure("", true)

	root := buildFixtureProject(t)
	writeFile(t, filepath.Join(root, "Binaries", "placeholder.bin"), "binary")
	logger := renomlog.NewNop()

	params := workflow.Params{ProjectRoot: root, NewName: "Codex"}
	err := workflow.RunDirect(identifier.KindProject, params, logger, false)
	require.NoError(t, err)

	require.DirExists(t, filepath.Join(root, "custom-backup"))
	require.NoDirExists(t, filepath.Join(root, ".renom"))
}

func TestRunDirectFailureRevertsChangeset(t *testing.T) {
	t.Parallel()

	root := buildFixtureProject(t)
	logger := renomlog.NewNop()

	require.NoError(t, os.Remove(filepath.Join(root, "Source", "Code", "Code.cpp")))

	params := workflow.Params{ProjectRoot: root, NewName: "Codex"}
	err := workflow.RunDirect(identifier.KindProject, params, logger, false)
	require.Error(t, err)

	var changeFailure renomerr.ChangeFailureError
	require.ErrorAs(t, err, &changeFailure)

	require.FileExists(t, filepath.Join(root, "Code.uproject"))
	require.DirExists(t, filepath.Join(root, "Source", "Code"))
	require.FileExists(t, filepath.Join(root, "Source", "Code", "Code.Build.cs"))
}
