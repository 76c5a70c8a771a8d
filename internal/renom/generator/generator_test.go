package generator_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ziyabahceci/renom/internal/renom/change"
	"github.com/ziyabahceci/renom/internal/renom/generator"
	"github.com/ziyabahceci/renom/internal/renom/model"
)

func buildProjectContext(root string) model.Context {
	return model.Context{
		ProjectRoot: root,
		ProjectName: "Code",
		Modules: []model.Module{
			{Name: "Code", Root: filepath.Join(root, "Source", "Code")},
		},
		Targets: []model.Target{
			{Name: "Code", Path: filepath.Join(root, "Source", "Code.Target.cs")},
			{Name: "CodeEditor", Path: filepath.Join(root, "Source", "CodeEditor.Target.cs")},
		},
		NewName: "Game",
	}
}

func TestGenerateProjectRenameDescriptorAndModule(t *testing.T) {
	t.Parallel()

	root := "/projects/Code"
	context := buildProjectContext(root)

	changeset, err := generator.GenerateProjectRename(context)
	require.NoError(t, err)
	require.NotEmpty(t, changeset)

	require.Contains(t, changeset, change.Change(change.RenameFile{
		From: filepath.Join(root, "Code.uproject"),
		To:   filepath.Join(root, "Game.uproject"),
	}))
	require.Contains(t, changeset, change.Change(change.RenameFile{
		From: filepath.Join(root, "Source", "Code"),
		To:   filepath.Join(root, "Source", "Game"),
	}))
	require.Contains(t, changeset, change.Change(change.RenameFile{
		From: filepath.Join(root, "Source", "Game", "Code.Build.cs"),
		To:   filepath.Join(root, "Source", "Game", "Game.Build.cs"),
	}))
}

func TestGenerateProjectRenamePreservesTargetSuffixes(t *testing.T) {
	t.Parallel()

	root := "/projects/Code"
	context := buildProjectContext(root)

	changeset, err := generator.GenerateProjectRename(context)
	require.NoError(t, err)

	require.Contains(t, changeset, change.Change(change.RenameFile{
		From: filepath.Join(root, "Source", "Code.Target.cs"),
		To:   filepath.Join(root, "Source", "Game.Target.cs"),
	}))
	require.Contains(t, changeset, change.Change(change.RenameFile{
		From: filepath.Join(root, "Source", "CodeEditor.Target.cs"),
		To:   filepath.Join(root, "Source", "GameEditor.Target.cs"),
	}))
}

func TestGenerateProjectRenamePropagatesToDependentModule(t *testing.T) {
	t.Parallel()

	root := "/projects/Code"
	context := buildProjectContext(root)
	dependent := model.Module{Name: "Gameplay", Root: filepath.Join(root, "Source", "Gameplay")}
	context.Modules = append(context.Modules, dependent)

	changeset, err := generator.GenerateProjectRename(context)
	require.NoError(t, err)
	require.Contains(t, changeset, change.Change(change.ReplaceInFile{
		Path:        filepath.Join(dependent.Root, "Gameplay.Build.cs"),
		Needle:      `"Code"`,
		Replacement: `"Game"`,
	}))
	require.Contains(t, changeset, change.Change(change.ReplaceInFile{
		Path:        filepath.Join(dependent.Root, "Gameplay.cpp"),
		Needle:      `#include "Code.h"`,
		Replacement: `#include "Game.h"`,
	}))
}

func TestGenerateProjectRenameDeletesGeneratedArtifacts(t *testing.T) {
	t.Parallel()

	root := "/projects/Code"
	context := buildProjectContext(root)
	context.GeneratedArtifactPaths = []string{
		filepath.Join(root, "Binaries"),
		filepath.Join(root, "Intermediate"),
	}

	changeset, err := generator.GenerateProjectRename(context)
	require.NoError(t, err)
	require.Contains(t, changeset, change.Change(change.DeleteDirectoryTree{Path: filepath.Join(root, "Binaries")}))
	require.Contains(t, changeset, change.Change(change.DeleteDirectoryTree{Path: filepath.Join(root, "Intermediate")}))
}

func TestGenerateTargetRenameRequiresSelection(t *testing.T) {
	t.Parallel()

	_, err := generator.GenerateTargetRename(model.Context{NewName: "Game"})
	require.Error(t, err)
	require.ErrorAs(t, err, &generator.MissingTargetEntityError{})
}

func TestGenerateTargetRename(t *testing.T) {
	t.Parallel()

	root := "/projects/Code"
	target := model.Target{Name: "CodeEditor", Path: filepath.Join(root, "Source", "CodeEditor.Target.cs")}
	context := model.Context{ProjectRoot: root, ProjectName: "Code", TargetTarget: &target, NewName: "GameEditor"}

	changeset, err := generator.GenerateTargetRename(context)
	require.NoError(t, err)
	require.Len(t, changeset, 2)
	require.Equal(t, change.RenameFile{
		From: filepath.Join(root, "Source", "CodeEditor.Target.cs"),
		To:   filepath.Join(root, "Source", "GameEditor.Target.cs"),
	}, changeset[0])
	require.Equal(t, change.ReplaceInFile{
		Path:        filepath.Join(root, "Source", "GameEditor.Target.cs"),
		Needle:      "CodeEditor",
		Replacement: "GameEditor",
	}, changeset[1])
}

func TestGeneratePluginRenameRequiresSelection(t *testing.T) {
	t.Parallel()

	_, err := generator.GeneratePluginRename(model.Context{NewName: "Beta"})
	require.Error(t, err)
	require.ErrorAs(t, err, &generator.MissingTargetEntityError{})
}

func TestGeneratePluginRename(t *testing.T) {
	t.Parallel()

	root := "/projects/Code"
	pluginRoot := filepath.Join(root, "Plugins", "Alpha")
	plugin := model.Plugin{Name: "Alpha", Root: pluginRoot}
	context := model.Context{
		ProjectRoot:  root,
		ProjectName:  "Code",
		TargetPlugin: &plugin,
		NewName:      "Beta",
	}

	changeset, err := generator.GeneratePluginRename(context)
	require.NoError(t, err)
	require.Contains(t, changeset, change.Change(change.RenameFile{
		From: filepath.Join(pluginRoot, "Alpha.uplugin"),
		To:   filepath.Join(pluginRoot, "Beta.uplugin"),
	}))
	require.Contains(t, changeset, change.Change(change.RenameFile{
		From: pluginRoot,
		To:   filepath.Join(root, "Plugins", "Beta"),
	}))
}

func TestGenerateModuleRenameRequiresSelection(t *testing.T) {
	t.Parallel()

	_, err := generator.GenerateModuleRename(model.Context{NewName: "Combat"})
	require.Error(t, err)
	require.ErrorAs(t, err, &generator.MissingTargetEntityError{})
}

func TestGenerateModuleRenamePropagatesToDependents(t *testing.T) {
	t.Parallel()

	root := "/projects/Code"
	module := model.Module{Name: "Physics", Root: filepath.Join(root, "Source", "Physics")}
	dependent := model.Module{Name: "Gameplay", Root: filepath.Join(root, "Source", "Gameplay")}
	context := model.Context{
		ProjectRoot:  root,
		ProjectName:  "Code",
		Modules:      []model.Module{module, dependent},
		TargetModule: &module,
		NewName:      "Simulation",
	}

	changeset, err := generator.GenerateModuleRename(context)
	require.NoError(t, err)
	require.Contains(t, changeset, change.Change(change.ReplaceInFile{
		Path:        filepath.Join(dependent.Root, "Gameplay.Build.cs"),
		Needle:      `"Physics"`,
		Replacement: `"Simulation"`,
	}))
}
