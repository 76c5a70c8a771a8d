// Package generator computes the Changeset required by each of the four
// rename operations from a probed Context. Every function here is pure:
// Context in, Changeset out, no filesystem access (spec.md §4.5).
package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ziyabahceci/renom/internal/renom/change"
	"github.com/ziyabahceci/renom/internal/renom/model"
)

const (
	uprojectExtensionConstant = ".uproject"
	upluginExtensionConstant  = ".uplugin"
	buildSuffixConstant       = ".Build.cs"
	targetSuffixConstant      = ".Target.cs"
	headerSuffixConstant      = ".h"
	sourceSuffixConstant      = ".cpp"
	sourceDirectoryConstant   = "Source"
)

// targetSuffixesConstant lists the conventional target-name suffixes that
// must be preserved when a project's targets are renamed alongside it
// (spec.md §4.5.1 step 4): "Code" becomes "Game", "CodeEditor" becomes
// "GameEditor", and so on.
var targetSuffixesConstant = []string{"", "Editor", "Server", "Client"}

// MissingTargetEntityError indicates the Context carries no selection for
// the entity class a generator was asked to rename.
type MissingTargetEntityError struct {
	Entity string
}

func (errorValue MissingTargetEntityError) Error() string {
	return fmt.Sprintf("context has no selected %s to rename", errorValue.Entity)
}

// GenerateProjectRename computes the Changeset that renames the project
// described by context from context.ProjectName to context.NewName
// (spec.md §4.5.1).
func GenerateProjectRename(context model.Context) ([]change.Change, error) {
	oldName := context.ProjectName
	newName := context.NewName
	root := context.ProjectRoot

	var changeset []change.Change

	oldDescriptor := filepath.Join(root, oldName+uprojectExtensionConstant)
	newDescriptor := filepath.Join(root, newName+uprojectExtensionConstant)
	changeset = append(changeset, change.RenameFile{From: oldDescriptor, To: newDescriptor})
	changeset = append(changeset, change.ReplaceInFile{
		Path:        newDescriptor,
		Needle:      fmt.Sprintf("%q: %q", "Name", oldName),
		Replacement: fmt.Sprintf("%q: %q", "Name", newName),
	})

	for _, module := range context.Modules {
		if module.Name != oldName {
			continue
		}
		changeset = append(changeset, renamePrimaryModule(module, oldName, newName)...)
	}

	changeset = append(changeset, dependentModuleReferenceChanges(context.Modules, oldName, newName)...)

	for _, target := range context.Targets {
		suffix, matches := matchesProjectTarget(target.Name, oldName)
		if !matches {
			continue
		}
		changeset = append(changeset, renameTargetFile(target, oldName+suffix, newName+suffix)...)
	}

	for _, artifactPath := range context.GeneratedArtifactPaths {
		changeset = append(changeset, change.DeleteDirectoryTree{Path: artifactPath})
	}

	return changeset, nil
}

func matchesProjectTarget(targetName string, projectName string) (string, bool) {
	for _, suffix := range targetSuffixesConstant {
		if targetName == projectName+suffix {
			return suffix, true
		}
	}
	return "", false
}

// renamePrimaryModule emits the Changes for §4.5.1 step 3: the module
// directory rename, the Build.cs rename+substitution, and the header/source
// pair rename+substitution. The source file gets a single oldName -> newName
// substitution, which also covers the IMPLEMENT_PRIMARY_GAME_MODULE tokens
// (F<oldName>GameModule contains oldName).
func renamePrimaryModule(module model.Module, oldName string, newName string) []change.Change {
	oldModuleRoot := module.Root
	newModuleRoot := filepath.Join(filepath.Dir(oldModuleRoot), newName)

	changeset := []change.Change{
		change.RenameFile{From: oldModuleRoot, To: newModuleRoot},
	}

	oldBuildFile := filepath.Join(newModuleRoot, oldName+buildSuffixConstant)
	newBuildFile := filepath.Join(newModuleRoot, newName+buildSuffixConstant)
	changeset = append(changeset,
		change.RenameFile{From: oldBuildFile, To: newBuildFile},
		change.ReplaceInFile{Path: newBuildFile, Needle: oldName, Replacement: newName},
	)

	oldHeader := filepath.Join(newModuleRoot, oldName+headerSuffixConstant)
	newHeader := filepath.Join(newModuleRoot, newName+headerSuffixConstant)
	changeset = append(changeset,
		change.RenameFile{From: oldHeader, To: newHeader},
		change.ReplaceInFile{Path: newHeader, Needle: oldName, Replacement: newName},
	)

	oldSource := filepath.Join(newModuleRoot, oldName+sourceSuffixConstant)
	newSource := filepath.Join(newModuleRoot, newName+sourceSuffixConstant)
	changeset = append(changeset,
		change.RenameFile{From: oldSource, To: newSource},
		change.ReplaceInFile{Path: newSource, Needle: oldName, Replacement: newName},
	)

	return changeset
}

func renameTargetFile(target model.Target, oldTargetName string, newTargetName string) []change.Change {
	oldPath := target.Path
	newPath := filepath.Join(filepath.Dir(oldPath), newTargetName+targetSuffixConstant)

	return []change.Change{
		change.RenameFile{From: oldPath, To: newPath},
		change.ReplaceInFile{Path: newPath, Needle: oldTargetName, Replacement: newTargetName},
	}
}

// GeneratePluginRename computes the Changeset that renames the plugin
// selected by context.TargetPlugin from its current name to
// context.NewName (spec.md §4.5.2).
func GeneratePluginRename(context model.Context) ([]change.Change, error) {
	if context.TargetPlugin == nil {
		return nil, MissingTargetEntityError{Entity: "plugin"}
	}
	plugin := *context.TargetPlugin
	oldName := plugin.Name
	newName := context.NewName

	var changeset []change.Change

	oldDescriptor := filepath.Join(plugin.Root, oldName+upluginExtensionConstant)
	newDescriptor := filepath.Join(plugin.Root, newName+upluginExtensionConstant)
	changeset = append(changeset,
		change.RenameFile{From: oldDescriptor, To: newDescriptor},
		change.ReplaceInFile{
			Path:        newDescriptor,
			Needle:      fmt.Sprintf("%q: %q", "FriendlyName", oldName),
			Replacement: fmt.Sprintf("%q: %q", "FriendlyName", newName),
		},
		change.ReplaceInFile{Path: newDescriptor, Needle: oldName, Replacement: newName},
	)

	newPluginRoot := filepath.Join(filepath.Dir(plugin.Root), newName)
	changeset = append(changeset, change.RenameFile{From: plugin.Root, To: newPluginRoot})

	for _, module := range context.Modules {
		if module.Name != oldName || !strings.HasPrefix(module.Root, plugin.Root) {
			continue
		}
		relative, relativeError := filepath.Rel(plugin.Root, module.Root)
		if relativeError != nil {
			continue
		}
		rebased := model.Module{Name: module.Name, Root: filepath.Join(newPluginRoot, relative)}
		changeset = append(changeset, renamePrimaryModule(rebased, oldName, newName)...)
	}

	descriptorPath := filepath.Join(context.ProjectRoot, context.ProjectName+uprojectExtensionConstant)
	changeset = append(changeset, change.ReplaceInFile{
		Path:        descriptorPath,
		Needle:      fmt.Sprintf("%q: %q", "Name", oldName),
		Replacement: fmt.Sprintf("%q: %q", "Name", newName),
	})

	return changeset, nil
}

// GenerateTargetRename computes the Changeset that renames the target
// selected by context.TargetTarget from its current name to
// context.NewName (spec.md §4.5.3).
func GenerateTargetRename(context model.Context) ([]change.Change, error) {
	if context.TargetTarget == nil {
		return nil, MissingTargetEntityError{Entity: "target"}
	}
	target := *context.TargetTarget
	return renameTargetFile(target, target.Name, context.NewName), nil
}

// GenerateModuleRename computes the Changeset that renames the module
// selected by context.TargetModule from its current name to
// context.NewName (spec.md §4.5.4). The module's directory and files are
// renamed under the module's own root; the descriptor whose Name entry is
// edited is always the project's .uproject, and no .uplugin is edited.
func GenerateModuleRename(context model.Context) ([]change.Change, error) {
	if context.TargetModule == nil {
		return nil, MissingTargetEntityError{Entity: "module"}
	}
	module := *context.TargetModule
	oldName := module.Name
	newName := context.NewName

	changeset := renamePrimaryModule(module, oldName, newName)

	descriptorPath := filepath.Join(context.ProjectRoot, context.ProjectName+uprojectExtensionConstant)
	changeset = append(changeset, change.ReplaceInFile{
		Path:        descriptorPath,
		Needle:      fmt.Sprintf("%q: %q", "Name", oldName),
		Replacement: fmt.Sprintf("%q: %q", "Name", newName),
	})

	changeset = append(changeset, dependentModuleReferenceChanges(context.Modules, oldName, newName)...)

	return changeset, nil
}

// dependentModuleReferenceChanges emits, for every module other than the one
// named oldName, the Build.cs dependency-string substitution and the
// #include substitution that keep it compiling once the module it depends on
// is renamed. Shared by GenerateProjectRename (whose primary module rename is
// itself a module rename, per spec.md §4.5.1 step 5) and GenerateModuleRename
// (spec.md §4.5.4 step 5).
func dependentModuleReferenceChanges(modules []model.Module, oldName string, newName string) []change.Change {
	var changeset []change.Change

	for _, dependent := range modules {
		if dependent.Name == oldName {
			continue
		}
		buildFile := filepath.Join(dependent.Root, dependent.Name+buildSuffixConstant)
		changeset = append(changeset, change.ReplaceInFile{
			Path:        buildFile,
			Needle:      fmt.Sprintf("%q", oldName),
			Replacement: fmt.Sprintf("%q", newName),
		})

		headerInclude := fmt.Sprintf("#include %q", oldName+headerSuffixConstant)
		newHeaderInclude := fmt.Sprintf("#include %q", newName+headerSuffixConstant)
		sourceFile := filepath.Join(dependent.Root, dependent.Name+sourceSuffixConstant)
		changeset = append(changeset, change.ReplaceInFile{
			Path:        sourceFile,
			Needle:      headerInclude,
			Replacement: newHeaderInclude,
		})
	}

	return changeset
}
