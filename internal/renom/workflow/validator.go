package workflow

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ziyabahceci/renom/internal/renom/identifier"
	"github.com/ziyabahceci/renom/internal/renom/model"
	"github.com/ziyabahceci/renom/internal/renom/probe"
	"github.com/ziyabahceci/renom/internal/renom/renomerr"
)

const sourceDirectoryNameConstant = "Source"

// validateProjectRoot implements spec.md §4.2 (a): project_root must be an
// extant directory.
func validateProjectRoot(projectRoot string) error {
	trimmed := strings.TrimSpace(projectRoot)
	if len(trimmed) == 0 {
		return renomerr.InputInvalidError{Reason: "project root must not be empty"}
	}
	info, statError := os.Stat(trimmed)
	if statError != nil {
		return renomerr.InputInvalidError{Reason: "project root does not exist: " + trimmed}
	}
	if !info.IsDir() {
		return renomerr.InputInvalidError{Reason: "project root is not a directory: " + trimmed}
	}
	return nil
}

// validateDescriptorPresent implements spec.md §4.2 (b): project_root must
// contain a *.uproject descriptor.
func validateDescriptorPresent(projectRoot string) (string, error) {
	projectName, probeError := probe.DetectProjectName(projectRoot)
	var missingError probe.ProjectDescriptorMissingError
	if errors.As(probeError, &missingError) {
		return "", renomerr.InputInvalidError{Reason: missingError.Error()}
	}
	if probeError != nil {
		return "", renomerr.ProbeFailureError{Reason: "no project descriptor found", Cause: probeError}
	}
	return projectName, nil
}

const uprojectExtensionConstant = ".uproject"

// validateDescriptorClean implements the require_clean_descriptor
// configuration option: when enabled, it rejects a rename whose newName
// already appears in the project descriptor, since
// change.ReplaceInFile's inverse is only well-defined when the replacement
// text was not already present before the Change applied (spec.md §4.3).
func validateDescriptorClean(projectRoot string, projectName string, newName string, requireClean bool) error {
	if !requireClean {
		return nil
	}
	descriptorPath := filepath.Join(projectRoot, projectName+uprojectExtensionConstant)
	contents, readError := os.ReadFile(descriptorPath)
	if readError != nil {
		return nil
	}
	if strings.Contains(string(contents), newName) {
		return renomerr.InputInvalidError{Reason: "project descriptor already contains " + newName + "; refusing an ambiguous rename"}
	}
	return nil
}

// validateSourceDirectoryPresent implements spec.md §4.2 (c): plugin,
// target, and module workflows require a Source/ directory.
func validateSourceDirectoryPresent(projectRoot string) error {
	sourceDirectory := filepath.Join(projectRoot, sourceDirectoryNameConstant)
	info, statError := os.Stat(sourceDirectory)
	if statError != nil || !info.IsDir() {
		return renomerr.InputInvalidError{Reason: "project has no Source/ directory"}
	}
	return nil
}

// validateNewName implements spec.md §4.2 (e, f): the new name must be a
// valid Identifier for kind, must not collide with an existing entity of
// the same class, and must differ from the current name.
func validateNewName(kind identifier.Kind, currentName string, newName string, existingNames []string) error {
	if _, validationError := identifier.New(kind, newName); validationError != nil {
		return renomerr.InputInvalidError{Reason: validationError.Error()}
	}
	if strings.TrimSpace(newName) == currentName {
		return renomerr.InputInvalidError{Reason: "new name must be different than the current name"}
	}
	if identifier.CollidesWith(strings.TrimSpace(newName), existingNames) {
		return renomerr.InputInvalidError{Reason: "new name collides with an existing " + string(kind)}
	}
	return nil
}

// findModule implements spec.md §4.2 (d) for module workflows.
func findModule(modules []model.Module, name string) (*model.Module, bool) {
	for index := range modules {
		if modules[index].Name == name {
			return &modules[index], true
		}
	}
	return nil, false
}

// findTarget implements spec.md §4.2 (d) for target workflows.
func findTarget(targets []model.Target, name string) (*model.Target, bool) {
	for index := range targets {
		if targets[index].Name == name {
			return &targets[index], true
		}
	}
	return nil, false
}

// findPlugin implements spec.md §4.2 (d) for plugin workflows.
func findPlugin(plugins []model.Plugin, name string) (*model.Plugin, bool) {
	for index := range plugins {
		if plugins[index].Name == name {
			return &plugins[index], true
		}
	}
	return nil, false
}

func moduleNames(modules []model.Module) []string {
	names := make([]string, len(modules))
	for index, module := range modules {
		names[index] = module.Name
	}
	return names
}

func targetNames(targets []model.Target) []string {
	names := make([]string, len(targets))
	for index, target := range targets {
		names[index] = target.Name
	}
	return names
}

func pluginNames(plugins []model.Plugin) []string {
	names := make([]string, len(plugins))
	for index, plugin := range plugins {
		names[index] = plugin.Name
	}
	return names
}
