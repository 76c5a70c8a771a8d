// Package probe performs read-only filesystem discovery of an Unreal Engine
// project's current state: its descriptor name, modules, targets, and
// plugins. Probes never mutate the filesystem and always materialize their
// results so that later Changes cannot perturb iteration (spec.md §4.1).
package probe

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ziyabahceci/renom/internal/renom/model"
)

const (
	uprojectExtensionConstant = ".uproject"
	upluginExtensionConstant  = ".uplugin"
	buildSuffixConstant       = ".Build.cs"
	targetSuffixConstant      = ".Target.cs"
	sourceDirectoryConstant   = "Source"
	pluginsDirectoryConstant  = "Plugins"
)

// ProjectDescriptorMissingError indicates no *.uproject file exists under root.
type ProjectDescriptorMissingError struct {
	Root string
}

func (errorValue ProjectDescriptorMissingError) Error() string {
	return fmt.Sprintf("no .uproject descriptor found under %s", errorValue.Root)
}

// InvalidUnicodePathError indicates a discovered path's stem is not valid text.
type InvalidUnicodePathError struct {
	Path string
}

func (errorValue InvalidUnicodePathError) Error() string {
	return fmt.Sprintf("path is not valid unicode: %s", errorValue.Path)
}

// DetectProjectName returns the file stem of the first *.uproject entry
// directly under root.
func DetectProjectName(root string) (string, error) {
	entries, readError := os.ReadDir(root)
	if readError != nil {
		return "", fmt.Errorf("reading project root %s: %w", root, readError)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != uprojectExtensionConstant {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), uprojectExtensionConstant)
		if len(stem) == 0 || !utf8.ValidString(stem) {
			return "", InvalidUnicodePathError{Path: entry.Name()}
		}
		return stem, nil
	}

	return "", ProjectDescriptorMissingError{Root: root}
}

// DescriptorPath returns the absolute path of the project's *.uproject file.
func DescriptorPath(root string, projectName string) string {
	return filepath.Join(root, projectName+uprojectExtensionConstant)
}

// DetectModules returns the immediate subdirectories of Source/ that contain
// a <dir>.Build.cs file, in lexicographic order.
func DetectModules(root string) ([]model.Module, error) {
	sourceDirectory := filepath.Join(root, sourceDirectoryConstant)
	entries, readError := os.ReadDir(sourceDirectory)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading source directory %s: %w", sourceDirectory, readError)
	}

	modules := make([]model.Module, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		moduleRoot := filepath.Join(sourceDirectory, entry.Name())
		buildFile := filepath.Join(moduleRoot, entry.Name()+buildSuffixConstant)
		if _, statError := os.Stat(buildFile); statError != nil {
			continue
		}
		modules = append(modules, model.Module{Name: entry.Name(), Root: moduleRoot})
	}

	sort.Slice(modules, func(first, second int) bool {
		return modules[first].Name < modules[second].Name
	})
	return modules, nil
}

// DetectTargets returns every *.Target.cs file directly under Source/.
func DetectTargets(root string) ([]model.Target, error) {
	sourceDirectory := filepath.Join(root, sourceDirectoryConstant)
	entries, readError := os.ReadDir(sourceDirectory)
	if readError != nil {
		if os.IsNotExist(readError) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading source directory %s: %w", sourceDirectory, readError)
	}

	targets := make([]model.Target, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, hasSuffix := strings.CutSuffix(entry.Name(), targetSuffixConstant)
		if !hasSuffix || len(name) == 0 {
			continue
		}
		targets = append(targets, model.Target{
			Name: name,
			Path: filepath.Join(sourceDirectory, entry.Name()),
		})
	}

	sort.Slice(targets, func(first, second int) bool {
		return targets[first].Name < targets[second].Name
	})
	return targets, nil
}

// DetectPlugins recursively walks Plugins/ and returns every directory
// containing a *.uplugin file, paired with that file's stem. Plugins may be
// nested arbitrarily deep.
func DetectPlugins(root string) ([]model.Plugin, error) {
	pluginsDirectory := filepath.Join(root, pluginsDirectoryConstant)

	var plugins []model.Plugin
	walkError := filepath.WalkDir(pluginsDirectory, func(path string, directoryEntry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if os.IsNotExist(walkErr) && path == pluginsDirectory {
				return nil
			}
			return walkErr
		}
		if directoryEntry.IsDir() {
			return nil
		}
		if filepath.Ext(directoryEntry.Name()) != upluginExtensionConstant {
			return nil
		}

		pluginRoot := filepath.Dir(path)
		pluginName := strings.TrimSuffix(directoryEntry.Name(), upluginExtensionConstant)
		plugins = append(plugins, model.Plugin{Name: pluginName, Root: pluginRoot})
		return nil
	})
	if walkError != nil {
		return nil, fmt.Errorf("walking plugins directory %s: %w", pluginsDirectory, walkError)
	}

	sort.Slice(plugins, func(first, second int) bool {
		return plugins[first].Root < plugins[second].Root
	})
	return plugins, nil
}

// generatedDirectoryNamesConstant lists the regenerable build-output
// directories a project rename discards (spec.md §4.5.1 step 6).
var generatedDirectoryNamesConstant = []string{"Binaries", "Intermediate", "Saved", ".vs"}

// DetectGeneratedArtifacts returns the currently-existing build-output
// directories under root, plus any *.sln file whose stem is projectName.
// Entries are materialized paths only; existence is checked once, at probe
// time.
func DetectGeneratedArtifacts(root string, projectName string) ([]string, error) {
	var artifacts []string

	for _, directoryName := range generatedDirectoryNamesConstant {
		candidate := filepath.Join(root, directoryName)
		if _, statError := os.Stat(candidate); statError == nil {
			artifacts = append(artifacts, candidate)
		}
	}

	solutionPath := filepath.Join(root, projectName+".sln")
	if _, statError := os.Stat(solutionPath); statError == nil {
		artifacts = append(artifacts, solutionPath)
	}

	return artifacts, nil
}
