package workflow

import (
	"fmt"
	"path/filepath"

	"github.com/ziyabahceci/renom/internal/renom/change"
	"github.com/ziyabahceci/renom/internal/renom/engine"
	"github.com/ziyabahceci/renom/internal/renom/generator"
	"github.com/ziyabahceci/renom/internal/renom/identifier"
	"github.com/ziyabahceci/renom/internal/renom/model"
	"github.com/ziyabahceci/renom/internal/renom/prompt"
	"github.com/ziyabahceci/renom/internal/renom/probe"
	"github.com/ziyabahceci/renom/internal/renom/renomerr"
	"github.com/ziyabahceci/renom/internal/renom/renomlog"
)

const backupDirectoryRelativePathConstant = ".renom/backup"

var backupDirectoryRelativePath = backupDirectoryRelativePathConstant

var requireCleanDescriptor = true

// Configure overrides the backup-directory name and the clean-descriptor
// requirement from config.Configuration, applied once at startup before any
// workflow runs. An empty backupDirectoryName leaves the package default
// (".renom/backup") in place.
func Configure(backupDirectoryName string, requireCleanDescriptorValue bool) {
	if backupDirectoryName != "" {
		backupDirectoryRelativePath = backupDirectoryName
	}
	requireCleanDescriptor = requireCleanDescriptorValue
}

// generatorFunc is the shape every changeset generator shares.
type generatorFunc func(model.Context) ([]change.Change, error)

var generatorsByKind = map[identifier.Kind]generatorFunc{
	identifier.KindProject: generator.GenerateProjectRename,
	identifier.KindPlugin:  generator.GeneratePluginRename,
	identifier.KindTarget:  generator.GenerateTargetRename,
	identifier.KindModule:  generator.GenerateModuleRename,
}

// buildContext probes root and, for non-project kinds, resolves the named
// entity into the Context's corresponding Target* field. It performs
// validation steps (a)-(f) of spec.md §4.2 before returning.
func buildContext(kind identifier.Kind, params Params) (model.Context, error) {
	if validationError := validateProjectRoot(params.ProjectRoot); validationError != nil {
		return model.Context{}, validationError
	}

	projectName, descriptorError := validateDescriptorPresent(params.ProjectRoot)
	if descriptorError != nil {
		return model.Context{}, descriptorError
	}

	if kind != identifier.KindTarget {
		if cleanError := validateDescriptorClean(params.ProjectRoot, projectName, params.NewName, requireCleanDescriptor); cleanError != nil {
			return model.Context{}, cleanError
		}
	}

	if kind != identifier.KindProject {
		if sourceError := validateSourceDirectoryPresent(params.ProjectRoot); sourceError != nil {
			return model.Context{}, sourceError
		}
	}

	modules, modulesError := probe.DetectModules(params.ProjectRoot)
	if modulesError != nil {
		return model.Context{}, renomerr.ProbeFailureError{Reason: "detecting modules", Cause: modulesError}
	}
	targets, targetsError := probe.DetectTargets(params.ProjectRoot)
	if targetsError != nil {
		return model.Context{}, renomerr.ProbeFailureError{Reason: "detecting targets", Cause: targetsError}
	}
	plugins, pluginsError := probe.DetectPlugins(params.ProjectRoot)
	if pluginsError != nil {
		return model.Context{}, renomerr.ProbeFailureError{Reason: "detecting plugins", Cause: pluginsError}
	}

	context := model.Context{
		ProjectRoot: params.ProjectRoot,
		ProjectName: projectName,
		Modules:     modules,
		Targets:     targets,
		Plugins:     plugins,
		NewName:     params.NewName,
	}

	switch kind {
	case identifier.KindProject:
		if validationError := validateNewName(identifier.KindProject, projectName, params.NewName, nil); validationError != nil {
			return model.Context{}, validationError
		}
		artifacts, artifactError := probe.DetectGeneratedArtifacts(params.ProjectRoot, projectName)
		if artifactError != nil {
			return model.Context{}, renomerr.ProbeFailureError{Reason: "detecting generated artifacts", Cause: artifactError}
		}
		context.GeneratedArtifactPaths = artifacts

	case identifier.KindPlugin:
		selectedPlugin, found := findPlugin(plugins, params.EntityName)
		if !found {
			return model.Context{}, renomerr.InputInvalidError{Reason: "plugin not found: " + params.EntityName}
		}
		if validationError := validateNewName(identifier.KindPlugin, selectedPlugin.Name, params.NewName, pluginNames(plugins)); validationError != nil {
			return model.Context{}, validationError
		}
		context.TargetPlugin = selectedPlugin

	case identifier.KindTarget:
		selectedTarget, found := findTarget(targets, params.EntityName)
		if !found {
			return model.Context{}, renomerr.InputInvalidError{Reason: "target not found: " + params.EntityName}
		}
		if validationError := validateNewName(identifier.KindTarget, selectedTarget.Name, params.NewName, targetNames(targets)); validationError != nil {
			return model.Context{}, validationError
		}
		context.TargetTarget = selectedTarget

	case identifier.KindModule:
		selectedModule, found := findModule(modules, params.EntityName)
		if !found {
			return model.Context{}, renomerr.InputInvalidError{Reason: "module not found: " + params.EntityName}
		}
		if validationError := validateNewName(identifier.KindModule, selectedModule.Name, params.NewName, moduleNames(modules)); validationError != nil {
			return model.Context{}, validationError
		}
		context.TargetModule = selectedModule
	}

	return context, nil
}

// RunDirect executes the rename operation identified by kind using params
// taken verbatim (the CLI's non-interactive path). When dryRun is true, the
// computed Changeset is reported through logger and nothing is applied.
func RunDirect(kind identifier.Kind, params Params, logger *renomlog.Logger, dryRun bool) error {
	return run(kind, params, logger, dryRun, nil)
}

// RunInteractive gathers Params by prompting through prompter, then runs the
// same validate/probe/generate/execute pipeline as RunDirect. Before
// reverting a failed execution it asks the operator to confirm, per
// spec.md §9 open question (c): the wizard may prompt before calling
// revert, where the direct/CLI path always reverts without asking.
func RunInteractive(kind identifier.Kind, prompter prompt.Prompter, logger *renomlog.Logger, dryRun bool) error {
	params, gatherError := gatherParams(kind, prompter)
	if gatherError != nil {
		return gatherError
	}

	confirmRevert := func() bool {
		confirmed, confirmError := prompter.Confirm("Execution failed. Revert changes?", true)
		if confirmError != nil {
			return true
		}
		return confirmed
	}

	return run(kind, params, logger, dryRun, confirmRevert)
}

func gatherParams(kind identifier.Kind, prompter prompt.Prompter) (Params, error) {
	projectRoot, rootError := prompter.Text("Project root:", func(candidate string) (bool, string) {
		if validationError := validateProjectRoot(candidate); validationError != nil {
			return false, validationError.Error()
		}
		return true, ""
	})
	if rootError != nil {
		return Params{}, rootError
	}

	if kind == identifier.KindProject {
		newName, nameError := prompter.Text(fmt.Sprintf("New %s name:", kind), identifierValidator(kind))
		if nameError != nil {
			return Params{}, nameError
		}
		return Params{ProjectRoot: projectRoot, NewName: newName}, nil
	}

	var options []string
	switch kind {
	case identifier.KindPlugin:
		plugins, probeError := probe.DetectPlugins(projectRoot)
		if probeError != nil {
			return Params{}, renomerr.ProbeFailureError{Reason: "detecting plugins", Cause: probeError}
		}
		options = pluginNames(plugins)
	case identifier.KindTarget:
		targets, probeError := probe.DetectTargets(projectRoot)
		if probeError != nil {
			return Params{}, renomerr.ProbeFailureError{Reason: "detecting targets", Cause: probeError}
		}
		options = targetNames(targets)
	case identifier.KindModule:
		modules, probeError := probe.DetectModules(projectRoot)
		if probeError != nil {
			return Params{}, renomerr.ProbeFailureError{Reason: "detecting modules", Cause: probeError}
		}
		options = moduleNames(modules)
	}

	entityName, selectError := prompter.Select(fmt.Sprintf("Select %s to rename:", kind), options)
	if selectError != nil {
		return Params{}, selectError
	}

	newName, nameError := prompter.Text(fmt.Sprintf("New %s name:", kind), identifierValidator(kind))
	if nameError != nil {
		return Params{}, nameError
	}

	return Params{ProjectRoot: projectRoot, EntityName: entityName, NewName: newName}, nil
}

func identifierValidator(kind identifier.Kind) prompt.Validator {
	return func(candidate string) (bool, string) {
		valid, validationError := identifier.IsValid(kind, candidate)
		if !valid {
			return false, validationError.Error()
		}
		return true, ""
	}
}

// run performs validate -> probe -> generate -> execute -> (on failure)
// revert, logging progress through logger.
func run(kind identifier.Kind, params Params, logger *renomlog.Logger, dryRun bool, confirmRevert func() bool) error {
	if logger == nil {
		logger = renomlog.NewNop()
	}

	logger.Header(fmt.Sprintf("rename-%s: %s -> %s", kind, params.EntityName, params.NewName))

	context, contextError := buildContext(kind, params)
	if contextError != nil {
		logger.Error(contextError.Error())
		return contextError
	}

	generate, supported := generatorsByKind[kind]
	if !supported {
		unsupportedError := renomerr.InputInvalidError{Reason: "unsupported rename kind: " + string(kind)}
		logger.Error(unsupportedError.Error())
		return unsupportedError
	}

	changeset, generateError := generate(context)
	if generateError != nil {
		wrapped := renomerr.InputInvalidError{Reason: generateError.Error()}
		logger.Error(wrapped.Error())
		return wrapped
	}

	if dryRun {
		reportDryRun(logger, changeset)
		return nil
	}

	backupDirectory := filepath.Join(context.ProjectRoot, backupDirectoryRelativePath)
	transaction := engine.New(change.OSFileSystem{}, backupDirectory)

	if executeError := transaction.Execute(changeset); executeError != nil {
		logger.Error(fmt.Sprintf("execution failed: %v", executeError))

		if confirmRevert == nil || confirmRevert() {
			if revertError := transaction.Revert(); revertError != nil {
				logger.Error(fmt.Sprintf("revert failed, inspect %s: %v", backupDirectory, revertError))
				return renomerr.RevertFailureError{Cause: revertError}
			}
			logger.Basic("reverted to original state")
		}

		return renomerr.ChangeFailureError{Cause: executeError}
	}

	logger.Success(fmt.Sprintf("rename-%s complete: %s -> %s", kind, params.EntityName, params.NewName))
	return nil
}

// reportDryRun renders the computed Changeset without applying it, adapted
// from the teacher's rename.Executor.printPlan.
func reportDryRun(logger *renomlog.Logger, changeset []change.Change) {
	logger.Header(fmt.Sprintf("dry run: %d change(s) would be applied", len(changeset)))
	for _, currentChange := range changeset {
		logger.Basic("PLAN: " + currentChange.Describe())
	}
}
