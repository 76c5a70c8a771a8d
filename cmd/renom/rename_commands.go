package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziyabahceci/renom/internal/renom/identifier"
	"github.com/ziyabahceci/renom/internal/renom/prompt"
	"github.com/ziyabahceci/renom/internal/renom/workflow"
)

const (
	projectFlagNameConstant  = "project"
	projectFlagUsageConstant = "Path to the Unreal Engine project root."
	newNameFlagNameConstant  = "new-name"
	newNameFlagUsageConstant = "The replacement name."

	pluginFlagNameConstant  = "plugin"
	pluginFlagUsageConstant = "Name of the plugin to rename."
	targetFlagNameConstant  = "target"
	targetFlagUsageConstant = "Name of the build target to rename."
	moduleFlagNameConstant  = "module"
	moduleFlagUsageConstant = "Name of the module to rename."

	renameProjectUseConstant   = "rename-project"
	renameProjectShortConstant = "Rename the project and its primary module"
	renamePluginUseConstant    = "rename-plugin"
	renamePluginShortConstant  = "Rename a plugin and its modules"
	renameTargetUseConstant    = "rename-target"
	renameTargetShortConstant  = "Rename a build target"
	renameModuleUseConstant    = "rename-module"
	renameModuleShortConstant  = "Rename a module and update its dependents"

	confirmationPromptWithEntityTemplateConstant = "Proceed with %s %q -> %q?"
	confirmationPromptProjectTemplateConstant    = "Proceed with %s rename -> %q?"
)

// newRenameProjectCommand builds `renom rename-project`.
func newRenameProjectCommand(application *renomApplication) *cobra.Command {
	var projectRoot string
	var newName string

	command := &cobra.Command{
		Use:   renameProjectUseConstant,
		Short: renameProjectShortConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runDirect(identifier.KindProject, workflow.Params{ProjectRoot: projectRoot, NewName: newName})
		},
	}

	command.Flags().StringVar(&projectRoot, projectFlagNameConstant, "", projectFlagUsageConstant)
	command.Flags().StringVar(&newName, newNameFlagNameConstant, "", newNameFlagUsageConstant)
	_ = command.MarkFlagRequired(projectFlagNameConstant)
	_ = command.MarkFlagRequired(newNameFlagNameConstant)

	return command
}

// newRenamePluginCommand builds `renom rename-plugin`.
func newRenamePluginCommand(application *renomApplication) *cobra.Command {
	var projectRoot string
	var pluginName string
	var newName string

	command := &cobra.Command{
		Use:   renamePluginUseConstant,
		Short: renamePluginShortConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runDirect(identifier.KindPlugin, workflow.Params{ProjectRoot: projectRoot, EntityName: pluginName, NewName: newName})
		},
	}

	command.Flags().StringVar(&projectRoot, projectFlagNameConstant, "", projectFlagUsageConstant)
	command.Flags().StringVar(&pluginName, pluginFlagNameConstant, "", pluginFlagUsageConstant)
	command.Flags().StringVar(&newName, newNameFlagNameConstant, "", newNameFlagUsageConstant)
	_ = command.MarkFlagRequired(projectFlagNameConstant)
	_ = command.MarkFlagRequired(pluginFlagNameConstant)
	_ = command.MarkFlagRequired(newNameFlagNameConstant)

	return command
}

// newRenameTargetCommand builds `renom rename-target`.
func newRenameTargetCommand(application *renomApplication) *cobra.Command {
	var projectRoot string
	var targetName string
	var newName string

	command := &cobra.Command{
		Use:   renameTargetUseConstant,
		Short: renameTargetShortConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runDirect(identifier.KindTarget, workflow.Params{ProjectRoot: projectRoot, EntityName: targetName, NewName: newName})
		},
	}

	command.Flags().StringVar(&projectRoot, projectFlagNameConstant, "", projectFlagUsageConstant)
	command.Flags().StringVar(&targetName, targetFlagNameConstant, "", targetFlagUsageConstant)
	command.Flags().StringVar(&newName, newNameFlagNameConstant, "", newNameFlagUsageConstant)
	_ = command.MarkFlagRequired(projectFlagNameConstant)
	_ = command.MarkFlagRequired(targetFlagNameConstant)
	_ = command.MarkFlagRequired(newNameFlagNameConstant)

	return command
}

// newRenameModuleCommand builds `renom rename-module`.
func newRenameModuleCommand(application *renomApplication) *cobra.Command {
	var projectRoot string
	var moduleName string
	var newName string

	command := &cobra.Command{
		Use:   renameModuleUseConstant,
		Short: renameModuleShortConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runDirect(identifier.KindModule, workflow.Params{ProjectRoot: projectRoot, EntityName: moduleName, NewName: newName})
		},
	}

	command.Flags().StringVar(&projectRoot, projectFlagNameConstant, "", projectFlagUsageConstant)
	command.Flags().StringVar(&moduleName, moduleFlagNameConstant, "", moduleFlagUsageConstant)
	command.Flags().StringVar(&newName, newNameFlagNameConstant, "", newNameFlagUsageConstant)
	_ = command.MarkFlagRequired(projectFlagNameConstant)
	_ = command.MarkFlagRequired(moduleFlagNameConstant)
	_ = command.MarkFlagRequired(newNameFlagNameConstant)

	return command
}

// runDirect confirms the operation (unless --yes or --dry-run was given)
// and delegates to workflow.RunDirect. The confirmation step is ambient CLI
// behavior, not part of the core workflow: spec.md §9(c) only specifies
// revert confirmation for the interactive wizard, so it is kept out of the
// workflow package and applied here at the CLI boundary instead.
func (application *renomApplication) runDirect(kind identifier.Kind, params workflow.Params) error {
	if !application.configuration.DryRun && !application.configuration.AssumeYes {
		confirmationMessage := fmt.Sprintf(confirmationPromptProjectTemplateConstant, kind, params.NewName)
		if params.EntityName != "" {
			confirmationMessage = fmt.Sprintf(confirmationPromptWithEntityTemplateConstant, kind, params.EntityName, params.NewName)
		}

		confirmationPrompter := prompt.NewIOPrompter(os.Stdin, os.Stdout)
		confirmed, confirmError := confirmationPrompter.Confirm(confirmationMessage, true)
		if confirmError != nil {
			return confirmError
		}
		if !confirmed {
			application.logger.Basic("aborted: operator declined confirmation")
			return nil
		}
	}

	return workflow.RunDirect(kind, params, application.logger, application.configuration.DryRun)
}
