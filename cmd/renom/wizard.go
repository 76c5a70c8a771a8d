package main

import (
	"github.com/spf13/cobra"

	"github.com/ziyabahceci/renom/internal/renom/identifier"
	"github.com/ziyabahceci/renom/internal/renom/prompt"
	"github.com/ziyabahceci/renom/internal/renom/workflow"
)

const (
	wizardUseConstant   = "wizard"
	wizardShortConstant = "Interactively choose and perform a rename operation"

	wizardKindPromptConstant = "What do you want to rename?"
)

var wizardKindOptions = []string{
	string(identifier.KindProject),
	string(identifier.KindPlugin),
	string(identifier.KindTarget),
	string(identifier.KindModule),
}

// newWizardCommand builds `renom wizard`, the fully interactive entry point
// that gathers every parameter through prompt.SurveyPrompter instead of
// flags.
func newWizardCommand(application *renomApplication) *cobra.Command {
	command := &cobra.Command{
		Use:   wizardUseConstant,
		Short: wizardShortConstant,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			prompter := prompt.SurveyPrompter{}

			selectedKind, selectError := prompter.Select(wizardKindPromptConstant, wizardKindOptions)
			if selectError != nil {
				return selectError
			}

			return workflow.RunInteractive(identifier.Kind(selectedKind), prompter, application.logger, application.configuration.DryRun)
		},
	}

	return command
}
