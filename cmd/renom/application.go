package main

import (
	"errors"
	"fmt"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ziyabahceci/renom/internal/renom/config"
	"github.com/ziyabahceci/renom/internal/renom/identifier"
	"github.com/ziyabahceci/renom/internal/renom/renomlog"
	"github.com/ziyabahceci/renom/internal/renom/workflow"
)

const (
	applicationNameConstant             = "renom"
	applicationShortDescriptionConstant = "Transactional renamer for Unreal Engine project artifacts"
	applicationLongDescriptionConstant  = "renom renames an Unreal Engine project, plugin, target, or module and every file that references it, applying every change atomically and reverting on failure."

	applicationVersionFallbackConstant    = "dev"
	applicationDevelopmentVersionConstant = "(devel)"

	configFileFlagNameConstant  = "config"
	configFileFlagUsageConstant = "Optional path to a configuration file (YAML)."

	logLevelFlagNameConstant  = "log-level"
	logLevelFlagUsageConstant = "Override the configured log level (debug|info|warn|error)."

	logFormatFlagNameConstant  = "log-format"
	logFormatFlagUsageConstant = "Override the configured log format (structured|console)."

	dryRunFlagNameConstant  = "dry-run"
	dryRunFlagUsageConstant = "Report the computed changeset without applying it."

	assumeYesFlagNameConstant      = "yes"
	assumeYesFlagShorthandConstant = "y"
	assumeYesFlagUsageConstant     = "Skip the pre-execution confirmation prompt."

	configurationLoadErrorTemplateConstant = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant    = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant        = "unable to flush logger: %w"
)

// renomApplication wires the cobra root command, the loaded Configuration,
// and the renomlog.Logger shared by every subcommand, grounded on the
// teacher's CLIApplication in cmd/cli/main.go.
type renomApplication struct {
	rootCommand *cobra.Command
	logger      *renomlog.Logger

	configuration         config.Configuration
	configurationFilePath string
	logLevelFlagValue     string
	logFormatFlagValue    string
	dryRunFlagValue       bool
	assumeYesFlagValue    bool
}

// resolveApplicationVersion reports the module version embedded by the Go
// toolchain at build time, falling back to a constant when build info is
// unavailable or the binary was built without a resolved module version
// (e.g. `go run`), grounded on the teacher's versionResolver build-info
// fallback pattern in cmd/cli.
func resolveApplicationVersion() string {
	buildInfo, available := debug.ReadBuildInfo()
	if !available {
		return applicationVersionFallbackConstant
	}
	if buildInfo.Main.Version == "" || buildInfo.Main.Version == applicationDevelopmentVersionConstant {
		return applicationVersionFallbackConstant
	}
	return buildInfo.Main.Version
}

func newRenomApplication() *renomApplication {
	application := &renomApplication{}

	rootCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		Version:       resolveApplicationVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
	}

	persistentFlags := rootCommand.PersistentFlags()
	persistentFlags.StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	persistentFlags.StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	persistentFlags.StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)
	persistentFlags.BoolVar(&application.dryRunFlagValue, dryRunFlagNameConstant, false, dryRunFlagUsageConstant)
	persistentFlags.BoolVarP(&application.assumeYesFlagValue, assumeYesFlagNameConstant, assumeYesFlagShorthandConstant, false, assumeYesFlagUsageConstant)

	rootCommand.AddCommand(
		newRenameProjectCommand(application),
		newRenamePluginCommand(application),
		newRenameTargetCommand(application),
		newRenameModuleCommand(application),
		newWizardCommand(application),
	)

	application.rootCommand = rootCommand
	return application
}

// Execute runs the configured cobra command tree and always flushes the
// logger, mirroring the teacher's CLIApplication.Execute/flushLogger split.
func (application *renomApplication) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

func (application *renomApplication) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := config.Load(application.configurationFilePath)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}
	application.configuration = loadedConfiguration

	identifier.Configure(loadedConfiguration.Identifier.ProjectMaxLength, loadedConfiguration.Identifier.EntityMaxLength)
	workflow.Configure(loadedConfiguration.BackupDirectoryName, loadedConfiguration.RequireCleanDescriptor)

	if command.Flags().Changed(logLevelFlagNameConstant) {
		application.configuration.LogLevel = application.logLevelFlagValue
	}
	if command.Flags().Changed(logFormatFlagNameConstant) {
		application.configuration.LogFormat = application.logFormatFlagValue
	}
	if command.Flags().Changed(dryRunFlagNameConstant) {
		application.configuration.DryRun = application.dryRunFlagValue
	}
	if command.Flags().Changed(assumeYesFlagNameConstant) {
		application.configuration.AssumeYes = application.assumeYesFlagValue
	}

	logger, loggerCreationError := renomlog.New(renomlog.Level(application.configuration.LogLevel), renomlog.Format(application.configuration.LogFormat))
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}
	application.logger = logger

	return nil
}

func (application *renomApplication) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}
