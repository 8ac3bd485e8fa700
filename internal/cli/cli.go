// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/Ephraim-9/epistle/internal/config"
	"github.com/Ephraim-9/epistle/internal/hogs"
	"github.com/Ephraim-9/epistle/internal/render"
	"github.com/Ephraim-9/epistle/internal/tokens"
	"github.com/Ephraim-9/epistle/internal/types"
	"github.com/Ephraim-9/epistle/internal/utils"
	"github.com/Ephraim-9/epistle/internal/walker"
)

const (
	formatFlagName      = "format"
	personaFlagName     = "persona"
	taskFlagName        = "task"
	excludeFlagName     = "exclude"
	includeFlagName     = "include"
	maxFileSizeFlagName = "max-file-size"
	outputFlagName      = "output"
	stdoutFlagName      = "stdout"
	copyFlagName        = "copy"
	hogsFlagName        = "hogs"
	hogDepthFlagName    = "hog-depth"
	versionFlagName     = "version"

	formatFlagDescription      = "output format (markdown or xml)"
	personaFlagDescription     = "persona preamble to open the document with"
	taskFlagDescription        = "task block to close the document with"
	excludeFlagDescription     = "exclude glob pattern (repeatable)"
	includeFlagDescription     = "force-include glob pattern (repeatable)"
	maxFileSizeFlagDescription = "inline content threshold in bytes"
	outputFlagDescription      = "output file name"
	stdoutFlagDescription      = "write the document to standard output"
	copyFlagDescription        = "copy the document to the system clipboard"
	hogsFlagDescription        = "print a token hotspot report (files, dirs, or auto)"
	hogDepthFlagDescription    = "directory depth for the dirs hotspot mode"
	versionFlagDescription     = "display application version"
	versionTemplate            = "epistle version: %s\n"

	defaultDirectoryArgument = "."
	rootUse                  = "epistle [directory]"
	rootShortDescription     = "pack a source tree into a single document"
	rootLongDescription      = `epistle scans a directory, filters it through ignore rules, and packs the
surviving files into one self-contained document for language models.
The document carries a directory tree, token accounting, and redacted file
content in markdown or xml form.`
	rootUsageExample = `  # Pack the current directory into epistle-<dir>.md
  epistle

  # Pack a project as xml with a security persona and copy it
  epistle --format xml --persona sec --copy ~/src/project

  # Inspect which directories dominate the token budget
  epistle --hogs dirs --hog-depth 2 --stdout . > /dev/null`

	invalidFormatMessageFormat     = "unsupported output format %q (expected markdown or xml)"
	invalidHogModeMessageFormat    = "unsupported hotspot mode %q (expected files, dirs, or auto)"
	errorResolveDirectoryFormat    = "resolving directory %q: %w"
	errorDirectoryMissingFormat    = "directory %q does not exist"
	errorNotDirectoryFormat        = "%q is not a directory"
	errorWriteDocumentFormat       = "writing %s: %w"
	errorClipboardFormat           = "copying document to clipboard: %w"
	summaryMessageFormat           = "Packed %d files (%d tokens, %d ignored) into %s\n"
	summaryStdoutTarget            = "stdout"
	hogReportHeader                = "Token hotspots:\n"
	hogReportLineFormat            = "  %-40s %8d tokens\n"
	generatedFileExtensionMarkdown = ".md"
	generatedFileExtensionXML      = ".xml"
	generatedFilePrefix            = "epistle-"
)

// commandOptions holds every flag value of the root command.
type commandOptions struct {
	format           string
	persona          string
	task             string
	excludePatterns  []string
	includePatterns  []string
	maxFileSizeBytes int64
	outputName       string
	useStdout        bool
	copyToClipboard  bool
	hogMode          string
	hogDepth         int
}

// Execute runs the epistle application.
func Execute() error {
	rootCommand := createRootCommand()
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var options commandOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			directoryArgument := defaultDirectoryArgument
			if len(arguments) == 1 {
				directoryArgument = arguments[0]
			}
			return runPack(command, directoryArgument, options)
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}

	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.Flags().StringVarP(&options.format, formatFlagName, "f", "", formatFlagDescription)
	rootCommand.Flags().StringVarP(&options.persona, personaFlagName, "p", "", personaFlagDescription)
	rootCommand.Flags().StringVarP(&options.task, taskFlagName, "t", "", taskFlagDescription)
	rootCommand.Flags().StringArrayVarP(&options.excludePatterns, excludeFlagName, "e", nil, excludeFlagDescription)
	rootCommand.Flags().StringArrayVarP(&options.includePatterns, includeFlagName, "i", nil, includeFlagDescription)
	rootCommand.Flags().Int64Var(&options.maxFileSizeBytes, maxFileSizeFlagName, 0, maxFileSizeFlagDescription)
	rootCommand.Flags().StringVarP(&options.outputName, outputFlagName, "o", "", outputFlagDescription)
	rootCommand.Flags().BoolVar(&options.useStdout, stdoutFlagName, false, stdoutFlagDescription)
	rootCommand.Flags().BoolVarP(&options.copyToClipboard, copyFlagName, "c", false, copyFlagDescription)
	rootCommand.Flags().StringVar(&options.hogMode, hogsFlagName, "", hogsFlagDescription)
	rootCommand.Flags().IntVar(&options.hogDepth, hogDepthFlagName, 0, hogDepthFlagDescription)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runPack executes the scan-render-deliver pipeline for one directory.
func runPack(command *cobra.Command, directoryArgument string, options commandOptions) error {
	rootDirectory, resolveError := resolveRootDirectory(directoryArgument)
	if resolveError != nil {
		return resolveError
	}

	configuration, configurationError := config.LoadApplicationConfiguration(config.LoadOptions{WorkingDirectory: rootDirectory})
	if configurationError != nil {
		return configurationError
	}
	effective := mergeFlagsOverConfiguration(command, configuration, options)

	outputFormat := strings.ToLower(effective.format)
	if outputFormat == "" {
		outputFormat = types.FormatMarkdown
	}
	if !isSupportedFormat(outputFormat) {
		return fmt.Errorf(invalidFormatMessageFormat, outputFormat)
	}
	if effective.hogMode != "" && !isSupportedHogMode(effective.hogMode) {
		return fmt.Errorf(invalidHogModeMessageFormat, effective.hogMode)
	}

	maxFileSizeBytes := effective.maxFileSizeBytes
	if maxFileSizeBytes <= 0 {
		maxFileSizeBytes = walker.DefaultMaxFileSizeBytes
	}

	// A previous run's artifact in the root must never pack itself.
	scanExcludes := append(append([]string{}, effective.excludePatterns...),
		generatedFilePrefix+"*"+generatedFileExtensionMarkdown,
		generatedFilePrefix+"*"+generatedFileExtensionXML,
	)

	scanResult, scanError := walker.Scan(rootDirectory, scanExcludes, effective.includePatterns, maxFileSizeBytes)
	if scanError != nil {
		return scanError
	}

	renderer, rendererError := render.NewRenderer()
	if rendererError != nil {
		return rendererError
	}
	renderResult, renderError := renderer.Render(scanResult.Files, types.RenderOptions{
		Format:        outputFormat,
		RootDirectory: rootDirectory,
		Persona:       effective.persona,
		Task:          effective.task,
	})
	if renderError != nil {
		return renderError
	}

	if effective.hogMode != "" {
		printHogReport(renderResult, effective.hogMode, effective.hogDepth)
	}

	deliveryTarget, deliveryError := deliverDocument(rootDirectory, outputFormat, effective, renderResult.Document)
	if deliveryError != nil {
		return deliveryError
	}

	fmt.Fprintf(os.Stderr, summaryMessageFormat,
		len(scanResult.Files), renderResult.TotalTokens, scanResult.IgnoredCount, deliveryTarget)
	return nil
}

// mergeFlagsOverConfiguration applies configuration file defaults beneath any
// flag the user actually set on the command line.
func mergeFlagsOverConfiguration(command *cobra.Command, configuration config.ApplicationConfiguration, options commandOptions) commandOptions {
	effective := options
	if !command.Flags().Changed(formatFlagName) && configuration.Format != "" {
		effective.format = configuration.Format
	}
	if !command.Flags().Changed(personaFlagName) && configuration.Persona != "" {
		effective.persona = configuration.Persona
	}
	if !command.Flags().Changed(outputFlagName) && configuration.Output != "" {
		effective.outputName = configuration.Output
	}
	if !command.Flags().Changed(copyFlagName) && configuration.Clipboard != nil {
		effective.copyToClipboard = *configuration.Clipboard
	}
	if !command.Flags().Changed(maxFileSizeFlagName) && configuration.MaxFileSizeBytes > 0 {
		effective.maxFileSizeBytes = configuration.MaxFileSizeBytes
	}
	effective.excludePatterns = append(append([]string{}, configuration.Exclude...), options.excludePatterns...)
	effective.includePatterns = append(append([]string{}, configuration.Include...), options.includePatterns...)
	return effective
}

// resolveRootDirectory converts the directory argument to a validated absolute path.
func resolveRootDirectory(directoryArgument string) (string, error) {
	absolutePath, absolutePathError := filepath.Abs(directoryArgument)
	if absolutePathError != nil {
		return "", fmt.Errorf(errorResolveDirectoryFormat, directoryArgument, absolutePathError)
	}
	directoryInfo, statError := os.Stat(absolutePath)
	if statError != nil {
		if os.IsNotExist(statError) {
			return "", fmt.Errorf(errorDirectoryMissingFormat, directoryArgument)
		}
		return "", fmt.Errorf(errorResolveDirectoryFormat, directoryArgument, statError)
	}
	if !directoryInfo.IsDir() {
		return "", fmt.Errorf(errorNotDirectoryFormat, directoryArgument)
	}
	return filepath.Clean(absolutePath), nil
}

// deliverDocument writes the document to the chosen destination and returns a
// label for the summary line. File delivery removes stale generated artifacts
// from the root directory first.
func deliverDocument(rootDirectory string, outputFormat string, options commandOptions, document string) (string, error) {
	if options.copyToClipboard {
		if clipboardError := clipboard.WriteAll(document); clipboardError != nil {
			return "", fmt.Errorf(errorClipboardFormat, clipboardError)
		}
	}

	if options.useStdout {
		fmt.Print(document)
		return summaryStdoutTarget, nil
	}

	if _, cleanupError := RemoveStaleArtifacts(rootDirectory); cleanupError != nil {
		return "", cleanupError
	}

	outputName := options.outputName
	if outputName == "" {
		outputName = defaultOutputName(rootDirectory, outputFormat)
	}
	outputPath := filepath.Join(rootDirectory, outputName)
	stampedDocument := stampArtifact(document, outputFormat)
	if writeError := os.WriteFile(outputPath, []byte(stampedDocument), 0o644); writeError != nil {
		return "", fmt.Errorf(errorWriteDocumentFormat, outputPath, writeError)
	}
	return outputPath, nil
}

// defaultOutputName derives the artifact name from the root directory base name.
func defaultOutputName(rootDirectory string, outputFormat string) string {
	extension := generatedFileExtensionMarkdown
	if outputFormat == types.FormatXML {
		extension = generatedFileExtensionXML
	}
	return generatedFilePrefix + filepath.Base(rootDirectory) + extension
}

// printHogReport writes the token hotspot ranking to standard error so it
// never contaminates a document piped through stdout.
func printHogReport(renderResult types.RenderResult, hogMode string, hogDepth int) {
	accounting := tokens.Accounting{
		FileStats:       renderResult.FileStats,
		DirectoryTokens: renderResult.DirectoryTokens,
		TotalTokens:     renderResult.TotalTokens,
	}
	entries := hogs.Analyze(accounting, hogMode, hogDepth)

	fmt.Fprint(os.Stderr, hogReportHeader)
	for _, entry := range entries {
		fmt.Fprintf(os.Stderr, hogReportLineFormat, entry.Path, entry.Tokens)
	}
}

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatMarkdown, types.FormatXML:
		return true
	default:
		return false
	}
}

// isSupportedHogMode reports whether the provided hotspot mode is recognized.
func isSupportedHogMode(mode string) bool {
	switch mode {
	case types.HogModeFiles, types.HogModeDirs, types.HogModeAuto:
		return true
	default:
		return false
	}
}
