// Package prompt defines the Prompter collaborator interface the wizard
// workflow drives, plus two implementations: an AlecAivazis/survey-backed
// interactive prompter and a bufio-based fallback (spec.md §6.2).
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
)

// Validator checks a single text answer, returning a human-readable reason
// when the answer is rejected.
type Validator func(candidate string) (bool, string)

// Prompter is the interactive collaborator a wizard workflow depends on:
// validated free text, single-choice selection, and yes/no confirmation.
// The core depends on no other prompting capability.
type Prompter interface {
	// Text prompts for a line of input, re-prompting while validate rejects
	// the answer.
	Text(message string, validate Validator) (string, error)
	// Select prompts for one choice among options.
	Select(message string, options []string) (string, error)
	// Confirm prompts for a yes/no answer, defaulting to defaultValue when
	// the user presses enter without typing anything.
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using AlecAivazis/survey/v2, rendering
// prompts on the attached terminal.
type SurveyPrompter struct{}

// Text implements Prompter.
func (SurveyPrompter) Text(message string, validate Validator) (string, error) {
	var answer string
	for {
		question := &survey.Input{Message: message}
		if askError := survey.AskOne(question, &answer); askError != nil {
			return "", askError
		}
		if validate == nil {
			return answer, nil
		}
		if valid, _ := validate(answer); valid {
			return answer, nil
		}
	}
}

// Select implements Prompter.
func (SurveyPrompter) Select(message string, options []string) (string, error) {
	var answer string
	question := &survey.Select{Message: message, Options: options}
	if askError := survey.AskOne(question, &answer); askError != nil {
		return "", askError
	}
	return answer, nil
}

// Confirm implements Prompter.
func (SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	answer := defaultValue
	question := &survey.Confirm{Message: message, Default: defaultValue}
	if askError := survey.AskOne(question, &answer); askError != nil {
		return false, askError
	}
	return answer, nil
}

// IOPrompter implements Prompter over a plain io.Reader/io.Writer pair,
// adapted from the teacher's audit.IOConfirmationPrompter for non-terminal
// use (scripted input, tests).
type IOPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewIOPrompter constructs an IOPrompter reading from input and writing
// prompts to output.
func NewIOPrompter(input io.Reader, output io.Writer) *IOPrompter {
	return &IOPrompter{reader: bufio.NewReader(input), writer: output}
}

func (prompter *IOPrompter) write(message string) error {
	if prompter.writer == nil {
		return nil
	}
	_, writeError := io.WriteString(prompter.writer, message)
	return writeError
}

func (prompter *IOPrompter) readLine() (string, error) {
	line, readError := prompter.reader.ReadString('\n')
	if readError != nil && readError != io.EOF {
		return "", readError
	}
	return strings.TrimSpace(line), nil
}

// Text implements Prompter.
func (prompter *IOPrompter) Text(message string, validate Validator) (string, error) {
	for {
		if writeError := prompter.write(message + " "); writeError != nil {
			return "", writeError
		}
		answer, readError := prompter.readLine()
		if readError != nil {
			return "", readError
		}
		if validate == nil {
			return answer, nil
		}
		if valid, reason := validate(answer); valid {
			return answer, nil
		} else if writeError := prompter.write(reason + "\n"); writeError != nil {
			return "", writeError
		}
	}
}

// Select implements Prompter by listing options and reading a 1-based
// index.
func (prompter *IOPrompter) Select(message string, options []string) (string, error) {
	if writeError := prompter.write(message + "\n"); writeError != nil {
		return "", writeError
	}
	for index, option := range options {
		if writeError := prompter.write(indexedOption(index, option)); writeError != nil {
			return "", writeError
		}
	}
	answer, readError := prompter.Text("> ", nil)
	if readError != nil {
		return "", readError
	}
	selectedIndex, parseError := parseSelection(answer, len(options))
	if parseError != nil {
		return "", parseError
	}
	return options[selectedIndex], nil
}

// Confirm implements Prompter, defaulting to defaultValue on an empty
// answer.
func (prompter *IOPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if writeError := prompter.write(message + " "); writeError != nil {
		return false, writeError
	}
	response, readError := prompter.readLine()
	if readError != nil {
		return false, readError
	}

	switch strings.ToLower(response) {
	case "":
		return defaultValue, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func indexedOption(index int, option string) string {
	return fmt.Sprintf("  %d) %s\n", index+1, option)
}

func parseSelection(answer string, optionCount int) (int, error) {
	selected, parseError := strconv.Atoi(strings.TrimSpace(answer))
	if parseError != nil || selected < 1 || selected > optionCount {
		return 0, fmt.Errorf("selection %q out of range 1-%d", answer, optionCount)
	}
	return selected - 1, nil
}
