package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"zigls/internal/platform"
	"zigls/internal/task"
)

var taskCwd string

func newScenarioCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scenario -- <command> [args...]",
		Short: "Translate a build task into a debug build template",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScenario,
	}
	cmd.Flags().StringVar(&taskCwd, "cwd", "", "Working directory of the task (defaults to the current directory)")
	return cmd
}

func runScenario(cmd *cobra.Command, args []string) error {
	bt, translator, err := taskFromArgs(args)
	if err != nil {
		return err
	}

	tmpl, ok := translator.Scenario(bt)
	if !ok {
		// Not a task we understand; an expected outcome, not a failure.
		cmd.PrintErrln("no scenario for task")
		return nil
	}

	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func newLaunchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch -- <command> [args...]",
		Short: "Translate a build task into a debug launch request",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runLaunch,
	}
	cmd.Flags().StringVar(&taskCwd, "cwd", "", "Working directory of the task (defaults to the current directory)")
	return cmd
}

func runLaunch(cmd *cobra.Command, args []string) error {
	bt, translator, err := taskFromArgs(args)
	if err != nil {
		return err
	}

	req, err := translator.Locate(bt)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func taskFromArgs(args []string) (task.BuildTask, task.Translator, error) {
	cwd := taskCwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return task.BuildTask{}, task.Translator{}, fmt.Errorf("resolve task cwd: %w", err)
		}
		cwd = wd
	}

	target, err := platform.Current()
	if err != nil {
		return task.BuildTask{}, task.Translator{}, err
	}

	bt := task.BuildTask{
		Command: args[0],
		Args:    args[1:],
		Cwd:     cwd,
	}
	return bt, task.New(target), nil
}
