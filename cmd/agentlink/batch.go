package agentlink

import (
	"context"
	"fmt"

	"github.com/arthur-debert/agentlink/pkg/commands"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/spf13/cobra"
)

type batchFunc func(ctx context.Context, opts commands.Options) (*commands.BatchResult, error)

// runBatch executes a batch command, renders its report and maps the
// outcome to an exit error
func runBatch(cmd *cobra.Command, g *globalFlags, args []string, run batchFunc, failOnDrift bool) error {
	logger := logging.GetLogger("cmd." + cmd.Name())

	r, err := g.renderer(cmd)
	if err != nil {
		return err
	}

	res, err := run(cmd.Context(), g.options(args))
	if err != nil {
		return err
	}
	warnFallback(cmd, res.Env)

	if err := r.RenderReport(res.Display); err != nil {
		return err
	}

	logger.Info().
		Int("targets", res.Display.Summary.Total).
		Int("failed", res.Display.Summary.Failed).
		Int("drift", res.Display.Summary.Drift).
		Msg("Command finished")

	if res.Failed() {
		return &exitError{code: ExitFailure, err: fmt.Errorf(MsgErrTargetsFailed, res.Report.FailedCount())}
	}
	if failOnDrift && res.Unhealthy() {
		return &exitError{code: ExitFailure, err: fmt.Errorf(MsgErrDrift, len(res.Report.Unhealthy()))}
	}
	return nil
}

// targetCompletion completes configured target paths
func targetCompletion(g *globalFlags) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		env, err := commands.LoadEnvironment(g.options(nil))
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		seen := make(map[string]bool, len(args))
		for _, arg := range args {
			seen[arg] = true
		}

		var available []string
		for _, target := range env.Config.Targets {
			if !seen[target] {
				available = append(available, target)
			}
		}
		return available, cobra.ShellCompDirectiveNoFileComp
	}
}

func newLinkCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:               "link [targets...]",
		Short:             MsgLinkShort,
		Long:              MsgLinkLong,
		Example:           MsgLinkExample,
		GroupID:           "core",
		ValidArgsFunction: targetCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, g, args, commands.Link, false)
		},
	}
}

func newSyncCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:               "sync [targets...]",
		Short:             MsgSyncShort,
		Long:              MsgSyncLong,
		Example:           MsgSyncExample,
		GroupID:           "core",
		ValidArgsFunction: targetCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, g, args, commands.Sync, false)
		},
	}
}

func newUnlinkCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:               "unlink [targets...]",
		Short:             MsgUnlinkShort,
		Long:              MsgUnlinkLong,
		Example:           MsgUnlinkExample,
		GroupID:           "core",
		ValidArgsFunction: targetCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, g, args, commands.Unlink, false)
		},
	}
}

func newStatusCmd(g *globalFlags) *cobra.Command {
	var noFail bool

	cmd := &cobra.Command{
		Use:               "status [targets...]",
		Short:             MsgStatusShort,
		Long:              MsgStatusLong,
		Example:           MsgStatusExample,
		GroupID:           "core",
		ValidArgsFunction: targetCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, g, args, commands.Status, !noFail)
		},
	}

	cmd.Flags().BoolVar(&noFail, "no-fail", false, MsgFlagNoFail)

	return cmd
}
