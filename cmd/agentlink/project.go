package agentlink

import (
	"fmt"
	"io"

	"github.com/arthur-debert/agentlink/pkg/commands"
	"github.com/spf13/cobra"
)

func newInitCmd(g *globalFlags) *cobra.Command {
	var link bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			res, err := commands.Init(cmd.Context(), commands.InitOptions{
				Options: g.options(nil),
				Link:    link,
			})
			if err != nil {
				return err
			}

			switch {
			case !res.Created:
				err = r.RenderMessage("Skipped", fmt.Sprintf(MsgSourceExists, res.Source))
			case res.DryRun:
				if err = r.RenderMessage("DryRun", MsgDryRunNotice); err == nil {
					err = r.RenderMessage("Changed", fmt.Sprintf(MsgSourceWouldMake, res.Source))
				}
			default:
				err = r.RenderMessage("Success", fmt.Sprintf(MsgSourceCreated, res.Source))
			}
			if err != nil {
				return err
			}

			if res.Link == nil {
				return nil
			}
			if err := r.RenderReport(res.Link.Display); err != nil {
				return err
			}
			if res.Link.Failed() {
				return &exitError{code: ExitFailure, err: fmt.Errorf(MsgErrTargetsFailed, res.Link.Report.FailedCount())}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&link, "link", false, MsgFlagInitLink)

	return cmd
}

func newGenConfigCmd(g *globalFlags) *cobra.Command {
	var write, defaults bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := commands.GenConfig(commands.GenConfigOptions{
				Options:  g.options(nil),
				Write:    write,
				Defaults: defaults,
			})
			if err != nil {
				return err
			}

			if !write {
				_, err := io.WriteString(cmd.OutOrStdout(), res.Content)
				return err
			}

			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			if res.Written || g.dryRun {
				return r.RenderMessage("Success", fmt.Sprintf(MsgConfigWritten, res.Path))
			}
			return r.RenderMessage("Skipped", fmt.Sprintf(MsgConfigExists, res.Path))
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)

	return cmd
}

func newShowCmd(g *globalFlags) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:     "show",
		Short:   MsgShowShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := commands.Show(g.options(nil))
			if err != nil {
				return err
			}

			if plain {
				_, err := io.WriteString(cmd.OutOrStdout(), res.Content)
				return err
			}

			r, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return r.RenderDocument(res.Source, res.Content)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, MsgFlagShowPlain)

	return cmd
}
