// Package agentlink is the agentlink command line interface
package agentlink

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/agentlink/internal/version"
	"github.com/arthur-debert/agentlink/pkg/cobrax/topics"
	"github.com/arthur-debert/agentlink/pkg/commands"
	"github.com/arthur-debert/agentlink/pkg/errors"
	"github.com/arthur-debert/agentlink/pkg/logging"
	"github.com/arthur-debert/agentlink/pkg/output"
	"github.com/arthur-debert/agentlink/pkg/output/styles"
	"github.com/arthur-debert/agentlink/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	verbosity int
	root      string
	format    string
	dryRun    bool
	mode      string
	workers   int
}

// options builds the commands options, restricted to targets when given
func (g *globalFlags) options(targets []string) commands.Options {
	return commands.Options{
		Root:    g.root,
		DryRun:  g.dryRun,
		Mode:    g.mode,
		Workers: g.workers,
		Targets: targets,
	}
}

// renderer creates the output renderer for cmd's output stream
func (g *globalFlags) renderer(cmd *cobra.Command) (output.Renderer, error) {
	format, err := output.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	return output.NewRenderer(format, cmd.OutOrStdout())
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "agentlink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")

			if _, err := output.ParseFormat(g.format); err != nil {
				return err
			}
			loadStyleOverrides()
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVar(&g.root, "root", "", MsgFlagRoot)
	pf.StringVar(&g.format, "format", "auto", MsgFlagFormat)
	pf.BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&g.mode, "mode", "", MsgFlagMode)
	pf.IntVar(&g.workers, "workers", 0, MsgFlagWorkers)

	_ = rootCmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp))
	_ = rootCmd.RegisterFlagCompletionFunc("mode", cobra.FixedCompletions(
		[]string{"auto", "symlink", "copy"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newLinkCmd(g))
	rootCmd.AddCommand(newSyncCmd(g))
	rootCmd.AddCommand(newUnlinkCmd(g))
	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newGenConfigCmd(g))
	rootCmd.AddCommand(newShowCmd(g))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	installTopics(rootCmd)

	return rootCmd
}

// installTopics replaces the help command with one that also knows the
// embedded help topics
func installTopics(rootCmd *cobra.Command) {
	sub, err := fs.Sub(topicFiles, "topics")
	if err != nil {
		return
	}
	tm, err := topics.Load(sub, topics.Options{Renderer: output.NewMarkdownRenderer()})
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load help topics")
		return
	}
	topics.Install(rootCmd, tm)
}

// loadStyleOverrides applies styles.yaml from the user config directory
func loadStyleOverrides() {
	path := filepath.Join(paths.UserConfigDir(), styles.FileName)
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := styles.LoadStyles(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Ignoring invalid style overrides")
		return
	}
	log.Debug().Str("path", path).Msg("Loaded style overrides")
}

// warnFallback tells the user that no project root marker was found
func warnFallback(cmd *cobra.Command, env *commands.Environment) {
	if env != nil && env.Paths.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, env.Paths.ProjectRoot())
	}
}
