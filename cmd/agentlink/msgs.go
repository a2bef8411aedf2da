package agentlink

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Keep AI agent instruction files in sync with AGENTS.md"
	MsgLinkShort       = "Link every target to the source"
	MsgSyncShort       = "Refresh managed copies from the source"
	MsgUnlinkShort     = "Remove managed targets"
	MsgStatusShort     = "Show the state of every target"
	MsgInitShort       = "Create the source file from a template"
	MsgGenConfigShort  = "Print the effective configuration"
	MsgShowShort       = "Render the source file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgTopicsShort     = "Display available help topics"

	// Status messages
	MsgDryRunNotice    = "DRY RUN MODE - No changes were made"
	MsgSourceCreated   = "Created %s from template"
	MsgSourceExists    = "%s already exists, left untouched"
	MsgSourceWouldMake = "Would create %s from template"
	MsgConfigWritten   = "Wrote %s"
	MsgConfigExists    = "%s already exists, not overwritten"
	MsgManWritten      = "Wrote man pages to %s"
	MsgVersionFormat   = "agentlink version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrTargetsFailed = "%d target(s) failed"
	MsgErrDrift         = "%d target(s) need attention"
	MsgErrNoCommand     = "no command specified"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without executing them"
	MsgFlagRoot      = "Project root (default: nearest directory with .git or .agentlink.toml)"
	MsgFlagFormat    = "Output format: auto, term, text or json"
	MsgFlagMode      = "Materialization mode: auto, symlink or copy"
	MsgFlagWorkers   = "Number of targets processed in parallel (0 = number of CPUs)"
	MsgFlagNoFail    = "Exit 0 even when targets need attention"
	MsgFlagInitLink  = "Link every target after creating the source"
	MsgFlagWrite     = "Write .agentlink.toml in the project root"
	MsgFlagDefaults  = "Print the built-in defaults, commented out"
	MsgFlagManDir    = "Directory the man pages are written to"
	MsgFlagShowPlain = "Print the raw markdown"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/unlink-long.txt
	msgUnlinkLongRaw string
	MsgUnlinkLong    = strings.TrimSpace(msgUnlinkLongRaw)

	//go:embed msgs/unlink-example.txt
	msgUnlinkExampleRaw string
	MsgUnlinkExample    = strings.TrimRight(msgUnlinkExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)
