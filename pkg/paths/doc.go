// Package paths resolves the project root and the XDG locations agentlink
// reads and writes.
//
// # Project root
//
// The root is, in order of precedence:
//
//   - the explicit root passed to New (the --root flag)
//   - the AGENTLINK_ROOT environment variable
//   - the nearest ancestor of the working directory holding a project
//     config file (.agentlink.toml or agentlink.toml) or a .git entry
//   - the working directory itself, reported through UsedFallback
//
// # XDG directories
//
//   - Config: $XDG_CONFIG_HOME/agentlink (override: AGENTLINK_CONFIG_DIR)
//   - State: $XDG_STATE_HOME/agentlink (log file)
package paths
