// Package config loads agentlink configuration.
//
// Configuration is layered with koanf, later layers winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. user config: $XDG_CONFIG_HOME/agentlink/config.toml
//  3. project config: .agentlink.toml or agentlink.toml in the project root
//  4. AGENTLINK_* environment variables (lists are comma separated)
//  5. command-line overrides
//
// Lists replace, they do not append: a project that sets targets gets
// exactly those targets.
package config
