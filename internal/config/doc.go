// Package config loads, normalizes, and validates rabbit-tools configuration.
//
// Settings come from a TOML file found via an explicit path or the search
// list (/etc/rabbit_tools, then ~/.rabbit_tools) and may be overridden with
// RABBIT_TOOLS_* environment variables. Write and InitPath back the
// `config init` command.
package config
