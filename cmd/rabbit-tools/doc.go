// Package main hosts the rabbit-tools CLI entrypoint and command graph.
//
// The Cobra command tree exposes delete and purge, each either interactive
// (numbered queue listing and a selection prompt) or driven by queue names on
// the command line, plus config scaffolding and validation. Configuration
// resolution and logger setup are centralized in commandContext so the
// subcommands only wire the broker client into the selection engine.
//
// When the binary is invoked as rabdel, rabpurge, or rabbit_tools_config it
// behaves like the matching subcommand.
package main
