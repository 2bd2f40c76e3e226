// Command moviedb manages a personal movie collection stored in a JSON or CSV
// file. Every subcommand loads the collection, applies one change or query,
// and exits; `moviedb menu` offers the same operations as an interactive loop.
//
// Configuration is read from ~/.config/moviedb/config.toml, then
// ./moviedb.toml, and may be overridden with the global flags.
package main
