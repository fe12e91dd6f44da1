// Package commands defines the divequote CLI.
//
// Commands
//
//   - bot       Run the Telegram quote wizard
//   - quote     Price one service for a boat from flags
//   - services  List the configured services
//   - migrate   Apply, roll back or inspect the services schema
//
// The root command loads configuration and the logger before any
// subcommand runs. Subcommands build only the collaborators they need.
package commands
