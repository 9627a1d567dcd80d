package cli

import "dockpanel/internal/cli/commands"

// Backend is an alias for the commands.Backend interface
type Backend = commands.Backend

// ServeFunc is an alias for commands.ServeFunc
type ServeFunc = commands.ServeFunc
