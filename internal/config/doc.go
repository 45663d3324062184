// Package config handles configuration loading for gateway-editor.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from GATEWAY_EDITOR_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/gateway-editor/config.yaml (or config.toml)
//  3. ~/.config/gateway-editor/config.yaml (or config.toml)
//
// Files ending in .toml are parsed as TOML; anything else as YAML.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	storage:
//	  path: "${HOME}/.local/share/gateway-editor/containers.db"
//
// # Configuration Sections
//
// Storage:
//
//	storage:
//	  driver: "sqlite"       # sqlite (pure Go) or sqlite3 (cgo)
//	  path: "/var/lib/gateway-editor/containers.db"
//	  busy_timeout: "5s"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//
// Per-game resource overrides:
//
//	games:
//	  starcraft:
//	    resource_name: "Gateways"
//	    resource_id: 128
//	  w3:
//	    resource_id: 131
//
// The same file in TOML:
//
//	[storage]
//	driver = "sqlite"
//	path = "/var/lib/gateway-editor/containers.db"
//
//	[games.w3]
//	resource_id = 131
package config
