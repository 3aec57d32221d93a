// Package config handles configuration management for cyrelease.
// It layers embedded TOML defaults, the user config file, a project
// .cyrelease.toml and CYRELEASE_ environment variables with koanf, then
// decodes the result into Config.
package config
