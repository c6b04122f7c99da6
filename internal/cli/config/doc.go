// Package config holds the spot-cli configuration.
//
//   - spec.go: CLIConfig and its defaults (~/.spot/cli.yaml)
//   - loader.go: layering of defaults, file, .env, SPOT_* env and flags
//   - set.go: edits made by `spot-cli config set`
package config
