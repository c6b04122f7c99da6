// Package confloader layers configuration sources into a koanf instance.
//
// Priority (highest to lowest):
//
//  1. Values passed to LoadMap after Load, typically command-line flags
//  2. Environment variables with the configured prefix
//  3. A .env file, which never overrides variables already set
//  4. The YAML configuration file
//  5. Defaults passed to LoadMap before Load
//
// Watcher reports changes to individual files through fsnotify. It watches
// the parent directory so editors and atomic renames are seen too.
package confloader
