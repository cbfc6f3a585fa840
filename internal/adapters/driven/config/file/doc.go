// Package file persists eddkit configuration as a TOML file and reports
// edits made to it while a long running command is active.
package file
