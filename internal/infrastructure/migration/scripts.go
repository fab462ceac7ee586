package migration

import "embed"

// Scripts holds the goose migrations, one directory per dialect.
//
//go:embed scripts
var Scripts embed.FS

// ScriptsDir returns the directory inside Scripts for driver.
func ScriptsDir(driver string) string {
	return "scripts/" + driver
}
