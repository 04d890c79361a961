// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package main

import (
	"os"
	"path/filepath"
	"runtime"
)

const schemaDirEnvVar = "ENTITY_BIN_SCHEMA_DIR"

// defaultSchemaDir resolves the schema directory: an environment
// variable override, falling back to the platform-specific Steam
// install path for Noita's schema directory.
func defaultSchemaDir() string {
	if dir := os.Getenv(schemaDirEnvVar); dir != "" {
		return dir
	}
	if runtime.GOOS == "windows" {
		return `C:/Program Files (x86)/Steam/steamapps/common/Noita/data/schemas/`
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local/share/Steam/steamapps/common/Noita/data/schemas") + string(filepath.Separator)
}
