// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ManifestEntry pins an expected schema hash to a path, letting a
// batch run fail a file whose schema hash drifted from what the
// manifest author expected. The check runs after the file has been
// decoded and before its JSON dump or re-encoded output is written; a
// file whose schema cannot be loaded fails in decoding before the
// check is reached.
type ManifestEntry struct {
	Path         string `yaml:"path"`
	ExpectedHash string `yaml:"expectedHash"`
}

func loadManifest(path string) ([]ManifestEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var entries []ManifestEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return entries, nil
}

// verifyHash reports whether got matches the manifest entry's
// expectedHash (lowercase hex), when one was declared.
func (m ManifestEntry) verifyHash(got []byte) error {
	if m.ExpectedHash == "" {
		return nil
	}
	if hex.EncodeToString(got) != m.ExpectedHash {
		return fmt.Errorf("schema hash mismatch: manifest says %s, file carries %s", m.ExpectedHash, hex.EncodeToString(got))
	}
	return nil
}
