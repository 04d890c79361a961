// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

// Command entity-bin decodes (and optionally re-encodes) Noita-style
// entity-scene files. Argument parsing, directory walking, and JSON
// dumping live here rather than in the core codec package, which stays
// a pure byte-in/byte-out transform.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/urfave/cli/v2"

	entitybin "github.com/NathanSnail/entity-bin"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	app := &cli.App{
		Name:  "entity-bin",
		Usage: "decode and re-encode Noita entity-scene files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "schema-dir",
				Usage: "directory of <hash>.xml schema descriptors",
			},
			&cli.StringFlag{
				Name:  "reencode",
				Usage: "re-encode each decoded scene into this directory (same basename) and exit nonzero if it doesn't round-trip byte-identical",
			},
			&cli.StringFlag{
				Name:  "manifest",
				Usage: "YAML manifest of {path, expectedHash} pairs to verify after decoding, before output is written",
			},
			&cli.StringFlag{
				Name:  "zstd-debug-dump",
				Usage: "write each file's JSON dump, zstd-compressed, into this directory as <basename>.json.zst",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "trace each decode/encode stage",
			},
		},
		Args:      true,
		ArgsUsage: "<path>",
		Action: func(ctx *cli.Context) error {
			return run(ctx, logger)
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("entity-bin failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context, logger *slog.Logger) error {
	target := ctx.Args().First()
	if target == "" {
		return cli.Exit("expected a path argument", 1)
	}

	schemaDir := ctx.String("schema-dir")
	if schemaDir == "" {
		schemaDir = defaultSchemaDir()
	}

	var manifest map[string]ManifestEntry
	if manifestPath := ctx.String("manifest"); manifestPath != "" {
		entries, err := loadManifest(manifestPath)
		if err != nil {
			return err
		}
		manifest = make(map[string]ManifestEntry, len(entries))
		for _, e := range entries {
			manifest[e.Path] = e
		}
	}

	verbose := ctx.Bool("verbose")
	opts := entitybin.Options{
		Verbose: verbose,
		LogCb: func(format string, args ...any) {
			logger.Info(fmt.Sprintf(format, args...))
		},
	}
	codec := entitybin.NewCodec(schemaDir, opts)

	files, err := collectFiles(target)
	if err != nil {
		return err
	}

	failures := 0
	for _, path := range files {
		if err := processFile(codec, path, manifest, ctx.String("reencode"), ctx.String("zstd-debug-dump"), logger); err != nil {
			logger.Error("decode failed", "path", path, "error", err)
			failures++
		}
	}
	if failures > 0 {
		return cli.Exit(fmt.Sprintf("%d file(s) failed to decode", failures), 1)
	}
	return nil
}

// collectFiles walks a directory non-recursively for basenames
// containing "entities"; a regular file is taken as-is.
func collectFiles(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", target, err)
	}
	if !info.IsDir() {
		return []string{target}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", target, err)
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.Contains(entry.Name(), "entities") {
			out = append(out, filepath.Join(target, entry.Name()))
		}
	}
	return out, nil
}

func processFile(codec *entitybin.Codec, path string, manifest map[string]ManifestEntry, reencodeDir, debugDumpDir string, logger *slog.Logger) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	scene, err := codec.Decode(raw)
	if err != nil {
		return err
	}

	if entry, ok := manifest[path]; ok {
		if err := entry.verifyHash(scene.Hash); err != nil {
			return err
		}
	}

	dump, err := json.MarshalIndent(scene, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(dump))

	if debugDumpDir != "" {
		outPath, err := writeCompressedDump(debugDumpDir, path, dump)
		if err != nil {
			return fmt.Errorf("write debug dump: %w", err)
		}
		logger.Info("wrote debug dump", "path", path, "out", outPath)
	}

	if reencodeDir != "" {
		reencoded, err := codec.Encode(scene)
		if err != nil {
			return fmt.Errorf("re-encode: %w", err)
		}
		if !bytes.Equal(raw, reencoded) {
			return fmt.Errorf("re-encode of %s is not byte-identical to the original (%d vs %d bytes)", path, len(reencoded), len(raw))
		}
		outPath := filepath.Join(reencodeDir, filepath.Base(path))
		if err := os.WriteFile(outPath, reencoded, 0o644); err != nil {
			return fmt.Errorf("write re-encoded file: %w", err)
		}
		logger.Info("re-encoded", "path", path, "out", outPath, "bytes", len(reencoded))
	}

	return nil
}

// writeCompressedDump zstd-compresses dump and writes it to dir as
// <basename(path)>.json.zst, for inspecting large directories without
// keeping the uncompressed JSON around.
func writeCompressedDump(dir, path string, dump []byte) (string, error) {
	outPath := filepath.Join(dir, filepath.Base(path)+".json.zst")
	f, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f)
	if err != nil {
		return "", err
	}
	if _, err := enc.Write(dump); err != nil {
		enc.Close()
		return "", err
	}
	return outPath, enc.Close()
}
