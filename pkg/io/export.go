package io

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/renameio/v2"

	"github.com/matzehuels/bracketgen/pkg/bracket"
)

// WritePicks encodes the bracket's picks as indented JSON and writes it to w.
// The output can be re-imported with [ReadPicks].
func WritePicks(w io.Writer, b *bracket.Bracket) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(b.Picks()); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportPicks replaces the pick file at path with b's picks. Readers such
// as a watching render see either the old file or the new one.
func ExportPicks(path string, b *bracket.Bracket) error {
	f, err := renameio.NewPendingFile(path, fileOptions(path)...)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Cleanup()

	if err := WritePicks(f, b); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	if err := renameio.WriteFile(path, data, 0o644, fileOptions(path)...); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// fileOptions keeps temporary files next to path and gives the result
// 0644 permissions regardless of umask.
func fileOptions(path string) []renameio.Option {
	return []renameio.Option{
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithStaticPermissions(0o644),
	}
}
