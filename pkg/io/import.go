package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/bracketgen/pkg/bracket"
	errs "github.com/matzehuels/bracketgen/pkg/errors"
)

// Format is an input encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// FormatFromPath picks the encoding from the file extension. Unknown
// extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".xlsx":
		return FormatXLSX
	default:
		return FormatJSON
	}
}

// headerCells are first-row values treated as a spreadsheet header.
var headerCells = map[string]bool{"team": true, "teams": true, "name": true, "names": true}

// =============================================================================
// Teams
// =============================================================================

// ReadTeams decodes a JSON array of team names from r.
// ReadTeams does not close r.
func ReadTeams(r io.Reader) ([]string, error) {
	return ReadTeamsFormat(r, FormatJSON)
}

// ReadTeamsFormat decodes a team list in the given encoding from r.
func ReadTeamsFormat(r io.Reader, f Format) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read teams")
	}
	return DecodeTeams(data, f)
}

// DecodeTeams decodes a team list in the given encoding.
func DecodeTeams(data []byte, f Format) ([]string, error) {
	switch f {
	case FormatXLSX:
		return decodeTeamsXLSX(data)
	case FormatYAML:
		var teams *[]string
		if err := yaml.Unmarshal(data, &teams); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "team list must be a YAML sequence of names")
		}
		if teams == nil {
			return nil, errs.New(errs.ErrCodeInvalidInput, "team list must be a YAML sequence of names")
		}
		return *teams, nil
	default:
		var teams *[]string
		if err := json.Unmarshal(data, &teams); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "team list must be a JSON array of strings")
		}
		if teams == nil {
			return nil, errs.New(errs.ErrCodeInvalidInput, "team list must be a JSON array of strings")
		}
		return *teams, nil
	}
}

func decodeTeamsXLSX(data []byte) ([]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open spreadsheet")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read sheet %q", sheets[0])
	}

	var teams []string
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		name := strings.TrimSpace(row[0])
		if name == "" {
			continue
		}
		if i == 0 && headerCells[strings.ToLower(name)] {
			continue
		}
		teams = append(teams, name)
	}
	if teams == nil {
		teams = []string{}
	}
	return teams, nil
}

// ImportTeams reads the team list at path, choosing the encoding from the
// extension. A missing file fails with [errs.ErrCodeFileNotFound].
func ImportTeams(path string) ([]string, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	teams, err := DecodeTeams(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return teams, nil
}

// =============================================================================
// Picks
// =============================================================================

// ReadPicks decodes a JSON pick file from r.
// ReadPicks does not close r.
func ReadPicks(r io.Reader) (bracket.Picks, error) {
	return ReadPicksFormat(r, FormatJSON)
}

// ReadPicksFormat decodes a pick file in the given encoding from r.
func ReadPicksFormat(r io.Reader, f Format) (bracket.Picks, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidStructure, err, "read picks")
	}
	return DecodePicks(data, f)
}

// DecodePicks decodes a pick file in the given encoding. Spreadsheets are
// not a pick encoding.
func DecodePicks(data []byte, f Format) (bracket.Picks, error) {
	var picks bracket.Picks
	switch f {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &picks); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidStructure, err, "picks must be a list of rounds")
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &picks); err != nil {
			return nil, errs.Wrap(errs.ErrCodeInvalidStructure, err, "picks must be a list of rounds")
		}
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "picks cannot be read from %s", f)
	}
	return picks, nil
}

// ImportPicks reads the pick file at path.
func ImportPicks(path string) (bracket.Picks, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	picks, err := DecodePicks(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return picks, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "read %s", path)
	}
	return data, nil
}
