package io

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/skylinelab/watertower/pkg/errors"
)

// Profile is a named height profile read from a file.
// Name is empty when the source format carries no name.
type Profile struct {
	Name    string `json:"name,omitempty" toml:"name"`
	Heights []int  `json:"heights" toml:"heights"`
}

// ReadProfile reads a height profile from path, detecting the format by
// extension. Heights are validated (non-negative) before returning.
func ReadProfile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Profile{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "profile %s", path)
		}
		return Profile{}, err
	}

	var p Profile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		p, err = parseJSON(data)
	case ".toml":
		p, err = parseTOML(data)
	case ".csv":
		p, err = parseCSV(data)
	default:
		p, err = parseText(data)
	}
	if err != nil {
		return Profile{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse %s", path)
	}

	if err := errors.ValidateHeights(p.Heights); err != nil {
		return Profile{}, err
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// parseJSON accepts either a bare array of heights or a Profile object.
func parseJSON(data []byte) (Profile, error) {
	var heights []int
	if err := json.Unmarshal(data, &heights); err == nil {
		return Profile{Heights: heights}, nil
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// parseTOML reads a scene file:
//
//	name = "downtown"
//	heights = [5, 2, 2, 5]
func parseTOML(data []byte) (Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// parseCSV flattens all records into one height list, skipping empty fields.
func parseCSV(data []byte) (Profile, error) {
	r := csv.NewReader(strings.NewReader(string(data)))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return Profile{}, err
	}

	var heights []int
	for _, record := range records {
		for _, field := range record {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}
			h, err := strconv.Atoi(field)
			if err != nil {
				return Profile{}, err
			}
			heights = append(heights, h)
		}
	}
	return Profile{Heights: heights}, nil
}

// parseText splits on any whitespace, one integer per token.
func parseText(data []byte) (Profile, error) {
	var heights []int
	for _, tok := range strings.Fields(string(data)) {
		h, err := strconv.Atoi(tok)
		if err != nil {
			return Profile{}, err
		}
		heights = append(heights, h)
	}
	return Profile{Heights: heights}, nil
}

// ParseHeights converts string arguments (e.g. CLI positionals) into a
// validated height list.
func ParseHeights(args []string) ([]int, error) {
	heights := make([]int, 0, len(args))
	for _, a := range args {
		h, err := strconv.Atoi(a)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "height %q is not an integer", a)
		}
		heights = append(heights, h)
	}
	if err := errors.ValidateHeights(heights); err != nil {
		return nil, err
	}
	return heights, nil
}
