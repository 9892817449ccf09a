package library

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/shelfview/pkg/errors"
)

// Format identifies a serialization of a [Library].
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported formats in display order.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

// FormatFromPath picks a format from a file extension (.json, .yaml, .yml, .toml).
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat,
			"unsupported library file extension %q (must be .json, .yaml, .yml or .toml)", ext)
	}
}

// Decode reads a library in the given format.
//
// All formats share the same field names:
//
//	frameWidth: 1000
//	shelves:
//	  - books:
//	      - title: Dune
//	        author: {firstName: Frank, lastName: Herbert}
//	        year: 1965
func Decode(r io.Reader, format Format) (Library, error) {
	var lib Library
	var err error

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&lib)
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&lib)
		if err == io.EOF {
			err = nil
		}
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(&lib)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown field %q", undecoded[0].String())
			}
		}
	default:
		return Library{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported library format %q", format)
	}

	if err != nil {
		return Library{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s library", format)
	}
	return lib, nil
}

// Encode writes lib in the given format.
func Encode(w io.Writer, lib Library, format Format) error {
	var err error

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(lib)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(lib)
		if err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(lib)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported library format %q", format)
	}

	if err != nil {
		return fmt.Errorf("encode %s library: %w", format, err)
	}
	return nil
}

// Load reads a library file, choosing the format from its extension.
func Load(path string) (Library, error) {
	if err := errors.ValidatePath(path); err != nil {
		return Library{}, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return Library{}, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Library{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "library file %s", path)
	}
	if err != nil {
		return Library{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f, format)
}

// Save writes lib to path, choosing the format from its extension.
func Save(path string, lib Library) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(f, lib, format); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
