package mapio

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

// Format is a document encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// MaxDocumentSize bounds the bytes Read consumes.
const MaxDocumentSize = 8 << 20

var extensions = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f, err := errors.ValidateFormat(name, string(FormatJSON), string(FormatYAML), string(FormatTOML))
	return Format(f), err
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	if f, ok := extensions[filepath.Ext(path)]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeUnsupported, "cannot infer map format from %q", filepath.Base(path))
}

// Decode parses a document.
func Decode(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&doc)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.Decode(string(data), &doc)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				err = fmt.Errorf("unknown field %q", undecoded[0].String())
			}
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported map format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode %s map", format)
	}
	return &doc, nil
}

// Encode serializes a document.
func Encode(doc *Document, format Format) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		err = enc.Encode(doc)
		if err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(&buf).Encode(doc)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported map format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s map: %w", format, err)
	}
	return buf.Bytes(), nil
}

// Read decodes a document from r and builds the map. Read does not close r.
func Read(r io.Reader, format Format) (*mindmap.Map, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "map document exceeds %d bytes", MaxDocumentSize)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, err
	}
	return doc.ToMap()
}

// Write exports m to w.
func Write(m *mindmap.Map, w io.Writer, format Format) error {
	doc := FromMap(m)
	data, err := Encode(&doc, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// ReadFile reads a map document, inferring the format from the extension.
func ReadFile(path string) (*mindmap.Map, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "map %s not found", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, format)
}

// WriteFile exports m to path, inferring the format from the extension.
func WriteFile(m *mindmap.Map, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(m, f, format)
}
