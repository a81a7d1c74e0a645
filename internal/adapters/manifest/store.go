// Package manifest reads and writes Composer manifests with stable key order.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.trai.ch/scenarios/internal/core/domain"
	"go.trai.ch/zerr"
)

// Indent is the indentation used for every manifest written.
const Indent = "    "

// Store implements ports.ManifestStore on the local filesystem.
type Store struct{}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{}
}

// Read parses the manifest at path, preserving key order.
func (s *Store) Read(path string) (*domain.Object, error) {
	// #nosec G304 -- path is the project manifest or a generated scenario manifest
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestNotFound, "cannot read "+path), "path", path)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	return Decode(data, path)
}

// Decode parses manifest bytes. path is only used for error context.
func Decode(data []byte, path string) (*domain.Object, error) {
	if !gjson.ValidBytes(data) {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestParseFailed, "invalid JSON"), "path", path)
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, zerr.With(zerr.Wrap(domain.ErrManifestParseFailed, "top level is not an object"), "path", path)
	}

	obj, _ := fromResult(root).(*domain.Object)
	return obj, nil
}

func fromResult(r gjson.Result) any {
	switch {
	case r.IsObject():
		obj := domain.NewObject()
		r.ForEach(func(key, value gjson.Result) bool {
			obj.Set(key.String(), fromResult(value))
			return true
		})
		return obj
	case r.IsArray():
		list := []any{}
		r.ForEach(func(_, value gjson.Result) bool {
			list = append(list, fromResult(value))
			return true
		})
		return list
	}

	switch r.Type {
	case gjson.String:
		return r.String()
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

// Write stores manifest at path.
func (s *Store) Write(path string, manifest *domain.Object) error {
	data, err := Encode(manifest)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

// SetConfig sets config.<key> to value in the manifest at path and re-indents the file.
func (s *Store) SetConfig(path, key, value string) error {
	// #nosec G304 -- path is a generated scenario manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	updated, err := sjson.SetBytes(data, domain.KeyConfig+"."+gjson.Escape(key), value)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	formatted, err := reindent(updated)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	if err := os.WriteFile(path, formatted, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

// Encode renders manifest with declaration key order, four-space indentation,
// unescaped slashes and HTML characters, and a trailing newline.
func Encode(manifest *domain.Object) ([]byte, error) {
	var compact bytes.Buffer
	if err := encodeValue(&compact, manifest); err != nil {
		return nil, err
	}
	return reindent(compact.Bytes())
}

func reindent(data []byte) ([]byte, error) {
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", Indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	switch t := v.(type) {
	case *domain.Object:
		if t == nil {
			buf.WriteString("{}")
			return nil
		}
		buf.WriteByte('{')
		for i, k := range t.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeScalar(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			child, _ := t.Get(k)
			if err := encodeValue(buf, child); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return encodeScalar(buf, v)
	}
}

func encodeScalar(buf *bytes.Buffer, v any) error {
	var scalar bytes.Buffer
	enc := json.NewEncoder(&scalar)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(scalar.Bytes(), "\n"))
	return nil
}
