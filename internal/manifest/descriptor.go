package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// FileName is the manifest file inside the template and generated projects.
const FileName = "package.json"

type field struct {
	key   string
	value json.RawMessage
}

// Descriptor is a package.json document whose top-level fields keep their
// original order and raw encoding.
type Descriptor struct {
	fields []field
}

// Parse decodes a JSON object into a Descriptor.
func Parse(data []byte) (*Descriptor, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("parsing manifest: top level must be an object")
	}

	d := &Descriptor{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing manifest: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("parsing manifest: unexpected token %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("parsing manifest field %q: %w", key, err)
		}
		d.fields = append(d.fields, field{key: key, value: raw})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing manifest: trailing data after object")
	}
	return d, nil
}

// Load reads and parses name from fsys.
func Load(fsys fs.FS, name string) (*Descriptor, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", name, err)
	}
	return Parse(data)
}

// Keys returns the top-level keys in document order.
func (d *Descriptor) Keys() []string {
	keys := make([]string, len(d.fields))
	for i, f := range d.fields {
		keys[i] = f.key
	}
	return keys
}

// Raw returns the raw JSON value stored under key.
func (d *Descriptor) Raw(key string) (json.RawMessage, bool) {
	for _, f := range d.fields {
		if f.key == key {
			return f.value, true
		}
	}
	return nil, false
}

// String returns the string value under key, or "" when it is absent or not
// a string.
func (d *Descriptor) String(key string) string {
	raw, ok := d.Raw(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Name returns the manifest's "name" field.
func (d *Descriptor) Name() string { return d.String("name") }

// Version returns the manifest's "version" field.
func (d *Descriptor) Version() string { return d.String("version") }

// Description returns the manifest's "description" field.
func (d *Descriptor) Description() string { return d.String("description") }

// SetString overwrites key with a string value, keeping its position. A new
// key is appended at the end.
func (d *Descriptor) SetString(key, value string) error {
	raw, err := encodeString(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	for i := range d.fields {
		if d.fields[i].key == key {
			d.fields[i].value = raw
			return nil
		}
	}
	d.fields = append(d.fields, field{key: key, value: raw})
	return nil
}

// Marshal renders the descriptor as 2-space indented JSON with a trailing
// newline.
func (d *Descriptor) Marshal() ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, f := range d.fields {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := encodeString(f.key)
		if err != nil {
			return nil, err
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(f.value)
	}
	compact.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("formatting manifest: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// CheckVersion reports whether the "version" field is a semantic version.
func (d *Descriptor) CheckVersion() error {
	v := d.Version()
	if v == "" {
		return fmt.Errorf("manifest has no version")
	}
	if _, err := semver.StrictNewVersion(v); err != nil {
		return fmt.Errorf("version %q is not a semantic version: %w", v, err)
	}
	return nil
}

func encodeString(s string) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return json.RawMessage(strings.TrimSuffix(buf.String(), "\n")), nil
}
