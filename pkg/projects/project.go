// Package projects loads the project listing and implements its text search,
// year filter and per-year counts.
package projects

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Well-known project fields.
const (
	FieldTitle       = "title"
	FieldYear        = "year"
	FieldImage       = "image"
	FieldDescription = "description"
	FieldURL         = "url"
)

// ErrNotObject indicates a project entry that is not a JSON object.
var ErrNotObject = errors.New("project is not a JSON object")

// Field is one key of a project entry in document order.
type Field struct {
	Key string
	Raw json.RawMessage
}

// Text renders the field value as plain text: strings verbatim, numbers as
// written, null as empty, arrays as comma-joined elements.
func (f Field) Text() string {
	return rawText(f.Raw)
}

func rawText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	switch trimmed[0] {
	case '"':
		var s string
		if json.Unmarshal(trimmed, &s) != nil {
			return string(trimmed)
		}

		return s
	case 'n':
		return ""
	case '[':
		var items []json.RawMessage
		if json.Unmarshal(trimmed, &items) != nil {
			return string(trimmed)
		}

		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = rawText(item)
		}

		return strings.Join(parts, ",")
	case '{':
		return "[object Object]"
	default:
		return string(trimmed)
	}
}

// Project is one entry of the listing. Fields keeps every key in document
// order; the well-known ones are also exposed as strings.
type Project struct {
	Title       string
	Year        string
	Image       string
	Description string
	URL         string
	Fields      []Field
}

// Get returns the text of field key, or "" when absent.
func (p Project) Get(key string) string {
	for _, f := range p.Fields {
		if f.Key == key {
			return f.Text()
		}
	}

	return ""
}

// UnmarshalJSON decodes an object while preserving key order.
func (p *Project) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode project: %w", err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrNotObject
	}

	var fields []Field

	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return fmt.Errorf("decode project key: %w", keyErr)
		}

		key, _ := keyTok.(string)

		var raw json.RawMessage

		valErr := dec.Decode(&raw)
		if valErr != nil {
			return fmt.Errorf("decode project %q: %w", key, valErr)
		}

		fields = append(fields, Field{Key: key, Raw: raw})
	}

	*p = FromFields(fields)

	return nil
}

// MarshalJSON encodes the project with its keys in document order.
func (p Project) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, f := range p.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		buf.WriteString(strconv.Quote(f.Key))
		buf.WriteByte(':')

		if len(f.Raw) == 0 {
			buf.WriteString("null")
		} else {
			buf.Write(f.Raw)
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// MarshalYAML encodes the project as a mapping with keys in document order.
func (p Project) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}

	for _, f := range p.Fields {
		var value any

		if len(f.Raw) > 0 {
			err := json.Unmarshal(f.Raw, &value)
			if err != nil {
				return nil, fmt.Errorf("decode project %q: %w", f.Key, err)
			}
		}

		valueNode := &yaml.Node{}

		err := valueNode.Encode(value)
		if err != nil {
			return nil, fmt.Errorf("encode project %q: %w", f.Key, err)
		}

		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key},
			valueNode,
		)
	}

	return node, nil
}

// FromFields builds a project from ordered fields.
func FromFields(fields []Field) Project {
	p := Project{Fields: fields}
	p.Title = p.Get(FieldTitle)
	p.Year = p.Get(FieldYear)
	p.Image = p.Get(FieldImage)
	p.Description = p.Get(FieldDescription)
	p.URL = p.Get(FieldURL)

	return p
}

// New builds a project from string fields, in the order given.
func New(kv ...string) Project {
	const pair = 2

	fields := make([]Field, 0, len(kv)/pair)

	for i := 0; i+1 < len(kv); i += pair {
		raw, _ := json.Marshal(kv[i+1])
		fields = append(fields, Field{Key: kv[i], Raw: raw})
	}

	return FromFields(fields)
}

// Haystack joins every field value with newlines, the text searched by a query.
func (p Project) Haystack() string {
	parts := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		parts[i] = f.Text()
	}

	return strings.Join(parts, "\n")
}

// Decode reads and validates a JSON project listing.
func Decode(r io.Reader) ([]Project, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read projects: %w", err)
	}

	validateErr := Validate(data)
	if validateErr != nil {
		return nil, validateErr
	}

	var list []Project

	err = json.Unmarshal(data, &list)
	if err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}

	return list, nil
}
