package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/diary/pkg/codec"
	"github.com/aretw0/diary/pkg/core"
)

// Serializer defines how to read and write a specific file format.
type Serializer interface {
	// Parse reads from r and returns a Document.
	Parse(r io.Reader) (*core.Document, error)
	// Serialize converts the Document to bytes.
	Serialize(doc *core.Document) ([]byte, error)
}

// DefaultExt is used for paths without a registered extension.
const DefaultExt = ".diary"

// DefaultSerializers returns the standard set of serializers.
func DefaultSerializers(strict bool) map[string]Serializer {
	text := NewTextSerializer()
	return map[string]Serializer{
		".diary":   text,
		".journal": text,
		".txt":     text,
		".json":    NewJSONSerializer(strict),
		".yaml":    NewYAMLSerializer(strict),
		".yml":     NewYAMLSerializer(strict),
	}
}

// --- Text Serializer ---

// TextSerializer handles the native line-oriented journal format.
type TextSerializer struct{}

// NewTextSerializer creates a new journal text serializer.
func NewTextSerializer() *TextSerializer {
	return &TextSerializer{}
}

func (s *TextSerializer) Parse(r io.Reader) (*core.Document, error) {
	return codec.Decode(r)
}

func (s *TextSerializer) Serialize(doc *core.Document) ([]byte, error) {
	return codec.Serialize(doc)
}

// --- Structured export ---

// exportDoc is the shape shared by the JSON and YAML exports.
type exportDoc struct {
	Name    string        `json:"name" yaml:"name"`
	Entries []exportEntry `json:"entries" yaml:"entries"`
}

type exportEntry struct {
	History []exportCommit `json:"history" yaml:"history"`
}

type exportCommit struct {
	Time time.Time `json:"time" yaml:"time"`
	Text string    `json:"text" yaml:"text"`
}

func toExport(doc *core.Document) exportDoc {
	out := exportDoc{Name: doc.Name(), Entries: make([]exportEntry, 0, doc.Len())}
	for _, e := range doc.Entries() {
		var ee exportEntry
		for _, c := range e.History() {
			ee.History = append(ee.History, exportCommit{Time: c.Time(), Text: c.Text()})
		}
		out.Entries = append(out.Entries, ee)
	}
	return out
}

func fromExport(in exportDoc) (*core.Document, error) {
	doc := core.NewDocument(in.Name)
	for i, ee := range in.Entries {
		commits := make([]core.Commit, 0, len(ee.History))
		for _, c := range ee.History {
			commits = append(commits, core.NewCommit(c.Time, c.Text))
		}
		e, err := core.EntryFromHistory(commits)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		doc.AppendEntry(e)
	}
	return doc, nil
}

// --- JSON Serializer ---

// JSONSerializer handles reading and writing JSON exports.
type JSONSerializer struct {
	// Strict rejects unknown fields.
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Parse(r io.Reader) (*core.Document, error) {
	decoder := json.NewDecoder(r)
	if s.Strict {
		decoder.DisallowUnknownFields()
	}
	var payload exportDoc
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return fromExport(payload)
}

func (s *JSONSerializer) Serialize(doc *core.Document) ([]byte, error) {
	return json.MarshalIndent(toExport(doc), "", "  ")
}

// --- YAML Serializer ---

// YAMLSerializer handles reading and writing YAML exports.
type YAMLSerializer struct {
	// Strict rejects unknown fields.
	Strict bool
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(strict bool) *YAMLSerializer {
	return &YAMLSerializer{Strict: strict}
}

func (s *YAMLSerializer) Parse(r io.Reader) (*core.Document, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(s.Strict)

	var payload exportDoc
	if err := decoder.Decode(&payload); err != nil {
		if err == io.EOF {
			return core.NewDocument(""), nil
		}
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return fromExport(payload)
}

func (s *YAMLSerializer) Serialize(doc *core.Document) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toExport(doc)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
