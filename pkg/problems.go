package problems // import "whisk/problemfix/pkg"

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// field every problem must carry after a migration
const ProblemTypeKey = "problemType"

// DefaultProblemType is assigned to problems that have no problemType field.
const DefaultProblemType = "code"

// Record is a single problem entry. Problems have no fixed schema, so the
// record is kept as raw JSON and only touched through key lookups. Fields we
// know nothing about round-trip untouched, in their original order.
type Record struct {
	raw json.RawMessage
}

func (r Record) MarshalJSON() ([]byte, error) {
	if r.raw == nil {
		return []byte("null"), nil
	}
	return r.raw, nil
}

func (r *Record) UnmarshalJSON(data []byte) error {
	r.raw = append(r.raw[0:0], data...)
	return nil
}

// Has reports whether the record has the given top-level field.
func (r Record) Has(key string) bool {
	return gjson.GetBytes(r.raw, key).Exists()
}

// Get looks up a field by gjson path.
func (r Record) Get(path string) gjson.Result {
	return gjson.GetBytes(r.raw, path)
}

// SetString sets a field to a string value, leaving the rest of the record
// byte-for-byte as it was.
func (r *Record) SetString(key string, value string) error {
	raw, err := sjson.SetBytes(r.raw, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	r.raw = raw
	return nil
}

// Map converts the record into a generic map, e.g. for running gojq queries.
func (r Record) Map() (map[string]any, error) {
	var m map[string]any
	err := json.Unmarshal(r.raw, &m)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return m, nil
}

// Collection is an ordered sequence of problem records read from a single
// file. It is built fresh on every read and holds no state besides the
// records themselves.
type Collection struct {
	records []Record
	// metadata
	Path string
}

// Read loads a whole problems file into memory. It returns a NotFoundError
// when the file is missing or unreadable, and a ParseError when the content
// is not a JSON array of objects.
func Read(srcPath string) (*Collection, error) {
	contents, err := os.ReadFile(srcPath)
	if err != nil {
		return nil, NewNotFoundError(fmt.Errorf("failed to read problems file: %w", err))
	}
	c, err := Parse(contents)
	if err != nil {
		return nil, err
	}
	c.Path = srcPath
	return c, nil
}

// Parse builds a collection from raw file contents. Only the top-level shape
// is validated, individual records keep whatever fields they came with.
func Parse(contents []byte) (*Collection, error) {
	if !gjson.ValidBytes(contents) {
		return nil, NewParseError(fmt.Errorf("problems file is not valid json"))
	}
	if !gjson.ParseBytes(contents).IsArray() {
		return nil, NewParseError(fmt.Errorf("problems file is not a json array"))
	}

	var records []Record
	err := json.Unmarshal(contents, &records)
	if err != nil {
		return nil, NewParseError(fmt.Errorf("failed to unmarshal problems: %w", err))
	}
	for i, r := range records {
		if !gjson.ParseBytes(r.raw).IsObject() {
			return nil, NewParseError(fmt.Errorf("problem %d is not a json object", i))
		}
	}

	return &Collection{records: records}, nil
}

func (c *Collection) Len() int {
	return len(c.records)
}

func (c *Collection) Records() []Record {
	return c.records
}

// EnsureProblemType backfills the problemType field on every record missing
// it and returns the number of records defaulted. Records that already have
// the field keep whatever value they hold, "code" or not.
func (c *Collection) EnsureProblemType(problemType string) (int, error) {
	defaulted := 0
	for i := range c.records {
		if c.records[i].Has(ProblemTypeKey) {
			continue
		}
		err := c.records[i].SetString(ProblemTypeKey, problemType)
		if err != nil {
			return defaulted, fmt.Errorf("failed to update problem %d: %w", i, err)
		}
		defaulted += 1
	}
	return defaulted, nil
}

// MissingProblemType counts records that have no problemType field yet.
func (c *Collection) MissingProblemType() int {
	missing := 0
	for _, r := range c.records {
		if !r.Has(ProblemTypeKey) {
			missing += 1
		}
	}
	return missing
}

func (c Collection) MarshalJSON() ([]byte, error) {
	var jsonBytes bytes.Buffer
	enc := json.NewEncoder(&jsonBytes)
	enc.SetEscapeHTML(false)
	// 4-space indent to stay byte-compatible with files written by the
	// previous tooling
	enc.SetIndent("", "    ")

	err := enc.Encode(c.records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal problems to json: %w", err)
	}
	return jsonBytes.Bytes(), nil
}

// Save overwrites destPath with the whole collection. The write is not
// atomic, an interrupted run can leave the file truncated.
func (c Collection) Save(destPath string) error {
	jsonBytes, err := c.MarshalJSON()
	if err != nil {
		return err
	}
	file, err := os.Create(destPath)
	if err != nil {
		return NewWriteError(fmt.Errorf("failed to open problems file for writing: %w", err))
	}
	defer file.Close()
	n, err := file.Write(jsonBytes)
	if err != nil {
		return NewWriteError(fmt.Errorf("failed to write problems file: %w", err))
	}
	log.Debug().Msgf("Wrote %d bytes into %s", n, destPath)

	return nil
}
