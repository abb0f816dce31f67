package problems

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{
			name:        "empty array",
			input:       `[]`,
			expectError: false,
		},
		{
			name:        "array of objects",
			input:       `[{"id": 1}, {"id": 2, "problemType": "quiz"}]`,
			expectError: false,
		},
		{
			name:        "not json",
			input:       `{"id": 1},`,
			expectError: true,
		},
		{
			name:        "empty input",
			input:       ``,
			expectError: true,
		},
		{
			name:        "top-level object",
			input:       `{"id": 1}`,
			expectError: true,
		},
		{
			name:        "top-level null",
			input:       `null`,
			expectError: true,
		},
		{
			name:        "array of non-objects",
			input:       `[{"id": 1}, 2]`,
			expectError: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := Parse([]byte(test.input))
			if (err != nil) != test.expectError {
				t.Fatalf("expected error: %v, got: %v", test.expectError, err)
			}
			if err != nil {
				var parseErr ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("expected a ParseError, got: %T", err)
				}
				return
			}
			if c == nil {
				t.Fatal("expected a collection, got nil")
			}
		})
	}
}

func TestReadNotFound(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "no-such-file.json"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	var notFoundErr NotFoundError
	if !errors.As(err, &notFoundErr) {
		t.Errorf("expected a NotFoundError, got: %T", err)
	}
}

func TestEnsureProblemType(t *testing.T) {
	tests := []struct {
		name              string
		input             string
		expectedDefaulted int
		expected          []map[string]any
	}{
		{
			name:              "empty collection",
			input:             `[]`,
			expectedDefaulted: 0,
			expected:          []map[string]any{},
		},
		{
			name:              "missing field is defaulted",
			input:             `[{"id": 1}, {"id": 2, "problemType": "quiz"}]`,
			expectedDefaulted: 1,
			expected: []map[string]any{
				{"id": float64(1), "problemType": "code"},
				{"id": float64(2), "problemType": "quiz"},
			},
		},
		{
			name:              "existing values are never overridden",
			input:             `[{"problemType": "quiz"}, {"problemType": "code"}, {"problemType": 5}]`,
			expectedDefaulted: 0,
			expected: []map[string]any{
				{"problemType": "quiz"},
				{"problemType": "code"},
				{"problemType": float64(5)},
			},
		},
		{
			name:              "unknown fields survive untouched",
			input:             `[{"id": 7, "tags": ["dp", "graph"], "meta": {"level": 3}}]`,
			expectedDefaulted: 1,
			expected: []map[string]any{
				{
					"id":          float64(7),
					"tags":        []any{"dp", "graph"},
					"meta":        map[string]any{"level": float64(3)},
					"problemType": "code",
				},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := Parse([]byte(test.input))
			if err != nil {
				t.Fatalf("failed to parse input: %v", err)
			}

			defaulted, err := c.EnsureProblemType(DefaultProblemType)
			if err != nil {
				t.Fatalf("failed to ensure problemType: %v", err)
			}
			if defaulted != test.expectedDefaulted {
				t.Errorf("expected %d defaulted, got %d", test.expectedDefaulted, defaulted)
			}
			if c.Len() != len(test.expected) {
				t.Fatalf("expected %d records, got %d", len(test.expected), c.Len())
			}

			got := []map[string]any{}
			for _, r := range c.Records() {
				m, err := r.Map()
				if err != nil {
					t.Fatalf("failed to convert record to map: %v", err)
				}
				got = append(got, m)
			}
			if !reflect.DeepEqual(got, test.expected) {
				t.Errorf("expected records: %v, got: %v", test.expected, got)
			}

			if c.MissingProblemType() != 0 {
				t.Errorf("expected no missing problemType after the pass, got %d", c.MissingProblemType())
			}
		})
	}
}

func TestOrderPreserved(t *testing.T) {
	input := `[{"id": 3}, {"id": 1}, {"id": 2, "problemType": "quiz"}]`
	c, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("failed to parse input: %v", err)
	}
	if _, err := c.EnsureProblemType(DefaultProblemType); err != nil {
		t.Fatalf("failed to ensure problemType: %v", err)
	}

	expectedIds := []int64{3, 1, 2}
	for i, r := range c.Records() {
		if got := r.Get("id").Int(); got != expectedIds[i] {
			t.Errorf("record %d: expected id %d, got %d", i, expectedIds[i], got)
		}
	}
}

func TestSaveFormat(t *testing.T) {
	file := filepath.Join(t.TempDir(), "problems.json")
	input := `[{"id": 1}, {"id": 2, "problemType": "quiz"}]`
	err := os.WriteFile(file, []byte(input), 0644)
	if err != nil {
		t.Fatalf("failed to write input file: %v", err)
	}

	c, err := Read(file)
	if err != nil {
		t.Fatalf("failed to read collection: %v", err)
	}
	if _, err := c.EnsureProblemType(DefaultProblemType); err != nil {
		t.Fatalf("failed to ensure problemType: %v", err)
	}
	if err := c.Save(file); err != nil {
		t.Fatalf("failed to save collection: %v", err)
	}

	got, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	expected := `[
    {
        "id": 1,
        "problemType": "code"
    },
    {
        "id": 2,
        "problemType": "quiz"
    }
]
`
	if string(got) != expected {
		t.Errorf("expected output:\n%s\ngot:\n%s", expected, got)
	}
}

func TestSaveEmpty(t *testing.T) {
	file := filepath.Join(t.TempDir(), "problems.json")
	err := os.WriteFile(file, []byte(`[]`), 0644)
	if err != nil {
		t.Fatalf("failed to write input file: %v", err)
	}

	c, err := Read(file)
	if err != nil {
		t.Fatalf("failed to read collection: %v", err)
	}
	if err := c.Save(file); err != nil {
		t.Fatalf("failed to save collection: %v", err)
	}

	got, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}
	if string(got) != "[]\n" {
		t.Errorf("expected empty array, got: %s", got)
	}
}

func TestIdempotence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "problems.json")
	input := `[{"id": 1}, {"id": 2, "problemType": "quiz"}, {"problemType": "code"}]`
	err := os.WriteFile(file, []byte(input), 0644)
	if err != nil {
		t.Fatalf("failed to write input file: %v", err)
	}

	var outputs [][]byte
	for i := 0; i < 2; i++ {
		c, err := Read(file)
		if err != nil {
			t.Fatalf("run %d: failed to read collection: %v", i, err)
		}
		if _, err := c.EnsureProblemType(DefaultProblemType); err != nil {
			t.Fatalf("run %d: failed to ensure problemType: %v", i, err)
		}
		if err := c.Save(file); err != nil {
			t.Fatalf("run %d: failed to save collection: %v", i, err)
		}
		out, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("run %d: failed to read output: %v", i, err)
		}
		outputs = append(outputs, out)
	}

	if !reflect.DeepEqual(outputs[0], outputs[1]) {
		t.Errorf("second run changed the file:\nfirst:\n%s\nsecond:\n%s", outputs[0], outputs[1])
	}
}
