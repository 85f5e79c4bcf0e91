package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nibzard/taskman/internal/logging"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "description", "priority", "status", "created_at"],
    "properties": {
      "id": {"type": "integer", "minimum": 1},
      "description": {"type": "string", "minLength": 1},
      "priority": {"type": "string", "enum": ["high", "medium", "low"]},
      "status": {"type": "string", "enum": ["pending", "completed"]}
    }
  }
}`

func writeFiles(t *testing.T, data string) (path, schemaPath string) {
	t.Helper()
	dir := t.TempDir()
	path = filepath.Join(dir, "tasks.json")
	schemaPath = filepath.Join(dir, "tasks.schema.json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(schemaPath, []byte(testSchema), 0644); err != nil {
		t.Fatal(err)
	}
	return path, schemaPath
}

const validFile = `[
  {
    "id": 1,
    "description": "ok",
    "priority": "high",
    "status": "pending",
    "created_at": "2024-01-01T10:00:00",
    "category": "",
    "due_date": ""
  }
]`

func TestVerifyWithSchema(t *testing.T) {
	path, schemaPath := writeFiles(t, validFile)
	s := Open(path, logging.Discard())

	result := s.Verify(VerifyOptions{SchemaPath: schemaPath})
	if !result.UsedSchema {
		t.Fatalf("schema validation not performed: %v", result.Warnings)
	}
	if !result.Valid {
		t.Errorf("valid file flagged: %v", result.Errors)
	}
}

func TestVerifyWithSchemaRejectsBadPriority(t *testing.T) {
	bad := `[
  {
    "id": 1,
    "description": "ok",
    "priority": "urgent",
    "status": "pending",
    "created_at": "2024-01-01T10:00:00"
  }
]`
	path, schemaPath := writeFiles(t, bad)
	s := Open(path, logging.Discard())

	result := s.Verify(VerifyOptions{SchemaPath: schemaPath})
	if !result.UsedSchema {
		t.Fatalf("schema validation not performed: %v", result.Warnings)
	}
	if result.Valid {
		t.Error("invalid priority not flagged")
	}
	if len(result.Errors) == 0 {
		t.Error("no errors reported")
	}
}

func TestVerifyMissingSchemaFallsBack(t *testing.T) {
	path, _ := writeFiles(t, validFile)
	s := Open(path, logging.Discard())

	result := s.Verify(VerifyOptions{SchemaPath: filepath.Join(t.TempDir(), "nope.json")})
	if result.UsedSchema {
		t.Error("UsedSchema true with missing schema file")
	}
	if !result.Valid {
		t.Errorf("minimal checks flagged a valid file: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a fallback warning")
	}
}

func TestVerifyMinimalChecks(t *testing.T) {
	tests := []struct {
		name string
		data string
		ok   bool
	}{
		{"valid", validFile, true},
		{"not an array", `{"tasks": []}`, false},
		{"duplicate ids", `[
  {"id": 1, "description": "a", "priority": "low", "status": "pending", "created_at": "2024-01-01T10:00:00"},
  {"id": 1, "description": "b", "priority": "low", "status": "pending", "created_at": "2024-01-01T10:00:00"}
]`, false},
		{"non-positive id", `[
  {"id": 0, "description": "a", "priority": "low", "status": "pending", "created_at": "2024-01-01T10:00:00"}
]`, false},
		{"bad status", `[
  {"id": 1, "description": "a", "priority": "low", "status": "done", "created_at": "2024-01-01T10:00:00"}
]`, false},
		{"bad priority", `[
  {"id": 1, "description": "a", "priority": "urgent", "status": "pending", "created_at": "2024-01-01T10:00:00"}
]`, false},
		{"bad due date", `[
  {"id": 1, "description": "a", "priority": "low", "status": "pending", "created_at": "2024-01-01T10:00:00", "due_date": "2024-02-30"}
]`, false},
		{"missing description", `[
  {"id": 1, "priority": "low", "status": "pending", "created_at": "2024-01-01T10:00:00"}
]`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "tasks.json")
			if err := os.WriteFile(path, []byte(tt.data), 0644); err != nil {
				t.Fatal(err)
			}
			s := Open(path, logging.Discard())

			result := s.Verify(VerifyOptions{})
			if result.Valid != tt.ok {
				t.Errorf("Valid: got %v, want %v (errors: %v)", result.Valid, tt.ok, result.Errors)
			}
		})
	}
}

func TestVerifyMissingFile(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "tasks.json"), logging.Discard())
	result := s.Verify(VerifyOptions{})
	if !result.Valid {
		t.Errorf("missing file flagged invalid: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a not-found warning")
	}
}

func TestVerifyMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")
	if err := os.WriteFile(path, []byte("{{{"), 0644); err != nil {
		t.Fatal(err)
	}
	s := Open(path, logging.Discard())
	result := s.Verify(VerifyOptions{})
	if result.Valid {
		t.Error("malformed file not flagged")
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"/2", "[2]"},
		{"/2/due_date", "[2].due_date"},
		{"#/0/status", "[0].status"},
	}
	for _, tt := range tests {
		if got := jsonPointerToPath(tt.ptr); got != tt.want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", tt.ptr, got, tt.want)
		}
	}
}
