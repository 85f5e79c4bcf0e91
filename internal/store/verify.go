package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/taskman/internal/task"
)

// VerifyOptions controls backing-file verification.
type VerifyOptions struct {
	// SchemaPath is the path to the JSON Schema file.
	// If empty or missing, verification uses only minimal fallback checks.
	SchemaPath string
}

// VerifyResult contains verification results.
type VerifyResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema bool // true if JSON Schema validation was performed
}

// CheckError reports a problem found in the durable task file, with the
// location it was found at.
type CheckError struct {
	Path string // dot path into the file, e.g. tasks[2].due_date
	Err  error
}

func (e *CheckError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *CheckError) Unwrap() error {
	return e.Err
}

// Verify checks the durable copy of the collection, not the in-memory one:
// it is a diagnostic for files edited by hand or written by other tools.
// Loading never depends on it. When a schema file is available the file is
// validated against it; otherwise minimal in-process checks run (unique
// positive ids, known enum values, well-formed dates).
func (s *Store) Verify(opts VerifyOptions) *VerifyResult {
	result := &VerifyResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("task file not found: %s", s.path))
			return result
		}
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("read task file: %w", err))
		return result
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Errorf("parse task file: %w", err))
		return result
	}

	if opts.SchemaPath != "" {
		if verifyWithSchema(result, doc, opts.SchemaPath); result.UsedSchema {
			return result
		}
		result.Warnings = append(result.Warnings, "JSON Schema validation not available, using minimal checks")
	}

	verifyMinimal(result, doc)
	return result
}

// verifyWithSchema attempts JSON Schema validation. When the schema file
// is absent or broken it records a warning and leaves UsedSchema false so
// the caller falls back to minimal checks.
func verifyWithSchema(result *VerifyResult, doc interface{}, schemaPath string) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema path: %v", err))
		return
	}
	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("schema file not found: %s", absPath))
		} else {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to read schema file: %v", err))
		}
		return
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	schema, err := compiler.Compile(absPath)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("invalid schema file: %v", err))
		return
	}

	result.UsedSchema = true
	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
}

// verifyMinimal performs fallback checks without JSON Schema.
func verifyMinimal(result *VerifyResult, doc interface{}) {
	entries, ok := doc.([]interface{})
	if !ok {
		result.Valid = false
		result.Errors = append(result.Errors, &CheckError{
			Err: fmt.Errorf("task file must be an array of records"),
		})
		return
	}

	seen := make(map[int]bool, len(entries))
	for i, entry := range entries {
		path := fmt.Sprintf("tasks[%d]", i)
		record, ok := entry.(map[string]interface{})
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, &CheckError{
				Path: path,
				Err:  fmt.Errorf("entry is not a record"),
			})
			continue
		}
		for _, err := range verifyRecord(record, path, seen) {
			result.Valid = false
			result.Errors = append(result.Errors, err)
		}
	}
}

func verifyRecord(record map[string]interface{}, path string, seen map[int]bool) []error {
	var errs []error

	id, ok := record["id"].(float64)
	switch {
	case !ok || id != float64(int(id)):
		errs = append(errs, &CheckError{Path: path + ".id", Err: fmt.Errorf("must be an integer")})
	case id < 1:
		errs = append(errs, &CheckError{Path: path + ".id", Err: fmt.Errorf("must be positive, got %d", int(id))})
	case seen[int(id)]:
		errs = append(errs, &CheckError{Path: path + ".id", Err: fmt.Errorf("duplicate id %d", int(id))})
	default:
		seen[int(id)] = true
	}

	if desc, ok := record["description"].(string); !ok || desc == "" {
		errs = append(errs, &CheckError{Path: path + ".description", Err: fmt.Errorf("missing required field")})
	}

	if p, ok := record["priority"].(string); ok && !task.Priority(p).Valid() {
		errs = append(errs, &CheckError{
			Path: path + ".priority",
			Err:  fmt.Errorf("invalid priority %q, must be one of: high, medium, low", p),
		})
	}

	st, ok := record["status"].(string)
	if !ok || !task.Status(st).Valid() {
		errs = append(errs, &CheckError{
			Path: path + ".status",
			Err:  fmt.Errorf("invalid status %q, must be one of: pending, completed", st),
		})
	}

	if due, ok := record["due_date"].(string); ok && due != "" {
		if _, err := task.NormalizeDueDate(due); err != nil {
			errs = append(errs, &CheckError{
				Path: path + ".due_date",
				Err:  fmt.Errorf("invalid date %q, must be YYYY-MM-DD", due),
			})
		}
	}

	return errs
}

func appendSchemaErrors(result *VerifyResult, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *VerifyResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &CheckError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath converts a JSON Pointer (RFC 6901) to a dot-notation
// path, e.g. "/2/due_date" becomes "[2].due_date".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	parts := strings.Split(ptr, "/")
	path := ""
	for _, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}
