package pool

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrContentUnavailable is returned when a quiz file or master pool cannot
// be loaded or yields no usable questions. Callers render it as an error
// state, never a blank session.
var ErrContentUnavailable = errors.New("quiz content unavailable")

// schemaCache caches compiled schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// LoadQuizFile reads and validates a hand-authored quiz file.
func LoadQuizFile(path string) (*QuizFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrContentUnavailable, filepath.Base(path), err)
	}

	if err := validateAgainst("quiz-file", quizFileSchema, raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContentUnavailable, filepath.Base(path), err)
	}

	var f QuizFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrContentUnavailable, filepath.Base(path), err)
	}

	if f.ID == "" {
		f.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	if f.Title == "" {
		f.Title = f.ID
	}
	return &f, nil
}

// FindQuizFile loads dir/<quizID>.json when that file exists. It
// returns nil without error when dir is empty or holds no such file,
// so callers fall back to generated questions.
func FindQuizFile(dir, quizID string) (*QuizFile, error) {
	if dir == "" || quizID == "" {
		return nil, nil
	}
	path := filepath.Join(dir, quizID+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	return LoadQuizFile(path)
}

// LoadMasterPool reads and validates a master pool of drug records.
func LoadMasterPool(path string) ([]DrugRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrContentUnavailable, filepath.Base(path), err)
	}

	if err := validateAgainst("master-pool", masterPoolSchema, raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContentUnavailable, filepath.Base(path), err)
	}

	var records []DrugRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrContentUnavailable, filepath.Base(path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s holds no records", ErrContentUnavailable, filepath.Base(path))
	}
	return records, nil
}

// validateAgainst validates raw JSON against the named schema source.
func validateAgainst(name, schemaSrc string, raw []byte) error {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	compiled, err := getCompiledSchema(name, schemaSrc)
	if err != nil {
		return fmt.Errorf("compile schema %q: %w", name, err)
	}

	if err := compiled.Validate(parsed); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// getCompiledSchema returns a cached compiled schema or compiles and caches it.
func getCompiledSchema(name, src string) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The jsonschema library expects a parsed JSON value (any), not raw bytes.
	var def any
	if err := json.Unmarshal([]byte(src), &def); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
