package schema

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_SchemaNotFound(t *testing.T) {
	store, _, _, _ := newTestStore(t)
	validator := NewValidator(store, nil)

	result := validator.Validate(context.Background(), "discovery/profile_schema", map[string]any{})
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Schema 'discovery/profile_schema' not found", result.Errors[0])
}

func TestValidator_RequiredFields(t *testing.T) {
	store, schemaRoot, _, _ := newTestStore(t)
	writeFile(t, filepath.Join(schemaRoot, "discovery", "profile_schema.json"), `{
		"type": "object",
		"required": ["name", "capabilities"],
		"properties": {
			"name": {"type": "string"},
			"capabilities": {"type": "array"}
		}
	}`)
	validator := NewValidator(store, nil)

	result := validator.Validate(context.Background(), "discovery/profile_schema", map[string]any{})
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)
	// Each error carries a pointer-style path followed by the reason.
	assert.Contains(t, result.Errors[0], "/")
	assert.Contains(t, result.Errors[0], ": ")
}

func TestValidator_EmptySchemaAcceptsAnything(t *testing.T) {
	store, schemaRoot, _, _ := newTestStore(t)
	writeFile(t, filepath.Join(schemaRoot, "anything.json"), `{}`)
	validator := NewValidator(store, nil)

	result := validator.Validate(context.Background(), "anything", map[string]any{})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidator_NestedViolationsCarryPointers(t *testing.T) {
	store, schemaRoot, _, _ := newTestStore(t)
	writeFile(t, filepath.Join(schemaRoot, "line_item.json"), `{
		"type": "object",
		"properties": {
			"quantity": {"type": "integer", "minimum": 1},
			"price": {
				"type": "object",
				"properties": {"amount_cents": {"type": "integer"}}
			}
		}
	}`)
	validator := NewValidator(store, nil)

	payload := map[string]any{
		"quantity": 0,
		"price":    map[string]any{"amount_cents": "not a number"},
	}
	result := validator.Validate(context.Background(), "line_item", payload)
	assert.False(t, result.Valid)
	require.NotEmpty(t, result.Errors)

	joined := ""
	for _, e := range result.Errors {
		joined += e + "\n"
	}
	assert.Contains(t, joined, "/quantity")
	assert.Contains(t, joined, "/price/amount_cents")
}

func TestValidator_FormatAssertions(t *testing.T) {
	store, schemaRoot, _, _ := newTestStore(t)
	writeFile(t, filepath.Join(schemaRoot, "contact.json"), `{
		"type": "object",
		"properties": {"email": {"type": "string", "format": "email"}}
	}`)
	validator := NewValidator(store, nil)

	good := validator.Validate(context.Background(), "contact", map[string]any{"email": "buyer@example.com"})
	assert.True(t, good.Valid)

	bad := validator.Validate(context.Background(), "contact", map[string]any{"email": "not-an-email"})
	assert.False(t, bad.Valid)
	assert.NotEmpty(t, bad.Errors)
}

func TestValidator_CompileFailureIsReported(t *testing.T) {
	store, schemaRoot, _, _ := newTestStore(t)
	// Valid JSON, but references a non-existent sub-schema.
	writeFile(t, filepath.Join(schemaRoot, "broken_ref.json"), `{"$ref": "missing://nowhere"}`)
	validator := NewValidator(store, nil)

	result := validator.Validate(context.Background(), "broken_ref", map[string]any{})
	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Validation error:")
}

type fakeCompiler struct {
	violations []Violation
	err        error
}

func (f fakeCompiler) Compile(name string, doc []byte) (Checker, error) {
	if f.err != nil {
		return nil, f.err
	}
	return fakeChecker{violations: f.violations}, nil
}

type fakeChecker struct {
	violations []Violation
}

func (f fakeChecker) Check(payload any) []Violation {
	return f.violations
}

func TestValidator_PluggableCompiler(t *testing.T) {
	store, schemaRoot, _, _ := newTestStore(t)
	writeFile(t, filepath.Join(schemaRoot, "any.json"), `{}`)

	t.Run("violations preserve ordering", func(t *testing.T) {
		validator := NewValidator(store, fakeCompiler{violations: []Violation{
			{Pointer: "/a", Message: "first"},
			{Pointer: "/b", Message: "second"},
		}})

		result := validator.Validate(context.Background(), "any", map[string]any{})
		require.Equal(t, []string{"/a: first", "/b: second"}, result.Errors)
	})

	t.Run("compile errors become flagged results", func(t *testing.T) {
		validator := NewValidator(store, fakeCompiler{err: errors.New("engine exploded")})

		result := validator.Validate(context.Background(), "any", map[string]any{})
		assert.False(t, result.Valid)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "Validation error: engine exploded", result.Errors[0])
	})
}
