package schema

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/commercekit/ucp-mcp/pkg/observability"
)

// Violation is a single schema violation located by JSON pointer.
type Violation struct {
	Pointer string
	Message string
}

// Checker applies a compiled schema to decoded JSON payloads.
type Checker interface {
	Check(payload any) []Violation
}

// Compiler turns a raw schema document into a Checker. It exists so the
// underlying JSON-Schema engine can be swapped out, and so tests can
// substitute fakes.
type Compiler interface {
	Compile(name string, doc []byte) (Checker, error)
}

// Result is the outcome of validating a payload against a named schema.
type Result struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Validator validates payloads against schemas resolved through a Store.
type Validator struct {
	store    *Store
	compiler Compiler
	metrics  observability.Metrics
}

// NewValidator creates a validator. A nil compiler selects the default
// JSON-Schema engine.
func NewValidator(store *Store, compiler Compiler) *Validator {
	if compiler == nil {
		compiler = JSONSchemaCompiler{}
	}
	return &Validator{
		store:    store,
		compiler: compiler,
		metrics:  observability.NoopMetrics{},
	}
}

// WithMetrics sets the metrics collector used for validation counters.
func (v *Validator) WithMetrics(metrics observability.Metrics) *Validator {
	if metrics != nil {
		v.metrics = metrics
	}
	return v
}

// Validate resolves the named schema and checks the payload against it.
// Every failure mode is reported inside the Result; the method never
// returns an error because an unresolvable schema, a broken schema, and
// an invalid payload are all expected outcomes.
func (v *Validator) Validate(ctx context.Context, name string, payload any) Result {
	if err := ctx.Err(); err != nil {
		return Result{Valid: false, Errors: []string{fmt.Sprintf("Validation error: %v", err)}}
	}

	doc, err := v.store.Resolve(name)
	if err != nil {
		return Result{Valid: false, Errors: []string{fmt.Sprintf("Schema '%s' not found", name)}}
	}

	checker, err := v.compiler.Compile(name, doc.Raw)
	if err != nil {
		return Result{Valid: false, Errors: []string{fmt.Sprintf("Validation error: %v", err)}}
	}

	violations := checker.Check(payload)
	v.metrics.Counter(observability.MetricValidations, 1,
		observability.T("valid", fmt.Sprintf("%t", len(violations) == 0)))

	if len(violations) == 0 {
		return Result{Valid: true}
	}

	messages := make([]string, 0, len(violations))
	for _, violation := range violations {
		messages = append(messages, fmt.Sprintf("%s: %s", violation.Pointer, violation.Message))
	}
	return Result{Valid: false, Errors: messages}
}

// JSONSchemaCompiler compiles documents with the santhosh-tekuri engine.
// Format keywords are asserted, not just annotated; unknown keywords are
// tolerated per the engine's default behavior.
type JSONSchemaCompiler struct{}

// Compile implements Compiler.
func (JSONSchemaCompiler) Compile(name string, doc []byte) (Checker, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	url := fmt.Sprintf("inmem:///%s.json", name)
	if err := compiler.AddResource(url, bytes.NewReader(doc)); err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	compiled, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return jsonschemaChecker{schema: compiled}, nil
}

type jsonschemaChecker struct {
	schema *jsonschema.Schema
}

func (c jsonschemaChecker) Check(payload any) []Violation {
	err := c.schema.Validate(payload)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		return collectLeaves(ve, nil)
	}
	return []Violation{{Pointer: "/", Message: err.Error()}}
}

// collectLeaves flattens a validation error tree into its leaf causes,
// preserving the engine's ordering.
func collectLeaves(ve *jsonschema.ValidationError, out []Violation) []Violation {
	if len(ve.Causes) == 0 {
		pointer := ve.InstanceLocation
		if pointer == "" {
			pointer = "/"
		}
		return append(out, Violation{Pointer: pointer, Message: ve.Message})
	}
	for _, cause := range ve.Causes {
		out = collectLeaves(cause, out)
	}
	return out
}
