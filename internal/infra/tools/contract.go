package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"discord-mcp/internal/domain"
)

// Refinement checks a cross-field rule the schema cannot express. It sees
// the arguments after defaults have been applied and the schema has passed.
type Refinement func(args map[string]any) error

// ValidationError reports arguments rejected by an input contract.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}

func (e *ValidationError) Is(target error) bool {
	return target == domain.ErrInvalidParams
}

func invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Contract is the input contract of one tool: a JSON Schema document that is
// advertised verbatim and compiled once for validation.
type Contract struct {
	schema  map[string]any
	refines []Refinement

	once     sync.Once
	resolved *jsonschema.Resolved
	err      error
}

func NewContract(schema map[string]any, refines ...Refinement) *Contract {
	return &Contract{schema: schema, refines: refines}
}

// Schema returns the advertised schema. Callers must not mutate it.
func (c *Contract) Schema() map[string]any {
	return c.schema
}

func (c *Contract) compile() (*jsonschema.Resolved, error) {
	c.once.Do(func() {
		raw, err := json.Marshal(c.schema)
		if err != nil {
			c.err = fmt.Errorf("encode input schema: %w", err)
			return
		}
		var schema jsonschema.Schema
		if err := json.Unmarshal(raw, &schema); err != nil {
			c.err = fmt.Errorf("decode input schema: %w", err)
			return
		}
		c.resolved, c.err = schema.Resolve(&jsonschema.ResolveOptions{ValidateDefaults: true})
		if c.err != nil {
			c.err = fmt.Errorf("resolve input schema: %w", c.err)
		}
	})
	return c.resolved, c.err
}

// Parse decodes raw arguments, fills declared defaults, and validates the
// result. Absent or null arguments are treated as an empty object. Any
// rejection is a *ValidationError; other errors mean the contract itself is
// broken.
func (c *Contract) Parse(raw json.RawMessage) (map[string]any, error) {
	resolved, err := c.compile()
	if err != nil {
		return nil, err
	}

	args := map[string]any{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
		var decoded any
		if err := json.Unmarshal(trimmed, &decoded); err != nil {
			return nil, &ValidationError{Message: "arguments are not valid JSON: " + err.Error(), Cause: err}
		}
		obj, ok := decoded.(map[string]any)
		if !ok {
			return nil, invalid("arguments must be a JSON object")
		}
		args = obj
	}

	if err := resolved.ApplyDefaults(&args); err != nil {
		return nil, &ValidationError{Message: err.Error(), Cause: err}
	}
	if err := resolved.Validate(args); err != nil {
		return nil, &ValidationError{Message: err.Error(), Cause: err}
	}
	for _, refine := range c.refines {
		if err := refine(args); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return nil, verr
			}
			return nil, &ValidationError{Message: err.Error(), Cause: err}
		}
	}
	return args, nil
}
