package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"discord-mcp/internal/domain"
)

// OperationError is the single failure an operation surfaces. Its message is
// the operation's failure phrase followed by the inner message.
type OperationError struct {
	Tool   string
	Phrase string
	Err    error
	// Recovered holds the value of a recovered panic, if any.
	Recovered any
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return e.Phrase
	}
	return e.Phrase + ": " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

// Operation is one registered tool: its contract plus the handler that turns
// validated arguments into a normalized result.
type Operation struct {
	name        string
	description string
	contract    *Contract
	// bind decodes validated arguments into the handler's input type.
	bind func(args map[string]any) error
	// output derives the schema every successful result conforms to.
	output func() (*jsonschema.Schema, error)
	run         func(ctx context.Context, api API, args map[string]any) (any, error)
}

func (o *Operation) Name() string {
	return o.name
}

func (o *Operation) Spec() domain.ToolSpec {
	return domain.ToolSpec{
		Name:        o.name,
		Description: o.description,
		InputSchema: o.contract.Schema(),
	}
}

// OutputSchema returns the JSON schema of the operation's result.
func (o *Operation) OutputSchema() (*jsonschema.Schema, error) {
	return o.output()
}

// Parse validates raw arguments against the operation's input contract and
// checks that they bind to the handler's input type.
func (o *Operation) Parse(raw json.RawMessage) (map[string]any, error) {
	args, err := o.contract.Parse(raw)
	if err != nil {
		return nil, err
	}
	if o.bind != nil {
		if err := o.bind(args); err != nil {
			return nil, bindError(err)
		}
	}
	return args, nil
}

func bindError(err error) *ValidationError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return &ValidationError{
			Message: fmt.Sprintf("%s: %s is out of range", typeErr.Field, typeErr.Value),
			Cause:   err,
		}
	}
	return &ValidationError{Message: err.Error(), Cause: err}
}

// Run executes the operation with arguments already returned by Parse.
func (o *Operation) Run(ctx context.Context, api API, args map[string]any) (any, error) {
	return o.run(ctx, api, args)
}

// definition carries the static description of a tool.
type definition struct {
	name        string
	description string
	schema      map[string]any
	refines     []Refinement
	// phrase prefixes every failure; activity names the work in the
	// fallback used when a handler panics.
	phrase   string
	activity string
}

func newOperation[In, Out any](def definition, handle func(ctx context.Context, api API, in In) (Out, error)) *Operation {
	op := &Operation{
		name:        def.name,
		description: def.description,
		contract:    NewContract(def.schema, def.refines...),
		output:      outputSchema[Out],
	}
	op.bind = func(args map[string]any) error {
		var in In
		return decodeArgs(args, &in)
	}
	op.run = func(ctx context.Context, api API, args map[string]any) (result any, err error) {
		defer func() {
			if recovered := recover(); recovered != nil {
				result = nil
				err = &OperationError{
					Tool:      def.name,
					Phrase:    def.phrase,
					Err:       fmt.Errorf("unknown error while %s", def.activity),
					Recovered: recovered,
				}
			}
		}()

		var in In
		if err := decodeArgs(args, &in); err != nil {
			return nil, &OperationError{Tool: def.name, Phrase: def.phrase, Err: err}
		}
		out, err := handle(ctx, api, in)
		if err != nil {
			return nil, &OperationError{Tool: def.name, Phrase: def.phrase, Err: err}
		}
		return out, nil
	}
	return op
}

// decodeArgs maps validated arguments onto a typed input. Unknown keys are
// rejected so a schema and its input type cannot drift apart silently.
func decodeArgs(args map[string]any, out any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encode arguments: %w", err)
	}
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("decode arguments: %w", err)
	}
	return nil
}
