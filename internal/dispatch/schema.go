package dispatch

import (
	"fmt"
	"math"

	"github.com/tmc/langchaingo/llms"
)

// Param describes a single tool argument.
type Param struct {
	Type        string // "string" | "integer" | "boolean"
	Description string
	Required    bool
}

// Schema is the declared shape of a tool: its name, what the model
// should use it for, and the arguments it accepts. Arguments are
// validated against the schema before any handler runs.
type Schema struct {
	Name        string
	Description string
	Params      map[string]Param
}

// Tool renders the schema as a function tool definition for the model.
func (s Schema) Tool() llms.Tool {
	properties := make(map[string]any, len(s.Params))
	required := make([]string, 0, len(s.Params))
	for name, p := range s.Params {
		properties[name] = map[string]any{
			"type":        p.Type,
			"description": p.Description,
		}
		if p.Required {
			required = append(required, name)
		}
	}
	return llms.Tool{
		Type: "function",
		Function: &llms.FunctionDefinition{
			Name:        s.Name,
			Description: s.Description,
			Parameters: map[string]any{
				"type":       "object",
				"properties": properties,
				"required":   required,
			},
		},
	}
}

// Validate checks decoded JSON arguments against the schema. Unknown
// keys are tolerated; missing required fields and type mismatches are
// rejected. Integer params must be whole JSON numbers.
func (s Schema) Validate(args map[string]any) error {
	for name, p := range s.Params {
		value, present := args[name]
		if !present {
			if p.Required {
				return fmt.Errorf("missing required field: %s", name)
			}
			continue
		}
		switch p.Type {
		case "string":
			if _, ok := value.(string); !ok {
				return fmt.Errorf("field %s must be a string", name)
			}
		case "integer":
			f, ok := value.(float64)
			if !ok {
				return fmt.Errorf("field %s must be an integer", name)
			}
			if f != math.Trunc(f) {
				return fmt.Errorf("field %s must be an integer", name)
			}
		case "boolean":
			if _, ok := value.(bool); !ok {
				return fmt.Errorf("field %s must be a boolean", name)
			}
		default:
			return fmt.Errorf("unsupported param type %s for field %s", p.Type, name)
		}
	}
	return nil
}

// argString reads a validated string argument.
func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// argUint reads a validated integer argument as an id.
func argUint(args map[string]any, key string) uint {
	f, _ := args[key].(float64)
	if f < 0 {
		return 0
	}
	return uint(f)
}
