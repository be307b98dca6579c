package compiler

import (
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/payload"
	"github.com/rcarvalho-pb/ptp_tester-go/internal/domain/scenario"
)

// Lint schemas are advisory: they catch a request that the API would
// reject outright (missing key, wrong operation, malformed card block)
// while still allowing deliberate override deviations elsewhere.

const cardSchema = `{
  "type": "object",
  "required": ["integration_key", "operation", "payment"],
  "properties": {
    "integration_key": {"type": "string", "minLength": 1},
    "operation": {"const": "request"},
    "payment": {
      "type": "object",
      "required": ["amount_total", "currency_code", "card"],
      "properties": {
        "amount_total": {"type": ["string", "number"], "pattern": "^[0-9]+(\\.[0-9]+)?$"},
        "currency_code": {"type": "string", "minLength": 3, "maxLength": 3},
        "card": {
          "type": "object",
          "required": ["card_number", "card_name", "card_due_date", "card_cvv"],
          "properties": {
            "card_number": {"type": "string", "pattern": "^[0-9]+$"},
            "card_cvv": {"type": "string", "pattern": "^[0-9]+$"},
            "auto_capture": {"type": "boolean"},
            "threeds_force": {"type": "boolean"}
          }
        }
      }
    }
  }
}`

const alternativeNestedSchema = `{
  "type": "object",
  "required": ["integration_key", "operation", "payment"],
  "properties": {
    "integration_key": {"type": "string", "minLength": 1},
    "operation": {"const": "request"},
    "payment": {
      "type": "object",
      "required": ["amount_total", "currency_code", "payment_type_code"],
      "properties": {
        "amount_total": {"type": ["string", "number"], "pattern": "^[0-9]+(\\.[0-9]+)?$"},
        "currency_code": {"type": "string", "minLength": 3, "maxLength": 3},
        "payment_type_code": {"type": "string", "minLength": 1}
      }
    }
  }
}`

const alternativeDirectSchema = `{
  "type": "object",
  "required": ["integration_key", "operation", "amount_total", "currency_code", "payment_type_code"],
  "properties": {
    "integration_key": {"type": "string", "minLength": 1},
    "operation": {"const": "request"},
    "amount_total": {"type": ["string", "number"], "pattern": "^[0-9]+(\\.[0-9]+)?$"},
    "currency_code": {"type": "string", "minLength": 3, "maxLength": 3},
    "payment_type_code": {"type": "string", "minLength": 1}
  }
}`

var (
	cardCompiled              = jsonschema.MustCompileString("card.json", cardSchema)
	alternativeNestedCompiled = jsonschema.MustCompileString("alternative_nested.json", alternativeNestedSchema)
	alternativeDirectCompiled = jsonschema.MustCompileString("alternative_direct.json", alternativeDirectSchema)
)

// Lint validates an effective payload against the request schema for the
// scenario and method shape. A nil return means the API should at least
// parse the request.
func Lint(doc payload.Document, sc scenario.Scenario, opts Options) error {
	schema := cardCompiled
	if sc.Category() == scenario.CategoryAlternative {
		shape, ok := scenario.ShapeFor(opts.Method)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMethodShape, opts.Method)
		}
		if shape == scenario.ShapeNested {
			schema = alternativeNestedCompiled
		} else {
			schema = alternativeDirectCompiled
		}
	}
	return schema.Validate(map[string]any(doc))
}
