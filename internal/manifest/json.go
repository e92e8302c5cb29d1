package manifest

// valueKind classifies a decoded JSON value (the `any` tree produced by
// encoding/json) into the fixed set of JSON kinds.
//
// # Why a tagged union?
//
// Polymorphic fields (Subject, LocalizedText, rel, ...) accept several wire
// shapes. Branching on an explicit kind keeps every accepted shape visible
// in a single switch instead of being buried in sequential type assertions.
type valueKind uint8

const (
	// kindNull covers both JSON null and an absent Go value (untyped nil).
	kindNull valueKind = iota
	kindBool
	kindNumber
	kindString
	kindArray
	kindObject
	// kindInvalid marks a Go value that encoding/json never produces.
	kindInvalid
)

// String returns the kind name for warning messages.
func (k valueKind) String() string {
	switch k {
	case kindNull:
		return "null"
	case kindBool:
		return "boolean"
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindArray:
		return "array"
	case kindObject:
		return "object"
	default:
		return "invalid"
	}
}

// kindOf classifies raw into its [valueKind].
func kindOf(raw any) valueKind {
	switch raw.(type) {
	case nil:
		return kindNull
	case bool:
		return kindBool
	case float64:
		return kindNumber
	case string:
		return kindString
	case []any:
		return kindArray
	case map[string]any:
		return kindObject
	default:
		return kindInvalid
	}
}

// # Tolerant Field Extraction
//
// Optional scalar fields are non-essential: a present-but-wrong-typed value
// is treated as absent with no warning.

// optString returns a pointer to the field's string value, or nil when the
// field is missing or not a JSON string.
func optString(object map[string]any, field string) *string {
	value, ok := object[field].(string)
	if !ok {
		return nil
	}
	return &value
}

// optStringList accepts a bare string or an array and returns the string
// elements in input order. Non-string array elements are skipped.
func optStringList(raw any) []string {
	switch value := raw.(type) {
	case string:
		return []string{value}
	case []any:
		var list []string
		for _, element := range value {
			if s, ok := element.(string); ok {
				list = append(list, s)
			}
		}
		return list
	default:
		return nil
	}
}

// optInt returns a pointer to the field's value when it is a JSON number
// with no fractional part.
func optInt(object map[string]any, field string) *int {
	value, ok := object[field].(float64)
	if !ok || value != float64(int(value)) {
		return nil
	}
	n := int(value)
	return &n
}

// optBool returns the field's boolean value, or false when the field is
// missing or not a JSON boolean.
func optBool(object map[string]any, field string) bool {
	value, _ := object[field].(bool)
	return value
}
