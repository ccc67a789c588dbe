package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseAs parses LLM output into the specified type T.
//
// Primitive targets (string, bool, int, uint, float) are converted directly
// with strconv after trimming. Complex targets (structs, maps, slices) go
// through JSON unmarshaling; when that fails, the content is repaired with
// jsonrepair and retried once. Markdown code fences around the payload are
// stripped in both cases.
//
// Example:
//
//	type Answer struct {
//	    City string `json:"city"`
//	}
//
//	answer, err := parse.ParseAs[Answer]("```json\n{city: 'Beijing'}\n```")
func ParseAs[T any](content string) (T, error) {
	var result T

	cleaned := StripCodeFences(content)

	switch reflect.TypeFor[T]().Kind() {
	case reflect.String:
		reflect.ValueOf(&result).Elem().SetString(cleaned)
		return result, nil

	case reflect.Bool:
		parsed, err := strconv.ParseBool(strings.TrimSpace(cleaned))
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetBool(parsed)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		parsed, err := strconv.ParseInt(strings.TrimSpace(cleaned), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetInt(parsed)
		return result, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		parsed, err := strconv.ParseUint(strings.TrimSpace(cleaned), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as uint: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetUint(parsed)
		return result, nil

	case reflect.Float32, reflect.Float64:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		reflect.ValueOf(&result).Elem().SetFloat(parsed)
		return result, nil

	default:
		err := json.Unmarshal([]byte(cleaned), &result)
		if err == nil {
			return result, nil
		}

		repaired, repairErr := jsonrepair.JSONRepair(cleaned)
		if repairErr != nil {
			return result, fmt.Errorf("failed to unmarshal content as %T and failed to repair JSON: unmarshal error: %w, repair error: %v", result, err, repairErr)
		}

		if err = json.Unmarshal([]byte(repaired), &result); err != nil {
			return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", result, err, repaired)
		}
		return result, nil
	}
}

// StripCodeFences removes a surrounding markdown code fence (``` or
// ```json style) from content, returning the inner payload. Content without
// a fence is returned trimmed of surrounding whitespace.
func StripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	// Drop the opening fence line, including any language tag.
	body := trimmed[3:]
	if newline := strings.IndexByte(body, '\n'); newline >= 0 {
		body = body[newline+1:]
	} else {
		// Single-line fence such as "```{}```".
		body = strings.TrimPrefix(body, "json")
	}

	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
