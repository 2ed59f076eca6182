package hfinference

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/itchyny/gojq"
	"github.com/kaptinlin/jsonrepair"
)

// Queries selecting the useful field out of task responses. Both tasks
// answer with a list of records; only the first one is used.
var (
	captionQuery     = mustParseQuery(".[0].generated_text")
	translationQuery = mustParseQuery(".[0].translation_text")
)

func mustParseQuery(expr string) *gojq.Query {
	q, err := gojq.Parse(expr)
	if err != nil {
		panic(fmt.Sprintf("hfinference: invalid query %q: %v", expr, err))
	}
	return q
}

// decodeJSON decodes a response body into generic JSON values, attempting
// to repair the body when it is not well-formed.
func decodeJSON(data []byte) (any, error) {
	var v any
	err := json.Unmarshal(data, &v)
	if err == nil {
		return v, nil
	}

	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	fixed, rerr := jsonrepair.JSONRepair(string(data))
	if rerr != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := json.Unmarshal([]byte(fixed), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return v, nil
}

// extractText runs query against a response body and returns the first
// non-empty string it yields.
//
// A body of the wrong shape (an object where a list is expected, say)
// yields ErrMalformedResponse; a well-shaped body without a value, such
// as an empty list, yields ErrEmptyResult.
func extractText(query *gojq.Query, data []byte) (string, error) {
	v, err := decodeJSON(data)
	if err != nil {
		return "", err
	}

	iter := query.Run(v)
	for {
		x, ok := iter.Next()
		if !ok {
			break
		}
		switch x := x.(type) {
		case error:
			var halt *gojq.HaltError
			if errors.As(x, &halt) && halt.Value() == nil {
				return "", ErrEmptyResult
			}
			return "", fmt.Errorf("%w: %v", ErrMalformedResponse, x)
		case string:
			if x != "" {
				return x, nil
			}
		case nil:
		default:
			return "", fmt.Errorf("%w: unexpected %T value", ErrMalformedResponse, x)
		}
	}
	return "", ErrEmptyResult
}
