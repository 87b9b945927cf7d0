package validation

import (
	"errors"
	"fmt"
	"strings"

	"alcyxob/fitplan/internal/domain"

	"github.com/xeipuuv/gojsonschema"
)

var ErrInvalidDocument = errors.New("document does not match schema")

// AnswerSetSchema is the JSON schema of a serialized domain.AnswerSet, built
// from the question catalog. Every property is optional.
func AnswerSetSchema() map[string]interface{} {
	properties := make(map[string]interface{}, len(domain.Questions))
	for _, q := range domain.Questions {
		enum := make([]interface{}, len(q.Options))
		for i, opt := range q.Options {
			enum[i] = opt
		}
		if q.Kind == domain.KindMulti {
			properties[string(q.ID)] = map[string]interface{}{
				"type":        "array",
				"items":       map[string]interface{}{"type": "string", "enum": enum},
				"uniqueItems": true,
			}
			continue
		}
		properties[string(q.ID)] = map[string]interface{}{
			"type": "string",
			"enum": enum,
		}
	}
	return map[string]interface{}{
		"$schema":              "http://json-schema.org/draft-07/schema#",
		"title":                "AnswerSet",
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

var answerSetSchema = gojsonschema.NewGoLoader(AnswerSetSchema())

// ValidateAnswerSet checks a raw JSON answer document. All violations are
// reported in one error wrapping ErrInvalidDocument.
func ValidateAnswerSet(doc []byte) error {
	result, err := gojsonschema.Validate(answerSetSchema, gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(errs, "; "))
	}
	return nil
}
