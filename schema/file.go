package schema

import (
	"fmt"
	"os"

	bf "github.com/mikiasgoitom/better-form"
	"github.com/mikiasgoitom/better-form/i18n"
	"github.com/mikiasgoitom/better-form/source"
)

// ValidateFile reads a JSON or YAML configuration file and validates it. A
// file that does not decode is reported like malformed JSON input.
func ValidateFile(path string, opts ...Option) (*bf.FormConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schema: read %s: %w", path, err)
	}
	if source.FormatFor(path) == source.FormatJSON {
		return Validate(data, opts...)
	}
	tree, err := source.YAML(data)
	if err != nil {
		return nil, &bf.FormConfigError{
			Message: i18n.T(i18n.ConfigMalformed, nil),
			Issues:  bf.Issues{bf.Root().Issue(bf.KindMalformedInput, bf.CodeParseError, err.Error())},
		}
	}
	return Validate(tree, opts...)
}
