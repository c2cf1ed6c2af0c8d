package form

import (
	"errors"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateStruct runs every rule against structPtr and collects all field
// violations into a single validation.Errors keyed by json field name.
func ValidateStruct(structPtr interface{}, rules ...*validation.FieldRules) error {
	err := validation.ValidateStruct(structPtr, rules...)
	if err == nil {
		return nil
	}
	var ve validation.Errors
	if errors.As(err, &ve) {
		return ve
	}
	return err
}

// FieldMessages flattens validation errors into field -> message pairs
// suitable for inline display next to each field.
func FieldMessages(err error) map[string]string {
	var ve validation.Errors
	if !errors.As(err, &ve) {
		return nil
	}
	out := make(map[string]string, len(ve))
	for field, fe := range ve {
		out[field] = formatErrMsg(fe.Error())
	}
	return out
}

// Fields returns the names of the invalid fields in sorted order.
func Fields(err error) []string {
	msgs := FieldMessages(err)
	fields := make([]string, 0, len(msgs))
	for f := range msgs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	r, size := utf8.DecodeRuneInString(str)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + str[size:]
}
