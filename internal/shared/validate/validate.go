// Package validate checks request payloads against their `validate` struct
// tags. Supported rules: "required" and "oneof=a b c". Failures are
// reported as apperr.ErrValidation so no store mutation can follow them.
package validate

import (
	"reflect"
	"strings"

	"github.com/Rishi-jha/group-chat-app/internal/shared/apperr"
)

func Struct(v any) error {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return apperr.Validation("nil payload")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		tag := rt.Field(i).Tag.Get("validate")
		if tag == "" {
			continue
		}
		name := jsonName(rt.Field(i))
		for _, rule := range strings.Split(tag, ",") {
			if err := check(rv.Field(i), name, rule); err != nil {
				return err
			}
		}
	}
	return nil
}

func check(fv reflect.Value, name, rule string) error {
	switch {
	case rule == "required":
		if fv.IsZero() {
			return apperr.Validation("field %q is required", name)
		}
	case strings.HasPrefix(rule, "oneof="):
		allowed := strings.Fields(strings.TrimPrefix(rule, "oneof="))
		got := fv.String()
		if got == "" {
			return nil // emptiness is required's business
		}
		for _, a := range allowed {
			if got == a {
				return nil
			}
		}
		return apperr.Validation("field %q must be one of [%s]", name, strings.Join(allowed, " "))
	}
	return nil
}

func jsonName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	if i := strings.Index(tag, ","); i >= 0 {
		tag = tag[:i]
	}
	if tag == "" {
		return f.Name
	}
	return tag
}
