package dto

import (
	"html"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var safeStringRe = regexp.MustCompile(`^[a-zA-Z0-9_\-\.]+$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("safe_id", validateSafeID)
		_ = v.RegisterValidation("payee_handle", validatePayeeHandle)
	}
}

// IsSafeID reports whether s is usable as an event or slot identifier.
func IsSafeID(s string) bool {
	return len(s) <= 64 && safeStringRe.MatchString(s)
}

// validateSafeID allows alphanumeric, underscore, dash, and dot.
func validateSafeID(fl validator.FieldLevel) bool {
	return safeStringRe.MatchString(fl.Field().String())
}

// validatePayeeHandle accepts either a URI with a scheme (upi://pay?pa=...)
// or a bare handle such as name@bank. Control characters and whitespace are
// rejected.
func validatePayeeHandle(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" || strings.ContainsAny(raw, " \t\r\n<>\"") {
		return false
	}
	if !strings.Contains(raw, "://") {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}

// SanitizeStruct trims whitespace and HTML-escapes every exported string
// field (including *string) of a struct pointer. Fields tagged
// `sanitize:"trim"` are only trimmed.
func SanitizeStruct(v interface{}) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Struct {
		return
	}
	sanitizeFields(rv.Elem())
}

func sanitizeFields(rv reflect.Value) {
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if !f.CanSet() {
			continue
		}
		clean := sanitize
		if rv.Type().Field(i).Tag.Get("sanitize") == "trim" {
			clean = strings.TrimSpace
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(clean(f.String()))
		case reflect.Ptr:
			if f.IsNil() {
				continue
			}
			if elem := f.Elem(); elem.Kind() == reflect.String {
				elem.SetString(clean(elem.String()))
			}
		}
	}
}

func sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}
