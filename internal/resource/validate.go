package resource

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	// href 接受 http(s) 绝对地址或以 / 开头的站内路径，例如上传接口返回的 /static/uploads/...
	_ = v.RegisterValidation("href", func(fl validator.FieldLevel) bool {
		return isHref(fl.Field().String())
	})
	_ = v.RegisterValidation("weburl", func(fl validator.FieldLevel) bool {
		return isHTTPURL(fl.Field().String())
	})
	return v
}

// Validate checks the validate tags of an entity and returns a *ValidationError
// keyed by JSON field names.
func Validate(item any) error {
	err := validate.Struct(item)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		if _, exists := out.Fields[fe.Field()]; exists {
			continue
		}
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

// 浏览器会把 "/\host" 当作 "//host"，因此反斜杠一律拒绝。
func isHref(raw string) bool {
	if strings.ContainsAny(raw, " \t\r\n\\") {
		return false
	}
	if strings.HasPrefix(raw, "/") {
		return !strings.HasPrefix(raw, "//")
	}
	return isHTTPURL(raw)
}

func isHTTPURL(raw string) bool {
	if strings.ContainsAny(raw, " \t\r\n\\") {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "href":
		return "must be an http(s) URL or a path starting with /"
	case "weburl":
		return "must be an absolute http(s) URL"
	case "slug":
		return "must contain only lowercase letters, digits and single hyphens"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid"
	}
}
