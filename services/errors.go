package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	ErrPermissionDenied   = errors.New("permission denied")
	ErrNotFound           = errors.New("not found")
	ErrInvalidAction      = errors.New("invalid action")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError 表单校验失败，Notice 给展示层使用
type ValidationError struct {
	Notice string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}
	return fmt.Sprintf("%s (%s)", e.Notice, strings.Join(parts, ", "))
}

func denied(reason string) error {
	return fmt.Errorf("%w: %s", ErrPermissionDenied, reason)
}

// validateForm runs the gin binding tags of form through the shared validator.
func validateForm(form interface{}, notice string) error {
	err := binding.Validator.ValidateStruct(form)
	if err == nil {
		return nil
	}

	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[snakeCase(fe.Field())] = describeTag(fe)
		}
	} else {
		fields["form"] = err.Error()
	}
	return &ValidationError{Notice: notice, Fields: fields}
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return "at most " + fe.Param() + " characters"
	case "min":
		return "at least " + fe.Param() + " characters"
	case "url":
		return "must be a valid URL"
	case "eqfield":
		return "does not match"
	default:
		return "invalid value"
	}
}

// snakeCase 把 DisplayName / NewPassword1 转成表单字段名 display_name / new_password1
func snakeCase(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
