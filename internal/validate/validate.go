// Package validate checks user input before it reaches the backend.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldError is one rejected field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every rejected field of a form.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + " " + f.Message
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Message returns the message for field, or "".
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// Form limits.
const (
	MinPasswordLen = 6
	MinNameLen     = 3
	MaxNameLen     = 50
	MaxAnswerLen   = 2000
)

// SignIn is the account label recorded with a session.
type SignIn struct {
	Email string `json:"email" validate:"omitempty,email"`
}

// Credentials is an email/password pair.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,strongpw"`
}

// Rename is the profile name form.
type Rename struct {
	Name string `json:"name" validate:"required,min=3,max=50"`
}

// Answer is the course Q&A answer form.
type Answer struct {
	Answer     string `json:"answer" validate:"required,max=2000"`
	CourseID   string `json:"courseId" validate:"required"`
	ContentID  string `json:"contentId" validate:"required"`
	QuestionID string `json:"questionId" validate:"required"`
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	val.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	if err := val.RegisterValidation("strongpw", strongPassword); err != nil {
		panic(err)
	}
	return val
}

func strongPassword(fl validator.FieldLevel) bool {
	var upper, lower, digit, special bool
	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// Struct validates a form. Rejections are returned as *ValidationError.
func Struct(form any) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "strongpw":
		return "must contain an upper case letter, a lower case letter, a digit and a special character"
	default:
		return "is invalid"
	}
}

// Name trims and validates a display name.
func Name(name string) (string, error) {
	f := Rename{Name: strings.TrimSpace(name)}
	return f.Name, Struct(f)
}

// AnswerForm trims and validates an answer.
func AnswerForm(a Answer) (Answer, error) {
	a.Answer = strings.TrimSpace(a.Answer)
	return a, Struct(a)
}

// Email validates an optional account email.
func Email(email string) (string, error) {
	f := SignIn{Email: strings.TrimSpace(email)}
	return f.Email, Struct(f)
}
