package userform

import (
	"errors"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field keys used in FieldErrors.
const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldDOB   = "dob"
	FieldPhoto = "photo"
)

const DateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldErrors maps a field key to a user-facing message.
type FieldErrors map[string]string

func (fe FieldErrors) Has(field string) bool {
	_, ok := fe[field]
	return ok
}

// Fields returns the failing field keys in sorted order.
func (fe FieldErrors) Fields() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidationError is returned by Submit when the draft is not acceptable.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.Fields.Fields() {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type draftFields struct {
	Name        string `validate:"required"`
	Email       string `validate:"required,email"`
	DateOfBirth string `validate:"required,datetime=2006-01-02"`
}

var fieldKeys = map[string]string{
	"Name":        FieldName,
	"Email":       FieldEmail,
	"DateOfBirth": FieldDOB,
}

var messages = map[string]string{
	FieldName + ".required":  "Name is required",
	FieldEmail + ".required": "Email is required",
	FieldEmail + ".email":    "Enter a valid email address",
	FieldDOB + ".required":   "Date of birth is required",
	FieldDOB + ".datetime":   "Date of birth must be a date (YYYY-MM-DD)",
}

// Validate checks a draft snapshot and returns every failing field. The
// photo is required only while no file name is known, whether it came from
// the stored user or from a selection in this session.
func Validate(d Draft) FieldErrors {
	errs := FieldErrors{}

	err := validate.Struct(draftFields{
		Name:        strings.TrimSpace(d.Name),
		Email:       strings.TrimSpace(d.Email),
		DateOfBirth: strings.TrimSpace(d.DateOfBirth),
	})

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			key := fieldKeys[fe.StructField()]
			if errs.Has(key) {
				continue
			}
			msg, ok := messages[key+"."+fe.Tag()]
			if !ok {
				msg = "Invalid value"
			}
			errs[key] = msg
		}
	}

	switch {
	case d.PhotoInvalid:
		errs[FieldPhoto] = "Only JPEG, PNG, JPG or GIF images are allowed"
	case d.PhotoName == "":
		errs[FieldPhoto] = "Photo is required"
	}

	return errs
}
