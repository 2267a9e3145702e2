package userform

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"strings"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

// AllowedPhotoTypes are the declared MIME types accepted for a photo.
var AllowedPhotoTypes = []string{"image/jpeg", "image/png", "image/jpg", "image/gif"}

var ErrInvalidUserID = errors.New("user id must be positive")

// UserAPI is the part of the API client the form needs.
type UserAPI interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	CreateUser(ctx context.Context, payload models.UserPayload) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, payload models.UserPayload) (*models.User, error)
}

// Navigator receives control after a successful submit.
type Navigator interface {
	OpenUserList(ctx context.Context)
}

// Draft is the client-side, not yet submitted state of a user.
type Draft struct {
	Name        string
	Email       string
	DateOfBirth string

	// Photo is the file selected in this session, if any.
	Photo *models.PhotoFile
	// PhotoName is shown to the user; in edit mode it starts as the stored
	// photo's file name.
	PhotoName string

	PhotoEdited  bool
	PhotoInvalid bool
}

type Form struct {
	api    UserAPI
	nav    Navigator
	logger logging.Logger

	mode    models.FormMode
	draft   Draft
	touched bool
	errs    FieldErrors
}

// New builds a form in the given mode. In edit mode the user is fetched
// first and a fetch failure is returned as is.
func New(ctx context.Context, api UserAPI, mode models.FormMode, nav Navigator, logger logging.Logger) (*Form, error) {
	f := &Form{
		api:    api,
		nav:    nav,
		logger: logger.With("form", mode.String()),
		mode:   mode,
	}

	id, edit := mode.UserID()
	if !edit {
		return f, nil
	}
	if id <= 0 {
		return nil, fmt.Errorf("edit user %d: %w", id, ErrInvalidUserID)
	}

	u, err := api.GetUser(ctx, id)
	if err != nil {
		f.logger.Error(ctx, "failed to load user", "id", id, "error", err)
		return nil, fmt.Errorf("load user %d: %w", id, err)
	}

	f.draft = Draft{
		Name:        u.Name,
		Email:       u.Email,
		DateOfBirth: u.DateOfBirth,
		PhotoName:   u.PhotoFileName(),
	}
	return f, nil
}

func (f *Form) Mode() models.FormMode {
	return f.mode
}

// Draft returns a snapshot of the current draft.
func (f *Form) Draft() Draft {
	d := f.draft
	if d.Photo != nil {
		p := *d.Photo
		d.Photo = &p
	}
	return d
}

// Touched reports whether a submit has been attempted and rejected, i.e.
// whether field messages should be shown.
func (f *Form) Touched() bool {
	return f.touched
}

// Errors returns the field errors of the last rejected submit.
func (f *Form) Errors() FieldErrors {
	if !f.touched {
		return nil
	}
	return f.errs
}

func (f *Form) SetName(v string) {
	f.draft.Name = v
}

func (f *Form) SetEmail(v string) {
	f.draft.Email = v
}

func (f *Form) SetDateOfBirth(v string) {
	f.draft.DateOfBirth = v
}

// SelectPhoto records a photo choice. A nil file or one whose declared type
// is not allowed marks the photo invalid and drops the file.
func (f *Form) SelectPhoto(file *models.PhotoFile) {
	f.draft.PhotoEdited = true

	if file == nil || !IsAllowedPhotoType(file.ContentType) {
		f.draft.Photo = nil
		f.draft.PhotoInvalid = true
		return
	}

	f.draft.Photo = file
	f.draft.PhotoName = file.Name
	f.draft.PhotoInvalid = false
}

// IsAllowedPhotoType matches contentType against AllowedPhotoTypes,
// ignoring case and parameters.
func IsAllowedPhotoType(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, allowed := range AllowedPhotoTypes {
		if mt == allowed {
			return true
		}
	}
	return false
}

// Submit validates the draft and sends it. On success control moves to
// the user list and the saved user is returned; it may be nil when the
// server does not echo the record back.
func (f *Form) Submit(ctx context.Context) (*models.User, error) {
	if errs := Validate(f.draft); len(errs) > 0 {
		f.touched = true
		f.errs = errs
		f.logger.Debug(ctx, "submit blocked", "fields", errs.Fields())
		return nil, &ValidationError{Fields: errs}
	}
	f.errs = nil

	payload := f.payload()

	var (
		u   *models.User
		err error
	)
	if id, edit := f.mode.UserID(); edit {
		u, err = f.api.UpdateUser(ctx, id, payload)
	} else {
		u, err = f.api.CreateUser(ctx, payload)
	}
	if err != nil {
		f.logger.Error(ctx, "failed to save user", "error", err)
		return nil, err
	}

	f.logger.Info(ctx, "user saved", "photo_sent", payload.Photo != nil)
	f.nav.OpenUserList(ctx)
	return u, nil
}

func (f *Form) payload() models.UserPayload {
	p := models.UserPayload{
		Name:        strings.TrimSpace(f.draft.Name),
		Email:       strings.TrimSpace(f.draft.Email),
		DateOfBirth: strings.TrimSpace(f.draft.DateOfBirth),
	}
	if f.draft.PhotoEdited && f.draft.Photo != nil {
		p.Photo = f.draft.Photo
		p.PhotoName = f.draft.PhotoName
	}
	return p
}
