package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/client/userform"
	"github.com/dmitrijs2005/useradmin/internal/filex"
)

// readPhoto is a test seam for filex.ReadPhoto.
var readPhoto = filex.ReadPhoto

var fieldLabels = map[string]string{
	userform.FieldName:  "Name",
	userform.FieldEmail: "Email",
	userform.FieldDOB:   "Date of birth",
	userform.FieldPhoto: "Photo",
}

// OpenUserForm implements userlist.Navigator. It runs the form until the
// user is saved or the user gives up; giving up is not an error.
func (a *App) OpenUserForm(ctx context.Context, mode models.FormMode) error {
	form, err := userform.New(ctx, a.api, mode, a, a.logger)
	if err != nil {
		return err
	}

	if mode.IsEdit() {
		id, _ := mode.UserID()
		fmt.Fprintf(a.out, "Editing user %d (press Enter to keep a value)\n", id)
	} else {
		fmt.Fprintln(a.out, "New user")
	}

	prompt := true
	for {
		if prompt {
			if err := a.fillForm(form); err != nil {
				return err
			}
		}

		_, err := form.Submit(ctx)
		if err == nil {
			return nil
		}

		var verr *userform.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields.Fields() {
				fmt.Fprintf(a.out, "  %s: %s\n", fieldLabels[f], verr.Fields[f])
			}
			again, cerr := a.Confirm("Try again?")
			if cerr != nil {
				return cerr
			}
			if !again {
				fmt.Fprintln(a.out, "Changes discarded.")
				return nil
			}
			prompt = true
			continue
		}

		fmt.Fprintln(a.out, "Failed to save user. "+describe(err))
		retry, cerr := a.Confirm("Retry?")
		if cerr != nil {
			return cerr
		}
		if !retry {
			fmt.Fprintln(a.out, "Changes discarded.")
			return nil
		}
		prompt = false
	}
}

func (a *App) fillForm(form *userform.Form) error {
	d := form.Draft()

	name, err := GetWithDefault(a.reader, "Name", d.Name, a.out)
	if err != nil {
		return err
	}
	form.SetName(name)

	email, err := GetWithDefault(a.reader, "Email", d.Email, a.out)
	if err != nil {
		return err
	}
	form.SetEmail(email)

	dob, err := GetWithDefault(a.reader, "Date of birth (YYYY-MM-DD)", d.DateOfBirth, a.out)
	if err != nil {
		return err
	}
	form.SetDateOfBirth(dob)

	return a.selectPhoto(form, d.PhotoName)
}

// selectPhoto asks for a photo path until a readable file is given or the
// input is empty, which keeps the current photo.
func (a *App) selectPhoto(form *userform.Form, current string) error {
	prompt := "Photo path (JPEG, PNG or GIF)"
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", prompt, current)
	}

	for {
		path, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if path == "" {
			return nil
		}

		photo, err := readPhoto(path)
		if err != nil {
			fmt.Fprintf(a.out, "Cannot read %s: %v\n", path, err)
			continue
		}
		form.SelectPhoto(photo)
		if form.Draft().PhotoInvalid {
			fmt.Fprintf(a.out, "%s is %s. Only JPEG, PNG, JPG or GIF images are allowed.\n", photo.Name, photo.ContentType)
			continue
		}
		return nil
	}
}
