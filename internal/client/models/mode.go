package models

import "strconv"

// FormMode selects whether a form creates a new user or edits an existing
// one. It is fixed when the form is built.
type FormMode struct {
	edit bool
	id   int64
}

func CreateMode() FormMode {
	return FormMode{}
}

func EditMode(id int64) FormMode {
	return FormMode{edit: true, id: id}
}

func (m FormMode) IsEdit() bool {
	return m.edit
}

// UserID returns the edited user's id; ok is false in create mode.
func (m FormMode) UserID() (id int64, ok bool) {
	return m.id, m.edit
}

func (m FormMode) String() string {
	if !m.edit {
		return "create"
	}
	return "edit " + strconv.FormatInt(m.id, 10)
}
