package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_DecodeWireNames(t *testing.T) {
	var u User
	err := json.Unmarshal([]byte(`{"id":7,"name":"Ann","gmail":"ann@example.com","photo":null,"dob":"1990-05-01"}`), &u)
	require.NoError(t, err)

	assert.Equal(t, User{ID: 7, Name: "Ann", Email: "ann@example.com", DateOfBirth: "1990-05-01"}, u)
	assert.NoError(t, u.Validate())
}

func TestUser_Validate(t *testing.T) {
	require.ErrorIs(t, User{}.Validate(), ErrInvalidRecord)
	require.ErrorIs(t, User{ID: -1}.Validate(), ErrInvalidRecord)
}

func TestUser_PhotoFileName(t *testing.T) {
	tests := map[string]string{
		"":                                    "",
		"avatar.png":                          "avatar.png",
		"storage/photos/avatar.png":           "avatar.png",
		"http://localhost:8000/storage/a.jpg": "a.jpg",
		"storage/photos/":                     "",
	}
	for in, want := range tests {
		assert.Equal(t, want, User{Photo: in}.PhotoFileName(), in)
	}
}

func TestUser_RowMatchesFields(t *testing.T) {
	u := User{ID: 3, Name: "Bo", Email: "bo@x.io", Photo: "p/b.gif", DateOfBirth: "2000-01-02"}

	row := u.Row()
	require.Len(t, row, len(UserFields))
	assert.Equal(t, []any{int64(3), "Bo", "bo@x.io", "p/b.gif", "2000-01-02"}, row)
}

func TestPage_Validate(t *testing.T) {
	ok := Page{Data: []User{{ID: 1}, {ID: 2}}, CurrentPage: 1, LastPage: 3}
	require.NoError(t, ok.Validate())

	require.NoError(t, Page{CurrentPage: 1, LastPage: 0}.Validate())
	require.ErrorIs(t, Page{CurrentPage: 0, LastPage: 1}.Validate(), ErrInvalidRecord)
	require.ErrorIs(t, Page{CurrentPage: 1, LastPage: -1}.Validate(), ErrInvalidRecord)
	require.ErrorIs(t, Page{Data: []User{{ID: 1}, {}}, CurrentPage: 1, LastPage: 1}.Validate(), ErrInvalidRecord)
}

func TestFormMode(t *testing.T) {
	c := CreateMode()
	assert.False(t, c.IsEdit())
	_, ok := c.UserID()
	assert.False(t, ok)
	assert.Equal(t, "create", c.String())

	e := EditMode(42)
	assert.True(t, e.IsEdit())
	id, ok := e.UserID()
	assert.True(t, ok)
	assert.EqualValues(t, 42, id)
	assert.Equal(t, "edit 42", e.String())
}
