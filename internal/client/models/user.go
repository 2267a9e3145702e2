// Package models defines the records exchanged with the user API and the
// small value types the controllers pass around.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidRecord marks a decoded record that violates the API contract.
var ErrInvalidRecord = errors.New("invalid record")

// User is the server-owned user resource. The email travels as "gmail" on
// the wire; photo is a server path or URL and may be null.
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"gmail"`
	Photo       string `json:"photo"`
	DateOfBirth string `json:"dob"`
}

// UserFields lists the exported columns in the order Row returns them.
var UserFields = []string{"id", "name", "gmail", "photo", "dob"}

// Validate checks the invariants the client relies on.
func (u User) Validate() error {
	if u.ID <= 0 {
		return fmt.Errorf("%w: user id %d is not positive", ErrInvalidRecord, u.ID)
	}
	return nil
}

// PhotoFileName is the last path segment of Photo, or "" without a photo.
func (u User) PhotoFileName() string {
	if u.Photo == "" {
		return ""
	}
	i := strings.LastIndex(u.Photo, "/")
	return u.Photo[i+1:]
}

// Row returns the field values in UserFields order.
func (u User) Row() []any {
	return []any{u.ID, u.Name, u.Email, u.Photo, u.DateOfBirth}
}

func (u User) String() string {
	return strconv.FormatInt(u.ID, 10) + " " + u.Name + " <" + u.Email + ">"
}
