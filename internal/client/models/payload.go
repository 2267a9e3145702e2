package models

// PhotoFile is a locally selected image. ContentType is the declared type
// as reported when the file was picked; the server still has the final say.
type PhotoFile struct {
	Name        string
	ContentType string
	Content     []byte
}

// UserPayload is the multipart body of a create or update request.
// Photo is nil when the stored photo must be left untouched.
type UserPayload struct {
	ID          int64
	Name        string
	Email       string
	DateOfBirth string
	Photo       *PhotoFile
	PhotoName   string
}
