package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/useradmin/internal/client/client"
	"github.com/dmitrijs2005/useradmin/internal/client/config"
	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

type fakeClient struct {
	users     []models.User
	stored    *models.User
	saveErrs  []error
	deleteErr error

	listed  []int
	creates []models.UserPayload
	updates []models.UserPayload
	deleted []int64
}

func (f *fakeClient) ListUsers(ctx context.Context, page int) (*models.Page, error) {
	f.listed = append(f.listed, page)
	return &models.Page{Data: f.users, CurrentPage: page, LastPage: 2}, nil
}

func (f *fakeClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if f.stored == nil || f.stored.ID != id {
		return nil, &client.TransportError{Op: "get user", StatusCode: 404, Err: client.ErrNotFound}
	}
	u := *f.stored
	return &u, nil
}

func (f *fakeClient) nextSaveErr() error {
	if len(f.saveErrs) == 0 {
		return nil
	}
	err := f.saveErrs[0]
	f.saveErrs = f.saveErrs[1:]
	return err
}

func (f *fakeClient) CreateUser(ctx context.Context, p models.UserPayload) (*models.User, error) {
	f.creates = append(f.creates, p)
	if err := f.nextSaveErr(); err != nil {
		return nil, err
	}
	return &models.User{ID: 10, Name: p.Name}, nil
}

func (f *fakeClient) UpdateUser(ctx context.Context, id int64, p models.UserPayload) (*models.User, error) {
	p.ID = id
	f.updates = append(f.updates, p)
	if err := f.nextSaveErr(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeClient) DeleteUser(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

type fakeExporter struct {
	got []models.User
	err error
}

func (e *fakeExporter) Export(users []models.User) (string, error) {
	e.got = users
	return "download/users.xlsx", e.err
}

func newTestApp(t *testing.T, api *fakeClient, input string) (*App, *bytes.Buffer, *fakeExporter) {
	t.Helper()

	origSize := termSize
	termSize = func(int) (int, int, error) { return 0, 0, errors.New("not a terminal") }
	t.Cleanup(func() { termSize = origSize })

	cfg := &config.Config{}
	cfg.LoadDefaults()

	var out bytes.Buffer
	exp := &fakeExporter{}
	return newApp(cfg, logging.Discard(), api, exp, strings.NewReader(input), &out), &out, exp
}

func stubReadPhoto(t *testing.T, photo *models.PhotoFile, err error) *[]string {
	t.Helper()
	var paths []string
	orig := readPhoto
	readPhoto = func(path string) (*models.PhotoFile, error) {
		paths = append(paths, path)
		return photo, err
	}
	t.Cleanup(func() { readPhoto = orig })
	return &paths
}

var testPhoto = &models.PhotoFile{Name: "me.png", ContentType: "image/png", Content: []byte("png")}

func TestOpenUserForm_CreateSubmitsAndReturnsToList(t *testing.T) {
	paths := stubReadPhoto(t, testPhoto, nil)
	api := &fakeClient{users: []models.User{{ID: 10, Name: "Bo"}}}
	app, out, _ := newTestApp(t, api, "Bo\nbo@example.com\n2001-02-03\n/tmp/me.png\n")

	require.NoError(t, app.Add(context.Background()))

	assert.Equal(t, []string{"/tmp/me.png"}, *paths)
	require.Len(t, api.creates, 1)
	assert.Equal(t, models.UserPayload{
		Name:        "Bo",
		Email:       "bo@example.com",
		DateOfBirth: "2001-02-03",
		Photo:       testPhoto,
		PhotoName:   "me.png",
	}, api.creates[0])
	assert.Equal(t, []int{1}, api.listed)
	assert.Contains(t, out.String(), "Page 1 of 2")
}

func TestOpenUserForm_ValidationErrorsThenDiscard(t *testing.T) {
	api := &fakeClient{}
	app, out, _ := newTestApp(t, api, "\n\n\n\nn\n")

	require.NoError(t, app.Add(context.Background()))

	assert.Empty(t, api.creates)
	assert.Empty(t, api.listed)
	s := out.String()
	assert.Contains(t, s, "Name: Name is required")
	assert.Contains(t, s, "Email: Email is required")
	assert.Contains(t, s, "Date of birth: Date of birth is required")
	assert.Contains(t, s, "Photo: Photo is required")
	assert.Contains(t, s, "Changes discarded.")
}

func TestOpenUserForm_ValidationErrorThenFix(t *testing.T) {
	stubReadPhoto(t, testPhoto, nil)
	api := &fakeClient{}
	input := strings.Join([]string{
		"Bo", "not-an-email", "2001-02-03", "me.png",
		"y",
		"", "bo@example.com", "", "",
	}, "\n") + "\n"
	app, _, _ := newTestApp(t, api, input)

	require.NoError(t, app.Add(context.Background()))

	require.Len(t, api.creates, 1)
	assert.Equal(t, "bo@example.com", api.creates[0].Email)
	assert.Equal(t, "Bo", api.creates[0].Name)
	assert.NotNil(t, api.creates[0].Photo)
}

func TestOpenUserForm_TransportErrorRetryResendsDraft(t *testing.T) {
	stubReadPhoto(t, testPhoto, nil)
	api := &fakeClient{saveErrs: []error{
		&client.TransportError{Op: "create user", Err: client.ErrUnavailable},
	}}
	app, out, _ := newTestApp(t, api, "Bo\nbo@example.com\n2001-02-03\nme.png\ny\n")

	require.NoError(t, app.Add(context.Background()))

	require.Len(t, api.creates, 2)
	assert.Equal(t, api.creates[0], api.creates[1])
	assert.Contains(t, out.String(), "Failed to save user. The server is unavailable")
	assert.Equal(t, []int{1}, api.listed)
}

func TestOpenUserForm_EditKeepsValuesAndPhoto(t *testing.T) {
	api := &fakeClient{stored: &models.User{
		ID: 5, Name: "Ann", Email: "ann@example.com", DateOfBirth: "1990-05-01", Photo: "storage/ann.jpg",
	}}
	app, out, _ := newTestApp(t, api, "Ann Marie\n\n\n\n")

	require.NoError(t, app.Edit(context.Background(), 5))

	require.Len(t, api.updates, 1)
	assert.Equal(t, models.UserPayload{
		ID:          5,
		Name:        "Ann Marie",
		Email:       "ann@example.com",
		DateOfBirth: "1990-05-01",
	}, api.updates[0])
	assert.Contains(t, out.String(), "Photo path (JPEG, PNG or GIF) [ann.jpg]")
}

func TestOpenUserForm_EditUnknownUser(t *testing.T) {
	api := &fakeClient{}
	app, _, _ := newTestApp(t, api, "")

	err := app.Edit(context.Background(), 42)

	require.ErrorIs(t, err, client.ErrNotFound)
	assert.Empty(t, api.updates)
}

func TestSelectPhoto_RejectsUnreadableAndWrongType(t *testing.T) {
	orig := readPhoto
	t.Cleanup(func() { readPhoto = orig })
	readPhoto = func(path string) (*models.PhotoFile, error) {
		switch path {
		case "missing.png":
			return nil, os.ErrNotExist
		case "cv.pdf":
			return &models.PhotoFile{Name: "cv.pdf", ContentType: "application/pdf"}, nil
		}
		return testPhoto, nil
	}

	api := &fakeClient{}
	app, out, _ := newTestApp(t, api, "Bo\nbo@example.com\n2001-02-03\nmissing.png\ncv.pdf\nme.png\n")

	require.NoError(t, app.Add(context.Background()))

	require.Len(t, api.creates, 1)
	assert.Equal(t, "me.png", api.creates[0].PhotoName)
	s := out.String()
	assert.Contains(t, s, "Cannot read missing.png")
	assert.Contains(t, s, "cv.pdf is application/pdf")
}

func TestDelete_ConfirmedReloads(t *testing.T) {
	api := &fakeClient{users: []models.User{{ID: 1, Name: "Ann"}}}
	app, out, _ := newTestApp(t, api, "y\n")

	require.NoError(t, app.Delete(context.Background(), 1))

	assert.Equal(t, []int64{1}, api.deleted)
	assert.Equal(t, []int{1}, api.listed)
	assert.Contains(t, out.String(), "User 1 deleted.")
}

func TestDelete_Declined(t *testing.T) {
	api := &fakeClient{}
	app, out, _ := newTestApp(t, api, "\n")

	require.NoError(t, app.Delete(context.Background(), 1))

	assert.Empty(t, api.deleted)
	assert.Contains(t, out.String(), "Delete cancelled.")
}

func TestExport_UsesLoadedPage(t *testing.T) {
	users := []models.User{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Bo"}}
	api := &fakeClient{users: users}
	app, out, exp := newTestApp(t, api, "")
	ctx := context.Background()

	require.NoError(t, app.List(ctx, 1))
	require.NoError(t, app.Export(ctx))

	assert.Equal(t, users, exp.got)
	assert.Contains(t, out.String(), "Exported 2 users to download/users.xlsx")
}

func TestNextPrev_Bounds(t *testing.T) {
	api := &fakeClient{}
	app, out, _ := newTestApp(t, api, "")
	ctx := context.Background()

	require.NoError(t, app.Prev(ctx))
	assert.Contains(t, out.String(), "Already on the first page.")

	require.NoError(t, app.List(ctx, 2))
	require.NoError(t, app.Next(ctx))
	assert.Contains(t, out.String(), "Already on the last page.")
	assert.Equal(t, []int{2}, api.listed)
}

func TestList_ZeroMeansCurrentPage(t *testing.T) {
	api := &fakeClient{}
	app, _, _ := newTestApp(t, api, "")
	ctx := context.Background()

	require.NoError(t, app.List(ctx, 2))
	require.NoError(t, app.List(ctx, 0))

	assert.Equal(t, []int{2, 2}, api.listed)
}

func TestRun_LoadsFirstPageAndExits(t *testing.T) {
	capturePrintln(t)
	api := &fakeClient{users: []models.User{{ID: 1, Name: "Ann"}}}
	app, out, _ := newTestApp(t, api, "exit\n")

	app.Run(context.Background())

	assert.Equal(t, []int{1}, api.listed)
	assert.Contains(t, out.String(), "Welcome to useradmin CLI")
	assert.Contains(t, out.String(), "Ann")
}
