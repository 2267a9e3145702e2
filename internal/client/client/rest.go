package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

const (
	usersPath      = "/api/users"
	updateUserPath = "/api/update/user"

	RequestIDHeader = "X-Request-Id"

	// errorBodyLimit caps how much of an error response ends up in the log.
	errorBodyLimit = 512
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// RESTClient implements Client over HTTP/JSON.
type RESTClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
	newID   func() string
}

// NewRESTClient binds a client to baseURL (scheme://host[:port], no
// trailing slash).
func NewRESTClient(baseURL string, httpClient *http.Client, logger logging.Logger) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

type validatable interface {
	Validate() error
}

func (c *RESTClient) ListUsers(ctx context.Context, page int) (*models.Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("list users: %w", ErrInvalidPage)
	}

	var p models.Page
	url := c.baseURL + usersPath + "?page=" + strconv.Itoa(page)
	if err := c.do(ctx, "list users", http.MethodGet, url, nil, "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *RESTClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, "get user", http.MethodGet, c.userURL(id), nil, "", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *RESTClient) CreateUser(ctx context.Context, payload models.UserPayload) (*models.User, error) {
	body, contentType, err := encodeUserForm(payload, false)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return c.mutate(ctx, "create user", c.baseURL+usersPath, body, contentType)
}

func (c *RESTClient) UpdateUser(ctx context.Context, id int64, payload models.UserPayload) (*models.User, error) {
	payload.ID = id
	body, contentType, err := encodeUserForm(payload, true)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return c.mutate(ctx, "update user", c.baseURL+updateUserPath, body, contentType)
}

func (c *RESTClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, "delete user", http.MethodDelete, c.userURL(id), nil, "", nil)
}

func (c *RESTClient) userURL(id int64) string {
	return c.baseURL + usersPath + "/" + strconv.FormatInt(id, 10)
}

// mutate POSTs a multipart body. The server has already applied the change
// once it answers 2xx, so a response that does not describe a user is
// logged and reported as a nil user rather than as a failure.
func (c *RESTClient) mutate(ctx context.Context, op, url string, body io.Reader, contentType string) (*models.User, error) {
	var raw json.RawMessage
	if err := c.do(ctx, op, http.MethodPost, url, body, contentType, &raw); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		c.logger.Warn(ctx, "unexpected response body", "op", op, "error", err)
		return nil, nil
	}
	if err := u.Validate(); err != nil {
		c.logger.Warn(ctx, "unexpected response body", "op", op, "error", err)
		return nil, nil
	}
	return &u, nil
}

// do performs one request and decodes a JSON response into out, if given.
// out is validated when it implements Validate.
func (c *RESTClient) do(ctx context.Context, op, method, url string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	reqID := c.newID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	log := c.logger.With("op", op, "method", method, "url", url, "request_id", reqID)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		terr := &TransportError{Op: op, Method: method, URL: url, Err: fmt.Errorf("%w: %w", ErrUnavailable, err)}
		log.Error(ctx, "api request failed", "error", err)
		return terr
	}
	defer resp.Body.Close()

	log.Debug(ctx, "api request", "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode >= http.StatusBadRequest {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		sentinel := ErrUnexpectedStatus
		if resp.StatusCode == http.StatusNotFound {
			sentinel = ErrNotFound
		}
		log.Error(ctx, "api request rejected", "status", resp.StatusCode, "body", string(snippet))
		return &TransportError{Op: op, Method: method, URL: url, StatusCode: resp.StatusCode, Err: sentinel}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if raw, ok := out.(*json.RawMessage); ok {
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return c.malformed(ctx, log, op, method, url, resp.StatusCode, err)
		}
		*raw = b
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.malformed(ctx, log, op, method, url, resp.StatusCode, err)
	}
	if v, ok := out.(validatable); ok {
		if err := v.Validate(); err != nil {
			return c.malformed(ctx, log, op, method, url, resp.StatusCode, err)
		}
	}
	return nil
}

func (c *RESTClient) malformed(ctx context.Context, log logging.Logger, op, method, url string, status int, err error) error {
	log.Error(ctx, "malformed api response", "status", status, "error", err)
	return &TransportError{
		Op:         op,
		Method:     method,
		URL:        url,
		StatusCode: status,
		Err:        fmt.Errorf("%w: %w", ErrMalformedResponse, err),
	}
}

// encodeUserForm renders payload as multipart/form-data. Field order is
// name, gmail, dob, then photo and photoname when a photo is attached,
// then id for updates.
func encodeUserForm(p models.UserPayload, withID bool) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range [][2]string{
		{"name", p.Name},
		{"gmail", p.Email},
		{"dob", p.DateOfBirth},
	} {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}

	if p.Photo != nil {
		if err := writePhoto(w, p.Photo); err != nil {
			return nil, "", err
		}
		if err := w.WriteField("photoname", p.PhotoName); err != nil {
			return nil, "", err
		}
	}

	if withID {
		if err := w.WriteField("id", strconv.FormatInt(p.ID, 10)); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writePhoto(w *multipart.Writer, photo *models.PhotoFile) error {
	if photo.Name == "" {
		return errors.New("photo has no file name")
	}

	contentType := photo.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename="%s"`, quoteEscaper.Replace(photo.Name)))
	h.Set("Content-Type", contentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	_, err = part.Write(photo.Content)
	return err
}
