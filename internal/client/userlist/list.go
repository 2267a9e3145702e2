// Package userlist implements the paginated user list: paging, delete with
// confirmation, spreadsheet export and the hand-off to the user form.
//
// Each load replaces the whole page; nothing is accumulated across pages.
// A Controller is not safe for concurrent use.
package userlist

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/logging"
)

const DeletePrompt = "Are you sure you want to delete this user?"

// UserAPI is the part of the API client the list needs.
type UserAPI interface {
	ListUsers(ctx context.Context, page int) (*models.Page, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Navigator opens the user form.
type Navigator interface {
	OpenUserForm(ctx context.Context, mode models.FormMode) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// Exporter persists a set of users and returns where they went.
type Exporter interface {
	Export(users []models.User) (string, error)
}

type Controller struct {
	api      UserAPI
	nav      Navigator
	confirm  Confirmer
	exporter Exporter
	logger   logging.Logger

	users       []models.User
	currentPage int
	totalPages  int
}

func New(api UserAPI, nav Navigator, confirm Confirmer, exporter Exporter, logger logging.Logger) *Controller {
	return &Controller{
		api:         api,
		nav:         nav,
		confirm:     confirm,
		exporter:    exporter,
		logger:      logger,
		currentPage: 1,
		totalPages:  1,
	}
}

// Users returns a copy of the loaded page.
func (c *Controller) Users() []models.User {
	out := make([]models.User, len(c.users))
	copy(out, c.users)
	return out
}

func (c *Controller) CurrentPage() int {
	return c.currentPage
}

func (c *Controller) TotalPages() int {
	return c.totalPages
}

// LoadUsers fetches page and replaces the list state with the response.
// On failure the previous state is kept.
func (c *Controller) LoadUsers(ctx context.Context, page int) error {
	p, err := c.api.ListUsers(ctx, page)
	if err != nil {
		c.logger.Error(ctx, "failed to load users", "page", page, "error", err)
		return fmt.Errorf("load page %d: %w", page, err)
	}

	c.users = p.Data
	c.currentPage = p.CurrentPage
	c.totalPages = p.LastPage

	c.logger.Debug(ctx, "users loaded", "page", c.currentPage, "total_pages", c.totalPages, "count", len(c.users))
	return nil
}

// NextPage loads the following page; at the last page it does nothing.
func (c *Controller) NextPage(ctx context.Context) (bool, error) {
	if c.currentPage >= c.totalPages {
		return false, nil
	}
	if err := c.LoadUsers(ctx, c.currentPage+1); err != nil {
		return false, err
	}
	return true, nil
}

// PrevPage loads the preceding page; at page 1 it does nothing.
func (c *Controller) PrevPage(ctx context.Context) (bool, error) {
	if c.currentPage <= 1 {
		return false, nil
	}
	if err := c.LoadUsers(ctx, c.currentPage-1); err != nil {
		return false, err
	}
	return true, nil
}

// DeleteUser asks for confirmation, deletes the user and reloads the
// current page. When that page comes back empty and is not the first one,
// the list steps back to the nearest page that can still hold users.
// It reports whether the delete was sent.
func (c *Controller) DeleteUser(ctx context.Context, id int64) (bool, error) {
	ok, err := c.confirm.Confirm(DeletePrompt)
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		c.logger.Debug(ctx, "delete cancelled", "id", id)
		return false, nil
	}

	if err := c.api.DeleteUser(ctx, id); err != nil {
		c.logger.Error(ctx, "failed to delete user", "id", id, "error", err)
		return false, fmt.Errorf("delete user %d: %w", id, err)
	}
	c.logger.Info(ctx, "user deleted", "id", id)

	if err := c.LoadUsers(ctx, c.currentPage); err != nil {
		return true, err
	}

	if len(c.users) == 0 && c.currentPage > 1 {
		target := c.currentPage - 1
		if c.totalPages >= 1 && target > c.totalPages {
			target = c.totalPages
		}
		if err := c.LoadUsers(ctx, target); err != nil {
			return true, err
		}
	}
	return true, nil
}

// ExportToExcel writes the loaded page, and only that page, through the
// exporter. It does not touch the network.
func (c *Controller) ExportToExcel() (string, error) {
	path, err := c.exporter.Export(c.Users())
	if err != nil {
		return "", fmt.Errorf("export users: %w", err)
	}
	return path, nil
}

func (c *Controller) EditUser(ctx context.Context, id int64) error {
	return c.nav.OpenUserForm(ctx, models.EditMode(id))
}

func (c *Controller) AddUser(ctx context.Context) error {
	return c.nav.OpenUserForm(ctx, models.CreateMode())
}
