package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
)

const (
	defaultWidth = 100
	columnGap    = 2
	minColumn    = 6
)

// termSize is a test seam for term.GetSize.
var termSize = term.GetSize

func terminalWidth() int {
	w, _, err := termSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

var tableHeader = []string{"ID", "NAME", "GMAIL", "DOB", "PHOTO"}

// renderUsers prints one page of users as an aligned table that fits in
// width columns, followed by the page position.
func renderUsers(w io.Writer, users []models.User, page, total, width int) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users found.")
		fmt.Fprintf(w, "Page %d of %d\n", page, total)
		return
	}

	limit := width/len(tableHeader) - columnGap
	if limit < minColumn {
		limit = minColumn
	}

	tw := tabwriter.NewWriter(w, 0, 0, columnGap, ' ', 0)
	writeRow(tw, tableHeader, limit)
	for _, u := range users {
		writeRow(tw, []string{
			strconv.FormatInt(u.ID, 10),
			u.Name,
			u.Email,
			u.DateOfBirth,
			u.PhotoFileName(),
		}, limit)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "Page %d of %d\n", page, total)
}

func writeRow(w io.Writer, cells []string, limit int) {
	for i, c := range cells {
		if i > 0 {
			fmt.Fprint(w, "\t")
		}
		fmt.Fprint(w, truncate(c, limit))
	}
	fmt.Fprintln(w)
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-3]) + "..."
}
