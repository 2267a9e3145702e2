package models

import "fmt"

// Page is one page of the paginated user listing.
type Page struct {
	Data        []User `json:"data"`
	CurrentPage int    `json:"current_page"`
	LastPage    int    `json:"last_page"`
}

// Validate checks the page counters and every item.
func (p Page) Validate() error {
	if p.CurrentPage < 1 {
		return fmt.Errorf("%w: current_page %d", ErrInvalidRecord, p.CurrentPage)
	}
	if p.LastPage < 0 {
		return fmt.Errorf("%w: last_page %d", ErrInvalidRecord, p.LastPage)
	}
	for i, u := range p.Data {
		if err := u.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}
