package monitor

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/varepato/pantrypal/internal/dateparse"
)

var errNameRequired = errors.New("name is required")

// FormKind selects what the open form creates.
type FormKind int

const (
	FormAddPlace FormKind = iota
	FormAddItem
	FormAddShopping
)

// FormState holds the modal form and its bound values.
type FormState struct {
	Kind FormKind
	Form *huh.Form

	Name    string
	Icon    string
	Color   string
	Qty     string
	Notes   string
	Expires string
}

// NewFormState builds a form for the given kind.
func NewFormState(kind FormKind) *FormState {
	fs := &FormState{Kind: kind, Qty: "1"}
	fs.buildForm()
	return fs
}

func (fs *FormState) buildForm() {
	nameInput := huh.NewInput().
		Title("Name").
		Value(&fs.Name).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errNameRequired
			}
			return nil
		})

	qtyInput := huh.NewInput().
		Title("Quantity").
		Value(&fs.Qty).
		Validate(func(s string) error {
			if s == "" {
				return nil
			}
			if _, err := strconv.Atoi(s); err != nil {
				return errors.New("not a number")
			}
			return nil
		})

	switch fs.Kind {
	case FormAddPlace:
		fs.Form = huh.NewForm(huh.NewGroup(
			nameInput,
			huh.NewInput().Title("Icon").Value(&fs.Icon).Placeholder("box"),
			huh.NewInput().Title("Color").Value(&fs.Color).Placeholder("#3B82F6"),
		))
	case FormAddItem:
		fs.Form = huh.NewForm(huh.NewGroup(
			nameInput,
			qtyInput,
			huh.NewInput().
				Title("Expires").
				Value(&fs.Expires).
				Placeholder("2026-03-01, +7d, tomorrow").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := dateparse.Parse(s)
					return err
				}),
			huh.NewText().Title("Notes").Value(&fs.Notes).Lines(2),
		))
	case FormAddShopping:
		fs.Form = huh.NewForm(huh.NewGroup(nameInput, qtyInput))
	}
}

// QtyValue returns the bound quantity, defaulting to 1.
func (fs *FormState) QtyValue() int {
	n, err := strconv.Atoi(fs.Qty)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// ExpiresValue parses the bound expiry input, nil when blank.
func (fs *FormState) ExpiresValue() *time.Time {
	if strings.TrimSpace(fs.Expires) == "" {
		return nil
	}
	t, err := dateparse.Parse(fs.Expires)
	if err != nil {
		return nil
	}
	return &t
}
