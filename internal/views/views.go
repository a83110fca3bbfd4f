// Package views renders the server-side screens from embedded templates.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"playoh/internal/domain/users"
	"playoh/internal/ids"
)

const (
	LoginPage          = "login.tmpl"
	RegisterPage       = "register.tmpl"
	HomePage           = "home.tmpl"
	BookingsPage       = "bookings.tmpl"
	SchedulesPage      = "schedules.tmpl"
	ScheduleFormPage   = "schedule_form.tmpl"
	ParticipantsPage   = "participants.tmpl"
	ConfirmPage        = "confirm.tmpl"
	SportsPage         = "sports.tmpl"
	SportFormPage      = "sport_form.tmpl"
	VenuesPage         = "venues.tmpl"
	ProfilePage        = "profile.tmpl"
	UserFormPage       = "user_form.tmpl"
	ErrorPage          = "error.tmpl"
	layoutTemplateName = "layout"
)

//go:embed "templates"
var FS embed.FS

// Flash is a one-shot notification shown at the top of the next page.
type Flash struct {
	Kind    string // success, warning or danger
	Message string
}

// Page is what every template receives. Data holds the screen's own model.
type Page struct {
	Title string
	Tab   string
	User  *users.Snapshot
	Flash *Flash
	// TZ is the viewer's offset from UTC in minutes.
	TZ   int
	Data any
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the layout.
func New(codec *ids.Codec) (*Renderer, error) {
	names, err := fs.Glob(FS, "templates/pages/*.tmpl")
	if err != nil {
		return nil, err
	}

	funcs := Funcs(codec)
	r := &Renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		t, err := template.New(path.Base(name)).Funcs(funcs).ParseFS(FS, "templates/layout.tmpl", name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[path.Base(name)] = t
	}
	return r, nil
}

// Render executes page into w. Nothing is written when execution fails.
func (r *Renderer) Render(w io.Writer, page string, p Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutTemplateName, p); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}
