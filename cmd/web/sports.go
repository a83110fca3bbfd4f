package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"playoh/internal/domain"
	"playoh/internal/domain/sports"
	"playoh/internal/media"
	"playoh/internal/playoh"
	"playoh/internal/views"
)

const maxIconBytes = 2 << 20 // 2mb

type sportsPage struct {
	Sports []sports.Sport
}

type sportFormPage struct {
	Edit            bool
	Ref             string
	Name            string
	IconURL         string
	PreviousIconURL string
	UploadsEnabled  bool
	Errors          map[string]string
}

func (app *application) uploadsEnabled() bool {
	_, disabled := app.media.(media.Disabled)
	return !disabled
}

func (app *application) sportsHandler(w http.ResponseWriter, r *http.Request) {
	var flash *views.Flash
	list, err := app.client(r).ListSports(r.Context())
	if err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("load sports", "error", err.Error())
		flash = flashOf(flashDanger, "Failed to load sports")
	}

	app.render(w, r, http.StatusOK, views.SportsPage, "Sports Management", "profile", sportsPage{Sports: list}, flash)
}

func (app *application) newSportHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, views.SportFormPage, "Add Sport", "profile", sportFormPage{UploadsEnabled: app.uploadsEnabled()})
}

func (app *application) editSportHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := app.recordRef(w, r)
	if !ok {
		return
	}

	s, err := app.client(r).GetSport(r.Context(), id)
	if err != nil {
		app.apiFailure(w, r, err, "Failed to load sports", "/tabs/sports-management")
		return
	}

	app.render(w, r, http.StatusOK, views.SportFormPage, "Edit Sport", "profile", sportFormPage{
		Edit:            true,
		Ref:             app.ids.Encode(id),
		Name:            s.Name,
		IconURL:         domain.Deref(s.IconURL),
		PreviousIconURL: domain.Deref(s.IconURL),
		UploadsEnabled:  app.uploadsEnabled(),
	})
}

// readSportForm parses the multipart form. An uploaded icon wins over a
// typed URL and is stored under publicID.
func (app *application) readSportForm(w http.ResponseWriter, r *http.Request, publicID string) (sportFormPage, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxIconBytes+maxFormBytes)
	if err := r.ParseMultipartForm(maxIconBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return sportFormPage{}, err
	}

	page := sportFormPage{
		Name:            strings.TrimSpace(r.FormValue("name")),
		IconURL:         strings.TrimSpace(r.FormValue("iconUrl")),
		PreviousIconURL: r.FormValue("previousIconUrl"),
		UploadsEnabled:  app.uploadsEnabled(),
		Errors:          map[string]string{},
	}

	file, header, err := r.FormFile("icon")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return page, nil
	}
	if err != nil {
		return page, err
	}
	defer file.Close()

	if header.Size == 0 {
		return page, nil
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		page.Errors["icon"] = "The icon must be an image"
		return page, nil
	}

	url, err := app.media.Upload(r.Context(), file, publicID)
	if err != nil {
		app.logger.Warnw("icon upload failed", "error", err.Error())
		page.Errors["icon"] = "Failed to upload the icon"
		return page, nil
	}
	page.IconURL = url
	return page, nil
}

func (app *application) createSportHandler(w http.ResponseWriter, r *http.Request) {
	page, err := app.readSportForm(w, r, "sport_"+uuid.NewString())
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	if page.Name == "" {
		page.Errors["name"] = "Please enter a sport name"
	}
	if len(page.Errors) > 0 {
		app.render(w, r, http.StatusUnprocessableEntity, views.SportFormPage, "Add Sport", "profile", page, flashOf(flashWarning, firstError(page.Errors, "name", "icon")))
		return
	}

	s, err := app.client(r).CreateSport(r.Context(), sports.CreateSportRequest{
		Name:    page.Name,
		IconURL: domain.String(page.IconURL),
	})
	if err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("create sport", "status", playoh.StatusCode(err), "error", err.Error())
		app.render(w, r, http.StatusOK, views.SportFormPage, "Add Sport", "profile", page, flashOf(flashDanger, playoh.Message(err, "Failed to save sport")))
		return
	}

	app.logger.Infow("sport created", "sportID", s.ID)
	app.setFlash(w, flashSuccess, "Sport created successfully")
	http.Redirect(w, r, "/tabs/sports-management", http.StatusSeeOther)
}

func (app *application) updateSportHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := app.recordRef(w, r)
	if !ok {
		return
	}

	page, err := app.readSportForm(w, r, fmt.Sprintf("sport_%d", id))
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	page.Edit = true
	page.Ref = app.ids.Encode(id)
	if page.Name == "" {
		page.Errors["name"] = "Please enter a sport name"
	}
	if len(page.Errors) > 0 {
		app.render(w, r, http.StatusUnprocessableEntity, views.SportFormPage, "Edit Sport", "profile", page, flashOf(flashWarning, firstError(page.Errors, "name", "icon")))
		return
	}

	err = app.client(r).UpdateSport(r.Context(), id, sports.UpdateSportRequest{
		Name:    &page.Name,
		IconURL: domain.String(page.IconURL),
	})
	if err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("update sport", "sportID", id, "status", playoh.StatusCode(err), "error", err.Error())
		app.render(w, r, http.StatusOK, views.SportFormPage, "Edit Sport", "profile", page, flashOf(flashDanger, playoh.Message(err, "Failed to save sport")))
		return
	}

	if page.PreviousIconURL != page.IconURL {
		app.discardIcon(r.Context(), page.PreviousIconURL)
	}

	app.setFlash(w, flashSuccess, "Sport updated successfully")
	http.Redirect(w, r, "/tabs/sports-management", http.StatusSeeOther)
}

func (app *application) deleteSportConfirmHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := app.recordRef(w, r); !ok {
		return
	}

	app.render(w, r, http.StatusOK, views.ConfirmPage, "Delete Sport", "profile", confirmPage{
		Heading: "Delete Sport",
		Message: "Are you sure you want to delete this sport?",
		Action:  r.URL.Path,
		Submit:  "Delete",
		Cancel:  "/tabs/sports-management",
		Danger:  true,
	})
}

func (app *application) deleteSportHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := app.recordRef(w, r)
	if !ok {
		return
	}

	client := app.client(r)
	var iconURL string
	if s, err := client.GetSport(r.Context(), id); err == nil {
		iconURL = domain.Deref(s.IconURL)
	}

	if err := client.DeleteSport(r.Context(), id); err != nil {
		app.apiFailure(w, r, err, "Failed to delete sport. It may be in use by schedules.", "/tabs/sports-management")
		return
	}
	app.discardIcon(r.Context(), iconURL)

	app.setFlash(w, flashSuccess, "Sport deleted successfully")
	http.Redirect(w, r, "/tabs/sports-management", http.StatusSeeOther)
}

// discardIcon removes an uploaded icon nothing points at any more. Icons
// hosted elsewhere are left alone.
func (app *application) discardIcon(ctx context.Context, iconURL string) {
	if !media.Owns(iconURL) {
		return
	}
	if err := app.media.Delete(ctx, iconURL); err != nil && !errors.Is(err, media.ErrNotConfigured) {
		app.logger.Warnw("icon delete failed", "url", iconURL, "error", err.Error())
	}
}

// firstError returns the message of the first field, in order, that has one.
func firstError(errs map[string]string, fields ...string) string {
	for _, f := range fields {
		if msg, ok := errs[f]; ok {
			return msg
		}
	}
	return ""
}
