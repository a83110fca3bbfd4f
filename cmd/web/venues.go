package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"playoh/internal/domain/venues"
	"playoh/internal/validate"
	"playoh/internal/views"
)

const venuesPath = "/tabs/venue-management"

type renameForm struct {
	OldName string `schema:"oldName"`
	NewName string `schema:"newName"`
}

type mergeForm struct {
	Venues     []string `schema:"venues"`
	TargetName string   `schema:"targetName"`
}

type venuesPage struct {
	Stats       []venues.Statistics
	Suggestions []string
	Rename      renameForm
	Merge       mergeForm
	Validation  *venues.Validation
	Errors      map[string]string
}

// loadVenues fills the statistics cards and the name list used by both forms.
func (app *application) loadVenues(r *http.Request, page *venuesPage) error {
	client := app.client(r)
	ctx := r.Context()

	var b batch
	b.Go(func() (err error) {
		page.Stats, err = client.VenueStatistics(ctx)
		return err
	})
	b.Go(func() (err error) {
		page.Suggestions, err = client.VenueSuggestions(ctx)
		return err
	})
	return b.Wait()
}

func (app *application) renderVenues(w http.ResponseWriter, r *http.Request, status int, page venuesPage, flash *views.Flash) {
	if err := app.loadVenues(r, &page); err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("load venues", "error", err.Error())
		if flash == nil {
			flash = flashOf(flashDanger, "Failed to load venues")
		}
	}
	app.render(w, r, status, views.VenuesPage, "Venue Management", "profile", page, flash)
}

func (app *application) venuesHandler(w http.ResponseWriter, r *http.Request) {
	page := venuesPage{Rename: renameForm{OldName: r.URL.Query().Get("rename")}}
	app.renderVenues(w, r, http.StatusOK, page, nil)
}

// renameVenueHandler asks the backend to vet the new name first and shows
// its issues and suggestions instead of renaming when it objects.
func (app *application) renameVenueHandler(w http.ResponseWriter, r *http.Request) {
	var form renameForm
	if err := readForm(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form.NewName = strings.TrimSpace(form.NewName)
	page := venuesPage{Rename: form}

	v := validate.New()
	v.Required("oldName", form.OldName, "Select the venue to rename")
	v.Required("newName", form.NewName, "Enter the new venue name")
	if !v.Valid() {
		app.formRejected(r, "rename venue", v)
		page.Errors = v.Errors
		app.renderVenues(w, r, http.StatusUnprocessableEntity, page, flashOf(flashWarning, "Please fill in all required fields"))
		return
	}

	client := app.client(r)
	check, err := client.ValidateVenue(r.Context(), form.NewName)
	if err != nil {
		app.apiFailure(w, r, err, "Failed to rename venue", venuesPath)
		return
	}
	if !check.IsValid {
		page.Validation = check
		app.renderVenues(w, r, http.StatusUnprocessableEntity, page, flashOf(flashWarning, "The new venue name needs attention"))
		return
	}

	res, err := client.RenameVenue(r.Context(), venues.RenameRequest{OldName: form.OldName, NewName: form.NewName})
	if err != nil {
		app.apiFailure(w, r, err, "Failed to rename venue", venuesPath)
		return
	}

	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Venue renamed successfully. %d schedules updated.", res.SchedulesUpdated)
	}
	app.logger.Infow("venue renamed", "from", form.OldName, "to", form.NewName, "schedules", res.SchedulesUpdated)
	app.setFlash(w, flashSuccess, msg)
	http.Redirect(w, r, venuesPath, http.StatusSeeOther)
}

func (app *application) mergeVenuesHandler(w http.ResponseWriter, r *http.Request) {
	var form mergeForm
	if err := readForm(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	form.TargetName = strings.TrimSpace(form.TargetName)

	if len(form.Venues) < 2 || form.TargetName == "" {
		const msg = "Please select at least 2 venues and provide a target name"
		page := venuesPage{Merge: form, Errors: map[string]string{"merge": msg}}
		app.renderVenues(w, r, http.StatusUnprocessableEntity, page, flashOf(flashWarning, msg))
		return
	}

	res, err := app.client(r).MergeVenues(r.Context(), venues.MergeRequest{
		TargetName:    form.TargetName,
		VenuesToMerge: form.Venues,
	})
	if err != nil {
		app.apiFailure(w, r, err, "Failed to merge venues", venuesPath)
		return
	}

	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Venues merged successfully. %d schedules updated.", res.SchedulesUpdated)
	}
	app.logger.Infow("venues merged", "into", form.TargetName, "venues", form.Venues, "schedules", res.SchedulesUpdated)
	app.setFlash(w, flashSuccess, msg)
	http.Redirect(w, r, venuesPath, http.StatusSeeOther)
}

// deleteVenueConfirmHandler spells out what the deletion takes with it.
func (app *application) deleteVenueConfirmHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("venue")
	if name == "" {
		app.notFoundResponse(w, r)
		return
	}

	stats, err := app.client(r).VenueStatistics(r.Context())
	if err != nil {
		app.apiFailure(w, r, err, "Failed to load venues", venuesPath)
		return
	}

	message := fmt.Sprintf("Are you sure you want to delete %q?", name)
	for _, s := range stats {
		if s.VenueName == name {
			message = fmt.Sprintf("Are you sure you want to delete %q? This will delete %d future schedules and affect %d bookings.",
				name, s.FutureSchedules, s.TotalBookings)
			break
		}
	}

	app.render(w, r, http.StatusOK, views.ConfirmPage, "Delete Venue", "profile", confirmPage{
		Heading: "Delete Venue",
		Message: message,
		Action:  venuesPath + "/delete?venue=" + url.QueryEscape(name),
		Submit:  "Delete",
		Cancel:  venuesPath,
		Danger:  true,
	})
}

func (app *application) deleteVenueHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("venue")
	if name == "" {
		app.badRequestResponse(w, r, fmt.Errorf("missing venue"))
		return
	}

	res, err := app.client(r).DeleteVenue(r.Context(), name)
	if err != nil {
		app.apiFailure(w, r, err, "Failed to delete venue", venuesPath)
		return
	}

	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Venue deleted. %d schedules and %d bookings removed.", res.SchedulesDeleted, res.BookingsAffected)
	}
	app.logger.Infow("venue deleted", "venue", name, "schedules", res.SchedulesDeleted, "bookings", res.BookingsAffected)
	app.setFlash(w, flashSuccess, msg)
	http.Redirect(w, r, venuesPath, http.StatusSeeOther)
}
