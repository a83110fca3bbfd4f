package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"playoh/internal/domain/bookings"
	"playoh/internal/domain/schedules"
	"playoh/internal/domain/sports"
	"playoh/internal/domain/venues"
	"playoh/internal/ids"
	"playoh/internal/playoh"
	"playoh/internal/views"
)

type homePage struct {
	Schedules     []schedules.Schedule
	Sports        []sports.Sport
	Venues        []venues.Venue
	SelectedVenue string
	IsAdmin       bool
}

const loadSchedulesFailed = "Failed to load schedules. Please try again."

func boolPtr(b bool) *bool { return &b }

// homeHandler is the feed of schedules the user can still join.
func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	client := app.client(r)
	tz := app.tzOffset(r)
	data := homePage{SelectedVenue: strings.TrimSpace(r.URL.Query().Get("venue"))}

	// the role decides whether venues are loaded, so the user comes first
	user, err := client.CurrentUser(ctx)
	if err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("load current user", "error", err.Error())
		app.render(w, r, http.StatusOK, views.HomePage, "Home", "home", data, flashOf(flashDanger, loadSchedulesFailed))
		return
	}
	data.IsAdmin = user.IsAdmin

	filter := schedules.Filter{
		IncludeParticipants:   boolPtr(true),
		TimezoneOffsetMinutes: &tz,
		AvailableOnly:         boolPtr(true),
		ExcludeJoined:         boolPtr(true),
	}
	if data.SelectedVenue != "" {
		filter.Venue = &data.SelectedVenue
	}

	var b batch
	b.Go(func() (err error) {
		data.Schedules, err = client.ListSchedules(ctx, filter)
		return err
	})
	b.Go(func() (err error) {
		data.Sports, err = client.ListSports(ctx)
		return err
	})
	if !user.IsAdmin {
		b.Go(func() (err error) {
			data.Venues, err = client.ListVenues(ctx, &tz)
			return err
		})
	}

	var flash *views.Flash
	if err := b.Wait(); err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("load home feed", "error", err.Error())
		flash = flashOf(flashDanger, loadSchedulesFailed)
	}

	app.render(w, r, http.StatusOK, views.HomePage, "Home", "home", data, flash)
}

// loadJoinTarget resolves {ref} to a schedule. It has written the response
// when it returns nil.
func (app *application) loadJoinTarget(w http.ResponseWriter, r *http.Request) *schedules.Schedule {
	id, err := app.refParam(r)
	if err != nil {
		if errors.Is(err, ids.ErrInvalidRef) {
			app.notFoundResponse(w, r)
			return nil
		}
		app.badRequestResponse(w, r, err)
		return nil
	}

	tz := app.tzOffset(r)
	s, err := app.client(r).GetSchedule(r.Context(), id, &tz, false)
	if err != nil {
		if playoh.StatusCode(err) == http.StatusNotFound {
			app.setFlash(w, flashWarning, "This schedule no longer exists.")
			http.Redirect(w, r, "/tabs/home", http.StatusSeeOther)
			return nil
		}
		app.apiFailure(w, r, err, "Failed to join schedule. Please try again.", "/tabs/home")
		return nil
	}

	if !s.Joinable() {
		app.setFlash(w, flashWarning, "This schedule is full.")
		http.Redirect(w, r, "/tabs/home", http.StatusSeeOther)
		return nil
	}
	return s
}

func (app *application) joinConfirmHandler(w http.ResponseWriter, r *http.Request) {
	s := app.loadJoinTarget(w, r)
	if s == nil {
		return
	}

	tz := app.tzOffset(r)
	app.render(w, r, http.StatusOK, views.ConfirmPage, "Join Schedule", "home", confirmPage{
		Heading: "Join Schedule",
		Message: fmt.Sprintf("Join %s at %s on %s at %s?", s.SportName, s.Venue, views.FormatDate(s.StartTime, tz), views.FormatClock(s.StartTime, tz)),
		Action:  "/tabs/home/join/" + app.ids.Encode(s.ID),
		Submit:  "Join",
		Cancel:  "/tabs/home",
	})
}

// joinHandler re-reads the schedule before joining: a full schedule is
// refused here and no join request reaches the backend.
func (app *application) joinHandler(w http.ResponseWriter, r *http.Request) {
	s := app.loadJoinTarget(w, r)
	if s == nil {
		return
	}

	if _, err := app.client(r).JoinSchedule(r.Context(), bookings.JoinRequest{ScheduleID: s.ID}); err != nil {
		app.apiFailure(w, r, err, "Failed to join schedule. Please try again.", "/tabs/home")
		return
	}

	app.setFlash(w, flashSuccess, "Successfully joined the schedule!")
	http.Redirect(w, r, "/tabs/home", http.StatusSeeOther)
}
