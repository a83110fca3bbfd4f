package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	appconf "playoh/internal/config"
	"playoh/internal/domain"
	"playoh/internal/domain/schedules"
	"playoh/internal/domain/sports"
	"playoh/internal/domain/venues"
	"playoh/internal/events"
	"playoh/internal/ids"
	"playoh/internal/params"
	"playoh/internal/playoh"
	"playoh/internal/validate"
	"playoh/internal/views"
)

type schedulesPage struct {
	Rows       []schedules.Schedule
	Pagination params.Pagination
}

// adminSchedulesHandler lists every schedule from today on, twenty rows per
// page. The backend returns the whole list; paging happens here.
func (app *application) adminSchedulesHandler(w http.ResponseWriter, r *http.Request) {
	tz := app.tzOffset(r)
	today := time.Now().In(schedules.Zone(tz)).Format(time.DateOnly)

	var flash *views.Flash
	list, err := app.client(r).ListSchedules(r.Context(), schedules.Filter{
		StartDate:             &today,
		IncludeParticipants:   boolPtr(false),
		TimezoneOffsetMinutes: &tz,
	})
	if err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("load admin schedules", "error", err.Error())
		flash = flashOf(flashDanger, loadSchedulesFailed)
	}

	p := params.ParsePagination(r.URL.Query())
	p.ComputeMeta(len(list))
	start, end := p.Window(len(list))

	data := schedulesPage{Rows: list[start:end], Pagination: p}
	app.render(w, r, http.StatusOK, views.SchedulesPage, "Manage Schedules", "bookings", data, flash)
}

// scheduleForm is the posted add/edit form. Numbers stay strings until
// validated so a bad value can be shown back as typed.
type scheduleForm struct {
	SportID          string   `schema:"sportId"`
	Venue            string   `schema:"venue"`
	StartDate        string   `schema:"startDate"`
	StartTime        string   `schema:"startTime"`
	EndTime          string   `schema:"endTime"`
	MaxPlayers       string   `schema:"maxPlayers"`
	EquipmentDetails string   `schema:"equipmentDetails"`
	Recurring        bool     `schema:"recurring"`
	Frequency        string   `schema:"frequency"`
	Days             []string `schema:"days"`
	Interval         string   `schema:"interval"`
	EndDate          string   `schema:"endDate"`
}

// recurrence reads the recurrence sub-form. Unparseable parts fall back to
// the defaults of a fresh form.
func (f scheduleForm) recurrence() schedules.RecurrenceForm {
	rec := schedules.DefaultRecurrenceForm()
	rec.Enabled = f.Recurring
	rec.EndDate = strings.TrimSpace(f.EndDate)

	if freq, err := schedules.ParseFrequency(f.Frequency); err == nil {
		rec.Frequency = freq
	}
	if n, err := strconv.Atoi(strings.TrimSpace(f.Interval)); err == nil {
		rec.Interval = n
	}
	for _, d := range f.Days {
		if n, err := strconv.Atoi(d); err == nil {
			rec.Days = append(rec.Days, time.Weekday(n))
		}
	}
	return rec
}

// scheduleInput is a validated form.
type scheduleInput struct {
	sportID    int64
	venue      string
	date       string
	startTime  string
	endTime    string
	maxPlayers int
	equipment  *string
	recurrence schedules.RecurrenceForm
}

// check validates the form and returns the toast to show when it fails.
// The sport is fixed once a schedule exists, so edits skip it.
func (f scheduleForm) check(edit bool) (scheduleInput, *validate.Form, string) {
	v := validate.New()
	in := scheduleInput{
		venue:      strings.TrimSpace(f.Venue),
		equipment:  domain.String(strings.TrimSpace(f.EquipmentDetails)),
		recurrence: f.recurrence(),
	}

	const required = "Please fill in all required fields"
	if !edit {
		v.Required("sportId", f.SportID, "Sport is required")
	}
	v.Required("venue", f.Venue, "Venue is required")
	v.Required("startDate", f.StartDate, "Date is required")
	v.Required("startTime", f.StartTime, "Start time is required")
	v.Required("endTime", f.EndTime, "End time is required")
	if !v.Valid() {
		return in, v, required
	}

	if !edit {
		id, err := strconv.ParseInt(f.SportID, 10, 64)
		if err != nil || id <= 0 {
			v.Add("sportId", "Sport is required")
			return in, v, required
		}
		in.sportID = id
	}

	var err error
	if in.date, err = schedules.NormalizeDate(f.StartDate); err != nil {
		v.Add("startDate", "Enter a valid date")
	}
	if in.startTime, err = schedules.NormalizeClock(f.StartTime); err != nil {
		v.Add("startTime", "Enter a valid time")
	}
	if in.endTime, err = schedules.NormalizeClock(f.EndTime); err != nil {
		v.Add("endTime", "Enter a valid time")
	}
	if !v.Valid() {
		return in, v, required
	}

	n, ok := v.MaxPlayers("maxPlayers", f.MaxPlayers)
	if !ok {
		return in, v, v.Error("maxPlayers")
	}
	in.maxPlayers = n

	if !edit && in.recurrence.Enabled && !v.Interval("interval", in.recurrence.Interval) {
		return in, v, v.Error("interval")
	}
	return in, v, ""
}

type scheduleFormPage struct {
	Edit          bool
	Ref           string
	Form          scheduleForm
	SelectedSport int64
	Sports        []sports.Sport
	Suggestions   []string
	Matches       []string
	Recurrence    schedules.RecurrenceForm
	Errors        map[string]string
}

// loadFormOptions fetches the sport list and the venue names offered while
// typing. Suggestions are fetched once here and filtered in the browser.
func (app *application) loadFormOptions(r *http.Request, b *batch, page *scheduleFormPage) {
	client := app.client(r)
	ctx := r.Context()
	b.Go(func() (err error) {
		page.Sports, err = client.ListSports(ctx)
		return err
	})
	b.Go(func() (err error) {
		page.Suggestions, err = client.VenueSuggestions(ctx)
		return err
	})
}

func (app *application) renderScheduleForm(w http.ResponseWriter, r *http.Request, status int, page scheduleFormPage, flash *views.Flash) {
	page.Matches = venues.FilterSuggestions(page.Suggestions, page.Form.Venue, appconf.SuggestionLimit)
	if id, err := strconv.ParseInt(page.Form.SportID, 10, 64); err == nil {
		page.SelectedSport = id
	}
	title := "Add Schedule"
	if page.Edit {
		title = "Edit Schedule"
	}
	app.render(w, r, status, views.ScheduleFormPage, title, "bookings", page, flash)
}

// reshowScheduleForm renders a rejected submission again with fresh options.
func (app *application) reshowScheduleForm(w http.ResponseWriter, r *http.Request, status int, page scheduleFormPage, flash *views.Flash) {
	var b batch
	app.loadFormOptions(r, &b, &page)
	if err := b.Wait(); err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("load schedule form options", "error", err.Error())
	}
	app.renderScheduleForm(w, r, status, page, flash)
}

func (app *application) newScheduleHandler(w http.ResponseWriter, r *http.Request) {
	tz := app.tzOffset(r)
	page := scheduleFormPage{
		Form: scheduleForm{
			StartDate:  time.Now().In(schedules.Zone(tz)).Format(time.DateOnly),
			MaxPlayers: "10",
		},
		Recurrence: schedules.DefaultRecurrenceForm(),
	}

	var b batch
	app.loadFormOptions(r, &b, &page)

	var flash *views.Flash
	if err := b.Wait(); err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("load schedule form options", "error", err.Error())
		flash = flashOf(flashDanger, "Failed to load sports and venues. Please try again.")
	}

	app.renderScheduleForm(w, r, http.StatusOK, page, flash)
}

func (app *application) createScheduleHandler(w http.ResponseWriter, r *http.Request) {
	var form scheduleForm
	if err := readForm(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	page := scheduleFormPage{Form: form, Recurrence: form.recurrence()}
	in, v, problem := form.check(false)
	if problem != "" {
		app.formRejected(r, "schedule", v)
		page.Errors = v.Errors
		app.reshowScheduleForm(w, r, http.StatusUnprocessableEntity, page, flashOf(flashWarning, problem))
		return
	}

	req := schedules.CreateRequest{
		SportID:               in.sportID,
		Venue:                 in.venue,
		StartDate:             in.date,
		StartTime:             in.startTime,
		EndTime:               in.endTime,
		TimezoneOffsetMinutes: app.tzOffset(r),
		MaxPlayers:            in.maxPlayers,
		EquipmentDetails:      in.equipment,
		Recurrence:            in.recurrence.Build(),
	}

	created, err := app.client(r).CreateSchedule(r.Context(), req)
	if err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("create schedule", "status", playoh.StatusCode(err), "error", err.Error())
		app.reshowScheduleForm(w, r, http.StatusOK, page, flashOf(flashDanger, playoh.Message(err, "Failed to save schedule. Please try again.")))
		return
	}

	app.logger.Infow("schedules created", "count", len(created), "recurring", req.Recurrence != nil)
	msg := "Schedule created successfully"
	if req.Recurrence != nil {
		msg = "Recurring schedules created successfully"
	}
	app.setFlash(w, flashSuccess, msg)
	http.Redirect(w, r, "/tabs/bookings", http.StatusSeeOther)
}

// recordRef decodes {ref}, answering 404 itself when it cannot.
func (app *application) recordRef(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := app.refParam(r)
	if err != nil {
		if errors.Is(err, ids.ErrInvalidRef) {
			app.notFoundResponse(w, r)
			return 0, false
		}
		app.badRequestResponse(w, r, err)
		return 0, false
	}
	return id, true
}

func (app *application) editScheduleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := app.recordRef(w, r)
	if !ok {
		return
	}

	tz := app.tzOffset(r)
	page := scheduleFormPage{Edit: true, Ref: app.ids.Encode(id)}

	var s *schedules.Schedule
	var b batch
	b.Go(func() (err error) {
		s, err = app.client(r).GetSchedule(r.Context(), id, &tz, false)
		return err
	})
	app.loadFormOptions(r, &b, &page)

	err := b.Wait()
	if s == nil {
		if err == nil {
			err = errors.New("schedule missing from response")
		}
		app.apiFailure(w, r, err, "Failed to load schedule. Please try again.", "/tabs/bookings")
		return
	}
	var flash *views.Flash
	if err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("load schedule form options", "error", err.Error())
		flash = flashOf(flashDanger, "Failed to load sports and venues. Please try again.")
	}

	date, start := schedules.LocalParts(s.StartTime.Time, tz)
	_, end := schedules.LocalParts(s.EndTime.Time, tz)
	page.Form = scheduleForm{
		SportID:          strconv.FormatInt(s.SportID, 10),
		Venue:            s.Venue,
		StartDate:        date,
		StartTime:        start[:5],
		EndTime:          end[:5],
		MaxPlayers:       strconv.Itoa(s.MaxPlayers),
		EquipmentDetails: domain.Deref(s.EquipmentDetails),
	}

	app.renderScheduleForm(w, r, http.StatusOK, page, flash)
}

// updateScheduleHandler never sends recurrence: a series cannot be reshaped
// after it was created.
func (app *application) updateScheduleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := app.recordRef(w, r)
	if !ok {
		return
	}

	var form scheduleForm
	if err := readForm(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	page := scheduleFormPage{Edit: true, Ref: app.ids.Encode(id), Form: form}
	in, v, problem := form.check(true)
	if problem != "" {
		app.formRejected(r, "schedule", v)
		page.Errors = v.Errors
		app.reshowScheduleForm(w, r, http.StatusUnprocessableEntity, page, flashOf(flashWarning, problem))
		return
	}

	tz := app.tzOffset(r)
	req := schedules.UpdateRequest{
		Venue:                 &in.venue,
		Date:                  &in.date,
		StartTime:             &in.startTime,
		EndTime:               &in.endTime,
		TimezoneOffsetMinutes: &tz,
		MaxPlayers:            &in.maxPlayers,
		EquipmentDetails:      in.equipment,
	}
	if req.EquipmentDetails == nil {
		// an emptied field must reach the backend as empty, not as absent
		empty := ""
		req.EquipmentDetails = &empty
	}

	if err := app.client(r).UpdateSchedule(r.Context(), id, req); err != nil {
		if app.authExpired(w, r, err) {
			return
		}
		app.logger.Warnw("update schedule", "scheduleID", id, "status", playoh.StatusCode(err), "error", err.Error())
		app.reshowScheduleForm(w, r, http.StatusOK, page, flashOf(flashDanger, playoh.Message(err, "Failed to save schedule. Please try again.")))
		return
	}

	app.setFlash(w, flashSuccess, "Schedule updated successfully")
	http.Redirect(w, r, "/tabs/bookings", http.StatusSeeOther)
}

func (app *application) participantsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := app.recordRef(w, r)
	if !ok {
		return
	}

	tz := app.tzOffset(r)
	s, err := app.client(r).GetSchedule(r.Context(), id, &tz, true)
	if err != nil {
		app.apiFailure(w, r, err, "Failed to load participants. Please try again.", "/tabs/bookings")
		return
	}

	app.render(w, r, http.StatusOK, views.ParticipantsPage, "Participants", "bookings", *s)
}

func (app *application) deleteScheduleConfirmHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := app.recordRef(w, r); !ok {
		return
	}

	app.render(w, r, http.StatusOK, views.ConfirmPage, "Delete Schedule", "bookings", confirmPage{
		Heading: "Delete Schedule",
		Message: "Are you sure you want to delete this schedule? All bookings for it will be removed.",
		Action:  r.URL.Path,
		Submit:  "Delete",
		Cancel:  "/tabs/bookings",
		Danger:  true,
	})
}

func (app *application) deleteScheduleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := app.recordRef(w, r)
	if !ok {
		return
	}

	if err := app.client(r).DeleteSchedule(r.Context(), id); err != nil {
		app.apiFailure(w, r, err, "Failed to delete schedule. Please try again.", "/tabs/bookings")
		return
	}

	n := app.bus.Publish(events.Event{Name: events.ScheduleDeleted, ScheduleID: id})
	app.logger.Infow("schedule deleted", "scheduleID", id, "notified", n)

	app.setFlash(w, flashSuccess, "Schedule deleted successfully")
	http.Redirect(w, r, "/tabs/bookings", http.StatusSeeOther)
}

func (app *application) deleteAllSchedulesConfirmHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, views.ConfirmPage, "Delete All Schedules", "bookings", confirmPage{
		Heading: "Delete All Schedules",
		Message: "Are you sure you want to delete ALL your schedules? This cannot be undone.",
		Action:  "/tabs/schedules/delete-all",
		Submit:  "Delete All",
		Cancel:  "/tabs/bookings",
		Danger:  true,
	})
}

func (app *application) deleteAllSchedulesHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.client(r).DeleteMySchedules(r.Context()); err != nil {
		app.apiFailure(w, r, err, "Failed to delete all schedules. Please try again.", "/tabs/bookings")
		return
	}

	n := app.bus.Publish(events.Event{Name: events.AllSchedulesDeleted})
	app.logger.Infow("all schedules deleted", "notified", n)

	app.setFlash(w, flashSuccess, "All schedules deleted successfully")
	http.Redirect(w, r, "/tabs/bookings", http.StatusSeeOther)
}
