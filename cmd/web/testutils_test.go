package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"playoh/internal/auth"
	"playoh/internal/domain/users"
	"playoh/internal/events"
	"playoh/internal/ids"
	"playoh/internal/kv"
	"playoh/internal/media"
	"playoh/internal/playoh"
	"playoh/internal/ratelimiter"
	"playoh/internal/session"
	"playoh/internal/views"
)

// backendCall is one request the fake backend received.
type backendCall struct {
	Method string
	Path   string
	Query  url.Values
	Body   []byte
	Auth   string
}

// fakeBackend answers API calls from handlers keyed by "METHOD /path",
// with the /api prefix stripped. Unknown routes answer 404.
type fakeBackend struct {
	mu     sync.Mutex
	calls  []backendCall
	routes map[string]http.HandlerFunc
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	path := strings.TrimPrefix(r.URL.Path, "/api")

	b.mu.Lock()
	b.calls = append(b.calls, backendCall{Method: r.Method, Path: path, Query: r.URL.Query(), Body: body, Auth: r.Header.Get("Authorization")})
	h, ok := b.routes[r.Method+" "+path]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	h(w, r)
}

func (b *fakeBackend) handle(route string, h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[route] = h
}

// called returns the calls made to "METHOD /path".
func (b *fakeBackend) called(route string) []backendCall {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []backendCall
	for _, c := range b.calls {
		if c.Method+" "+c.Path == route {
			out = append(out, c)
		}
	}
	return out
}

func jsonReply(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}
}

// recordingUploader stands in for Cloudinary and keeps the deleted URLs.
type recordingUploader struct {
	mu      sync.Mutex
	deleted []string
}

func (u *recordingUploader) Upload(_ context.Context, _ io.Reader, name string) (string, error) {
	return "https://res.cloudinary.com/demo/image/upload/v1/sport-icons/" + name + ".png", nil
}

func (u *recordingUploader) Delete(_ context.Context, fileURL string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.deleted = append(u.deleted, fileURL)
	return nil
}

func (u *recordingUploader) deletedURLs() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.deleted...)
}

func newTestApp(t *testing.T) (*application, *fakeBackend) {
	t.Helper()

	backend := &fakeBackend{routes: map[string]http.HandlerFunc{}}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	codec, err := ids.NewCodec("test-salt")
	if err != nil {
		t.Fatal(err)
	}
	renderer, err := views.New(codec)
	if err != nil {
		t.Fatal(err)
	}
	sealer, err := newDeviceSealer("test-secret", false)
	if err != nil {
		t.Fatal(err)
	}

	bus := events.NewBus()
	t.Cleanup(bus.Close)

	app := &application{
		config: config{
			env:         "test",
			apiURL:      srv.URL + "/api",
			corsOrigins: []string{"http://localhost"},
			rateLimiter: ratelimiter.Config{RequestsPerTimeFrame: 100, TimeFrame: time.Minute, Enabled: false},
		},
		logger:      zap.NewNop().Sugar(),
		kv:          kv.NewMemory(),
		api:         playoh.New(srv.URL+"/api", playoh.WithTimeout(5*time.Second)),
		views:       renderer,
		ids:         codec,
		bus:         bus,
		media:       media.Disabled{},
		tokens:      auth.NewUnverifiedInspector(),
		rateLimiter: ratelimiter.NewFixedWindowLimiter(100, time.Minute),
		device:      sealer,
	}
	return app, backend
}

// testDevice is a browser: a sealed device cookie plus direct access to the
// session stored for it.
type testDevice struct {
	cookie  *http.Cookie
	session *session.Store
}

func newTestDevice(t *testing.T, app *application) *testDevice {
	t.Helper()

	rec := httptest.NewRecorder()
	id, err := app.device.deviceID(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatal(err)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == deviceCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no device cookie was set")
	}
	return &testDevice{cookie: cookie, session: session.New(app.kv, id)}
}

// signIn stores a session the way a successful login would.
func (d *testDevice) signIn(t *testing.T, admin bool) {
	t.Helper()
	snap := users.Snapshot{UserID: 7, Name: "Sam", Email: "sam@example.com", IsAdmin: admin}
	if admin {
		snap.Role = "Admin"
	}
	if err := d.session.SetSession(context.Background(), "token-123", snap); err != nil {
		t.Fatal(err)
	}
}

func (d *testDevice) get(t *testing.T, h http.Handler, target string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return d.do(h, req, cookies...)
}

func (d *testDevice) post(t *testing.T, h http.Handler, target string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return d.do(h, req, cookies...)
}

func (d *testDevice) do(h http.Handler, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req.AddCookie(d.cookie)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func assertRedirect(t *testing.T, rec *httptest.ResponseRecorder, want string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d; body:\n%s", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != want {
		t.Fatalf("Location = %q, want %q", got, want)
	}
}

// queuedFlash decodes the toast a response queued for the next page.
func queuedFlash(t *testing.T, rec *httptest.ResponseRecorder) views.Flash {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name != flashCookieName || c.MaxAge < 0 {
			continue
		}
		b, err := base64.RawURLEncoding.DecodeString(c.Value)
		if err != nil {
			t.Fatal(err)
		}
		var f views.Flash
		if err := json.Unmarshal(b, &f); err != nil {
			t.Fatal(err)
		}
		return f
	}
	t.Fatal("no flash was queued")
	return views.Flash{}
}
