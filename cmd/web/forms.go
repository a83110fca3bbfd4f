package main

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/schema"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"playoh/internal/playoh"
	"playoh/internal/session"
)

const maxFormBytes = 1_048_578 // 1mb

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

// readForm parses the posted form into dst.
func readForm(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return err
	}
	return decoder.Decode(dst, r.PostForm)
}

// client is the API client acting for the request's device.
func (app *application) client(r *http.Request) *playoh.Client {
	return app.api.WithSession(session.FromContext(r.Context()))
}

// refParam decodes the {ref} URL parameter into a record id.
func (app *application) refParam(r *http.Request) (int64, error) {
	return app.ids.Decode(chi.URLParam(r, "ref"))
}

// batch runs a screen's loads concurrently. A failing load does not stop the
// others; Wait returns every failure combined.
type batch struct {
	g   errgroup.Group
	mu  sync.Mutex
	err error
}

func (b *batch) Go(fn func() error) {
	b.g.Go(func() error {
		if err := fn(); err != nil {
			b.mu.Lock()
			b.err = multierr.Append(b.err, err)
			b.mu.Unlock()
		}
		return nil
	})
}

func (b *batch) Wait() error {
	b.g.Wait()
	return b.err
}
