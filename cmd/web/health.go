package main

import (
	"encoding/json"
	"net/http"

	appconf "playoh/internal/config"
)

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	data := map[string]string{
		"status":  "ok",
		"env":     app.config.env,
		"version": appconf.AppVersion,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		app.logger.Errorw("write health response", "error", err.Error())
	}
}
