package route

import (
	"net/http"

	"github.com/suffixlab/suffixd/log"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

func configRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", getConfigs)
	r.Patch("/", patchConfigs)
	return r
}

type configSchema struct {
	LogLevel *log.LogLevel `json:"log-level"`
}

func getConfigs(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, render.M{
		"log-level": log.Level().String(),
	})
}

func patchConfigs(w http.ResponseWriter, r *http.Request) {
	general := &configSchema{}
	if err := render.DecodeJSON(r.Body, general); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrBadRequest)
		return
	}

	if general.LogLevel != nil {
		log.SetLevel(*general.LogLevel)
	}
	render.NoContent(w, r)
}
