package route

import (
	"net/http"

	"github.com/suffixlab/suffixd/provider"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

var suffixProvider *provider.SuffixProvider

// SetProvider wires the rule list provider the /provider endpoints act on
func SetProvider(sp *provider.SuffixProvider) {
	suffixProvider = sp
}

func providerRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", getProvider)
	r.Put("/", updateProvider)
	return r
}

func getProvider(w http.ResponseWriter, r *http.Request) {
	if suffixProvider == nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, newError("provider is not configured"))
		return
	}
	render.JSON(w, r, suffixProvider)
}

func updateProvider(w http.ResponseWriter, r *http.Request) {
	if suffixProvider == nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, newError("provider is not configured"))
		return
	}
	if err := suffixProvider.ForceRefresh(); err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, newError(err.Error()))
		return
	}
	render.NoContent(w, r)
}
