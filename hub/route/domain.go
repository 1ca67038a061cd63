package route

import (
	"errors"
	"net/http"

	"github.com/suffixlab/suffixd/component/psl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/samber/lo"
)

var defaultResolver *psl.Resolver

// SetResolver wires the resolver the /domain endpoints serve from
func SetResolver(resolver *psl.Resolver) {
	defaultResolver = resolver
}

func domainRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/", queryDomain)
	return r
}

type domainResponse struct {
	Host              string `json:"host"`
	PublicSuffix      string `json:"publicSuffix"`
	RegistrableDomain string `json:"registrableDomain,omitempty"`
	Rule              string `json:"rule"`
	Kind              string `json:"kind"`
}

func queryDomain(w http.ResponseWriter, r *http.Request) {
	if defaultResolver == nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, newError("resolver is not configured"))
		return
	}

	name, _ := lo.Coalesce(r.URL.Query().Get("name"), r.URL.Query().Get("domain"))
	if name == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newError("name is required"))
		return
	}

	info, err := defaultResolver.Lookup(name)
	switch {
	case errors.Is(err, psl.ErrNotReady):
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, ErrNotReady)
		return
	case errors.Is(err, psl.ErrInvalidHost):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, newError(err.Error()))
		return
	case err != nil:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, newError(err.Error()))
		return
	}

	render.JSON(w, r, domainResponse{
		Host:              info.Host,
		PublicSuffix:      info.PublicSuffix,
		RegistrableDomain: info.RegistrableDomain,
		Rule:              info.Rule.Text(),
		Kind:              info.Rule.Kind().String(),
	})
}
