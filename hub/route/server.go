package route

import (
	"encoding/json"
	"net/http"
	"strings"

	C "github.com/suffixlab/suffixd/constant"
	"github.com/suffixlab/suffixd/log"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/sagernet/cors"
)

var (
	serverSecret = ""
	serverAddr   = ""
)

type Log struct {
	Type    string `json:"type"`
	Payload string `json:"payload"`
}

func Start(addr string, secret string) {
	if serverAddr != "" {
		return
	}

	serverAddr = addr
	serverSecret = secret

	r := chi.NewRouter()
	corsM := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		MaxAge:         300,
	})
	r.Use(corsM.Handler)
	r.Group(func(r chi.Router) {
		r.Use(authentication)

		r.Get("/", hello)
		r.Get("/logs", getLogs)
		r.Get("/version", version)
		r.Mount("/domain", domainRouter())
		r.Mount("/provider", providerRouter())
		r.Mount("/configs", configRouter())
	})

	log.Infoln("RESTful API listening at: %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Errorln("External controller error: %s", err.Error())
	}
}

func authentication(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if serverSecret == "" {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		bearer, token, found := strings.Cut(header, " ")

		hasInvalidHeader := bearer != "Bearer"
		hasInvalidSecret := !found || token != serverSecret
		if hasInvalidHeader || hasInvalidSecret {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

func hello(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, render.M{"hello": C.Name})
}

func version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, render.M{"version": C.Version})
}

func getLogs(w http.ResponseWriter, r *http.Request) {
	levelText := r.URL.Query().Get("level")
	if levelText == "" {
		levelText = "info"
	}

	level, ok := log.LogLevelMapping[levelText]
	if !ok {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrBadRequest)
		return
	}

	sub := log.Subscribe()
	defer log.UnSubscribe(sub)

	w.Header().Set("Content-Type", "application/json")
	render.Status(r, http.StatusOK)

	for elm := range sub {
		if elm.LogLevel < level {
			continue
		}

		if err := json.NewEncoder(w).Encode(Log{
			Type:    elm.Type(),
			Payload: elm.Payload,
		}); err != nil {
			break
		}
		if flusher, ok := w.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}
