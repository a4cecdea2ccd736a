// Package debughttp serves the introspection accessors of a container over HTTP.
package debughttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/a-peyrard/lazydi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// ErrIntrospectionDisabled is returned when the container was not built with lazydi.WithIntrospection(true).
var ErrIntrospectionDisabled = errors.New("introspection is disabled on this container")

type (
	injectableView struct {
		Name       string `json:"name"`
		HasFactory bool   `json:"hasFactory"`
		Injected   bool   `json:"injected"`
		State      string `json:"state"`
		Value      string `json:"value,omitempty"`
		Error      string `json:"error,omitempty"`
	}

	errorView struct {
		Kind  string `json:"kind,omitempty"`
		Name  string `json:"name,omitempty"`
		Error string `json:"error"`
	}

	handler struct {
		introspector *lazydi.Introspector
	}
)

// NewHandler exposes:
//
//	GET /injectables         the content of the store, nothing is resolved
//	GET /injectables/{name}  resolves name and describes it
func NewHandler(container *lazydi.Container) (http.Handler, error) {
	introspector, ok := container.Introspect()
	if !ok {
		return nil, ErrIntrospectionDisabled
	}
	h := &handler{introspector: introspector}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/injectables", h.list)
	r.Get("/injectables/{name}", h.get)

	return r, nil
}

func (h *handler) list(w http.ResponseWriter, _ *http.Request) {
	infos := h.introspector.Injectables()
	views := make([]injectableView, len(infos))
	for i, info := range infos {
		views[i] = toView(info)
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	_, err := h.introspector.Getter(name).Get()
	if err != nil {
		status := http.StatusInternalServerError
		view := errorView{Name: name, Error: err.Error()}
		var own *lazydi.Error
		if errors.As(err, &own) {
			view.Kind = own.Kind.String()
			view.Name = own.Name
			if own.Kind == lazydi.NotRegistered {
				status = http.StatusNotFound
			}
		}
		writeJSON(w, status, view)
		return
	}

	info, _ := h.introspector.Injectable(name)
	writeJSON(w, http.StatusOK, toView(info))
}

func toView(info lazydi.InjectableInfo) injectableView {
	view := injectableView{
		Name:       info.Name,
		HasFactory: info.HasFactory,
		Injected:   info.Injected,
		State:      info.State.String(),
	}
	if info.State == lazydi.Resolved {
		view.Value = fmt.Sprintf("%v", info.Value)
	}
	if info.Err != nil {
		view.Error = info.Err.Error()
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
