// Package http exposes the read-only introspection surface of a machine
// over HTTP. Dispatch is deliberately not reachable from here; the server
// observes, it never drives.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/domain"
)

// Server serves machine introspection and, optionally, the state of one
// attached instance.
type Server struct {
	machine  *espalier.Machine
	instance *espalier.Instance
}

type Option func(*Server)

// WithInstance attaches a running instance whose current state is served
// under /instance/state.
func WithInstance(inst *espalier.Instance) Option {
	return func(s *Server) {
		s.instance = inst
	}
}

// NewHandler builds the introspection router for a machine.
func NewHandler(machine *espalier.Machine, opts ...Option) http.Handler {
	s := &Server{machine: machine}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/machine", s.handleMachine)
	r.Get("/machine/transitions", s.handleTransitions)
	r.Get("/machine/graph", s.handleGraph)
	r.Get("/instance/state", s.handleInstanceState)
	r.Handle("/metrics", promhttp.Handler())
	return r
}

type machineResponse struct {
	Name    string   `json:"name"`
	Initial string   `json:"initial"`
	States  []string `json:"states"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

func (s *Server) handleMachine(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, machineResponse{
		Name:    s.machine.Name(),
		Initial: s.machine.InitialStateName(),
		States:  s.machine.StateNames(),
		Inputs:  s.machine.InputNames(),
		Outputs: s.machine.OutputNames(),
	})
}

func (s *Server) handleTransitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.machine.Transitions())
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	transitions := s.machine.Transitions()
	initial := s.machine.InitialStateName()

	switch format := r.URL.Query().Get("format"); format {
	case "", "mermaid":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(graph.Mermaid(transitions, initial)))
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		w.Write([]byte(graph.Dot(s.machine.Name(), transitions, initial)))
	default:
		http.Error(w, "unsupported format: "+format, http.StatusBadRequest)
	}
}

type instanceStateResponse struct {
	State string `json:"state"`
	Token string `json:"token,omitempty"`
}

func (s *Server) handleInstanceState(w http.ResponseWriter, r *http.Request) {
	if s.instance == nil {
		http.Error(w, "no instance attached", http.StatusNotFound)
		return
	}

	resp := instanceStateResponse{State: s.instance.StateName()}
	token, err := s.instance.Export()
	if err == nil {
		resp.Token = token
	} else {
		var unser *domain.UnserializableStateError
		if !errors.As(err, &unser) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		// Token-less state: serve the name alone.
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
