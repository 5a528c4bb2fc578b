package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Sash0G/PlamiItaly/internal/dataset"
	"github.com/Sash0G/PlamiItaly/internal/quiz"
)

// Mount wires the engine's action surface onto the router.
func Mount(r chi.Router, eng *quiz.Engine) {
	r.Get("/pool", PoolHandler(eng))
	r.Post("/session", StartSessionHandler(eng))
	r.Post("/session/submit", SubmitHandler(eng))
	r.Post("/session/retry", RetryHandler(eng))
	r.Post("/reset", ResetHandler(eng))
}

func PoolHandler(eng *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]int{
			"total":   eng.PoolSize(),
			"tracked": eng.TrackedCount(),
		})
	}
}

func StartSessionHandler(eng *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Count int `json:"count"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.Count == 0 {
			req.Count = 10
		}
		writeJSON(w, eng.Start(req.Count))
	}
}

func SubmitHandler(eng *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answers map[string]dataset.OptionID `json:"answers"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		res, err := eng.Submit(r.Context(), req.Answers)
		if err != nil {
			if errors.Is(err, quiz.ErrNoSession) {
				http.Error(w, err.Error(), 409)
				return
			}
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, res)
	}
}

func RetryHandler(eng *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := eng.Retry()
		if err != nil {
			if errors.Is(err, quiz.ErrNothingToRetry) {
				http.Error(w, err.Error(), 409)
				return
			}
			http.Error(w, err.Error(), 400)
			return
		}
		writeJSON(w, view)
	}
}

// ResetHandler erases persisted history. Destructive, so the body must
// carry an explicit confirmation.
func ResetHandler(eng *quiz.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Confirm bool `json:"confirm"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if !req.Confirm {
			http.Error(w, "confirm required", 400)
			return
		}
		if err := eng.Reset(r.Context()); err != nil {
			http.Error(w, err.Error(), 500)
			return
		}
		w.WriteHeader(204)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
