package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(h *Handlers, metrics http.Handler) http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.Health).Methods("GET")
	r.HandleFunc("/webhook/github", h.GitHubWebhook).Methods("POST")
	r.HandleFunc("/deliveries/{id}", h.GetDelivery).Methods("GET")
	if metrics != nil {
		r.Handle("/metrics", metrics).Methods("GET")
	}
	return r
}
