package httpapi

import (
	"net/http"
	"time"
)

// NewServer monta o http.Server da API. Sem WriteTimeout: /ws mantém conexões longas.
func NewServer(port string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
