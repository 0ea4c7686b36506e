package server

import (
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/abgdnv/inventory/pkg/config"
)

// NewPprofServer serves the runtime profiles on their own listener.
// Handlers are registered on a private mux so nothing leaks onto http.DefaultServeMux.
func NewPprofServer(cfg config.PProfConfig, readHeaderTimeout time.Duration) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
