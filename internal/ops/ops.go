package ops

import (
	"log"
	"net/http"
	"net/http/pprof"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router builds the operational endpoint mux: liveness and pprof. It runs
// on its own port, separate from the analysis API.
func Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/debug/pprof", func(r chi.Router) {
		r.Get("/", pprof.Index)
		r.Get("/cmdline", pprof.Cmdline)
		r.Get("/profile", pprof.Profile)
		r.Get("/symbol", pprof.Symbol)
		r.Get("/trace", pprof.Trace)
		r.Get("/{name}", func(w http.ResponseWriter, req *http.Request) {
			pprof.Handler(chi.URLParam(req, "name")).ServeHTTP(w, req)
		})
	})

	return r
}

// Serve starts the ops server. Intended to run on its own goroutine; a
// listener failure is logged, never fatal to the analysis API.
func Serve(port string) {
	log.Printf("[Ops] Listening on :%s", port)
	if err := http.ListenAndServe(":"+port, Router()); err != nil {
		log.Printf("[Ops] Server stopped: %v", err)
	}
}
