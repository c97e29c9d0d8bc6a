package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"orderdesk/internal"
	"orderdesk/internal/pipeline"
)

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>Order Status</title></head>
<body>
<h3>Order status</h3>
<form id="f">
  <input name="question" placeholder="Your question" size="40">
  <input name="order_id" placeholder="Order number">
  <input name="email" placeholder="E-mail">
  <button>Ask</button>
</form>
<pre id="out"></pre>
<script>
document.getElementById('f').onsubmit = async (e) => {
  e.preventDefault();
  const data = Object.fromEntries(new FormData(e.target));
  const res = await fetch('/ask', {method: 'POST', headers: {'Content-Type': 'application/json'}, body: JSON.stringify(data)});
  const body = await res.json();
  document.getElementById('out').textContent = body.reply || body.error || '';
};
</script>
</body>
</html>`

type Server struct {
	svc *pipeline.Service
	log *zap.Logger
}

func New(svc *pipeline.Service, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{svc: svc, log: log}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Post("/ask", s.handleAsk)

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(indexHTML))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req internal.AskRequest
	// A missing or malformed body is treated as an empty request; the
	// orchestrator answers it with a guidance prompt.
	_ = json.NewDecoder(r.Body).Decode(&req)

	reply, err := s.svc.Answer(r.Context(), req)
	if err != nil {
		s.log.Error("order table load failed", zap.String("requestId", middleware.GetReqID(r.Context())), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, internal.AskResponse{Error: fmt.Sprintf("Data loading error: %v", err)})
		return
	}

	writeJSON(w, http.StatusOK, internal.AskResponse{Reply: reply})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
