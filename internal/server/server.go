package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/tournevent/rating/internal/quote"
	"github.com/tournevent/rating/pkg/rating"
)

// Server is the HTTP server for the rating service.
type Server struct {
	port   int
	quotes *quote.Service
	logger *otelzap.Logger
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, quotes *quote.Service, logger *otelzap.Logger) *Server {
	return &Server{
		port:   cfg.Port,
		quotes: quotes,
		logger: logger,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/shop/carrier_rate_shipment", s.handleRateShipment).Methods(http.MethodPost)
	r.HandleFunc("/shop/update_carrier", s.handleUpdateCarrier).Methods(http.MethodPost)
	return r
}

// Run starts the HTTP server and blocks until context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.Int("port", s.port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type quoteRequest struct {
	OrderID   string `json:"order_id"`
	CarrierID string `json:"carrier_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRateShipment(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeQuoteRequest(w, r)
	if !ok {
		return
	}

	result, err := s.quotes.Quote(r.Context(), req.OrderID, req.CarrierID)
	if err != nil {
		s.writeQuoteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleUpdateCarrier(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeQuoteRequest(w, r)
	if !ok {
		return
	}

	result, err := s.quotes.ApplyCarrier(r.Context(), req.OrderID, req.CarrierID)
	if err != nil {
		s.writeQuoteError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) decodeQuoteRequest(w http.ResponseWriter, r *http.Request) (quoteRequest, bool) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON: " + err.Error()})
		return req, false
	}
	if req.OrderID == "" || req.CarrierID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "order_id and carrier_id are required"})
		return req, false
	}
	return req, true
}

func (s *Server) writeQuoteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, rating.ErrOrderNotFound), errors.Is(err, rating.ErrCarrierNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Ctx(r.Context()).Error("quote failed", zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
