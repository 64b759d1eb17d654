package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/etnz/xirr"
)

// solveRequest is the body of /xirr and /npv.
type solveRequest struct {
	Cashflows json.RawMessage `json:"cashflows"`
	Guess     *float64        `json:"guess,omitempty"`
}

// errorResponse is the body of every failed request. Kind is the solver error kind, it is
// empty for malformed requests.
type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type npvResponse struct {
	Rate       float64 `json:"rate"`
	NPV        float64 `json:"npv"`
	Derivative float64 `json:"derivative"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleXIRR(w http.ResponseWriter, r *http.Request) {
	req, cashflows, err := decodeRequest(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	opts := s.opts
	if req.Guess != nil {
		opts = opts.WithGuess(*req.Guess)
	}
	res, err := xirr.Solve(cashflows, opts)
	if err != nil {
		s.writeSolverError(w, err)
		return
	}
	s.log.Debug().
		Str("stage", res.Stage.String()).
		Int("iterations", res.Iterations).
		Str("fallback", res.Fallback).
		Float64("rate", float64(res.Rate)).
		Msg("solved")
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleNPV(w http.ResponseWriter, r *http.Request) {
	rate, err := strconv.ParseFloat(r.URL.Query().Get("rate"), 64)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid rate query parameter: %v", err)})
		return
	}
	if !(rate > -1) || math.IsInf(rate, 0) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("rate %g must be finite and greater than -1", rate)})
		return
	}
	_, cashflows, err := decodeRequest(r)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	series, err := xirr.Normalize(cashflows)
	if err != nil {
		s.writeSolverError(w, err)
		return
	}

	resp := npvResponse{Rate: rate, NPV: series.NPV(rate), Derivative: series.Derivative(rate)}
	if !finite(resp.NPV) || !finite(resp.Derivative) {
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: fmt.Sprintf("NPV is not finite at rate %g", rate), Kind: "not_finite"})
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// decodeRequest reads the request body and its cash flows.
func decodeRequest(r *http.Request) (solveRequest, []xirr.Cashflow, error) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, nil, fmt.Errorf("invalid request body: %w", err)
	}
	if len(req.Cashflows) == 0 {
		return req, nil, fmt.Errorf("invalid request body: missing \"cashflows\"")
	}
	cashflows, err := xirr.DecodeCashflows(bytes.NewReader(req.Cashflows))
	if err != nil {
		return req, nil, err
	}
	return req, cashflows, nil
}

func (s *Server) writeSolverError(w http.ResponseWriter, err error) {
	kind := xirr.ErrorKind(err)
	s.log.Debug().Err(err).Str("kind", kind).Msg("no rate")
	s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Kind: kind})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("Failed to write response")
	}
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
