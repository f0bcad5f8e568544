package server

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-analyzer/internal/analysis"
	"github.com/jonathan/career-analyzer/internal/db"
	"github.com/jonathan/career-analyzer/internal/profile"
	"github.com/jonathan/career-analyzer/internal/server/middleware"
	"github.com/jonathan/career-analyzer/internal/types"
)

// maxProfileBytes bounds the request body of analysis endpoints.
const maxProfileBytes = 64 << 10

// sessionHeader lets clients scope cached course results to a session.
const sessionHeader = "X-Session-ID"

// AnalysisResponse is the reply of POST /analyses and the final stream event
type AnalysisResponse struct {
	ID       uuid.UUID             `json:"id"`
	Analysis *types.CareerAnalysis `json:"analysis"`
}

// CreditsResponse is the reply when the caller has no analyses left
type CreditsResponse struct {
	ErrorResponse
	Credits db.CreditStatus `json:"credits"`
}

// caller is the authenticated user of a request
type caller struct {
	userID  uuid.UUID
	role    types.UserRole
	profile *types.CareerProfile
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleQuickAnalysis runs the single-call preview for an anonymous profile
func (s *Server) handleQuickAnalysis(w http.ResponseWriter, r *http.Request) {
	p, err := readProfile(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	quick, err := s.analyzer.QuickAnalyzeCareer(r.Context(), p)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, quick)
}

// handleCreateAnalysis runs a full analysis and stores it
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	c, ok := s.prepareAnalysis(w, r)
	if !ok {
		return
	}

	ctx := analysis.WithSession(r.Context(), sessionID(r, c.userID))
	result, err := s.analyzer.Run(ctx, analysis.RunOptions{Profile: c.profile, Role: c.role})
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	id, err := s.store.SaveAnalysis(ctx, c.userID, c.role, c.profile, result)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, AnalysisResponse{ID: id, Analysis: result})
}

// handleStreamAnalysis runs a full analysis and streams component progress via SSE
func (s *Server) handleStreamAnalysis(w http.ResponseWriter, r *http.Request) {
	c, ok := s.prepareAnalysis(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	ctx := analysis.WithSession(r.Context(), sessionID(r, c.userID))
	result, err := s.analyzer.Run(ctx, analysis.RunOptions{
		Profile: c.profile,
		Role:    c.role,
		OnProgress: func(event analysis.ProgressEvent) {
			if err := sse.WriteEvent(EventComponent, event); err != nil {
				s.logger.Debug("failed to write SSE event", zap.Error(err))
			}
		},
	})
	if err == nil {
		var id uuid.UUID
		if id, err = s.store.SaveAnalysis(ctx, c.userID, c.role, c.profile, result); err == nil {
			_ = sse.WriteComplete(id, result)
			return
		}
	}

	s.logger.Warn("streamed analysis failed", zap.String("role", string(c.role)), zap.Error(err))
	_ = sse.WriteError(err)
}

// handleLatestAnalysis returns the caller's most recent stored analysis
func (s *Server) handleLatestAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	stored, err := s.store.LatestAnalysis(r.Context(), userID)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if stored == nil {
		s.jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: "no analysis found"})
		return
	}
	s.jsonResponse(w, http.StatusOK, stored)
}

// prepareAnalysis authenticates the caller, validates the profile and checks credits.
// It writes the error response itself and reports whether the request may proceed.
func (s *Server) prepareAnalysis(w http.ResponseWriter, r *http.Request) (caller, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return caller{}, false
	}
	role, err := middleware.GetRole(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return caller{}, false
	}

	p, err := readProfile(w, r)
	if err != nil {
		s.errorResponse(w, err)
		return caller{}, false
	}

	credits, err := s.store.CheckCredits(r.Context(), userID, role)
	if errors.Is(err, db.ErrCreditLimitExceeded) {
		s.jsonResponse(w, http.StatusPaymentRequired, CreditsResponse{
			ErrorResponse: errorBody(err),
			Credits:       credits,
		})
		return caller{}, false
	}
	if err != nil {
		s.errorResponse(w, err)
		return caller{}, false
	}

	return caller{userID: userID, role: role, profile: p}, true
}

// readProfile reads a bounded request body and validates it as a career profile
func readProfile(w http.ResponseWriter, r *http.Request) (*types.CareerProfile, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxProfileBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, &ErrValidation{Field: "body", Message: "request body is required"}
	}
	return profile.ValidateJSON(body)
}

func sessionID(r *http.Request, userID uuid.UUID) string {
	if id := strings.TrimSpace(r.Header.Get(sessionHeader)); id != "" {
		return id
	}
	return userID.String()
}
