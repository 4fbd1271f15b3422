package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kahgin/fika-core/internal/models/request_models"
	"github.com/kahgin/fika-core/internal/models/response_models"
	"github.com/kahgin/fika-core/pkg/utils"
)

type stubItineraryService struct {
	selection *response_models.SelectionResponse
	itinerary *response_models.ItineraryResponse
	err       error
}

func (s *stubItineraryService) BuildSelection(_ context.Context, req *request_models.ItineraryRequest) (*response_models.SelectionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.selection, s.err
}

func (s *stubItineraryService) BuildItinerary(_ context.Context, req *request_models.ItineraryRequest) (*response_models.ItineraryResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.itinerary, s.err
}

func planRouter(svc *stubItineraryService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	controller := NewItineraryController(svc)
	r.POST("/api/v1/itineraries", controller.BuildItinerary)
	r.POST("/api/v1/itineraries/selection", controller.BuildSelection)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validPayload() request_models.ItineraryRequest {
	return request_models.ItineraryRequest{
		Destination:    "singapore",
		NumDays:        3,
		BudgetTier:     request_models.BudgetTierSensible,
		Pacing:         request_models.PacingBalanced,
		InterestThemes: []string{"nature"},
	}
}

func TestBuildItineraryEndpoint(t *testing.T) {
	svc := &stubItineraryService{
		itinerary: &response_models.ItineraryResponse{
			Status: "ok",
			Days:   []response_models.DayPlan{{Date: "2026-03-02"}},
		},
	}
	w := postJSON(t, planRouter(svc), "/api/v1/itineraries", validPayload())

	require.Equal(t, http.StatusOK, w.Code)
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestBuildSelectionEndpoint(t *testing.T) {
	svc := &stubItineraryService{
		selection: &response_models.SelectionResponse{
			Status: "ok",
			Meta:   response_models.SelectionMeta{CountIn: 50, CountOut: 30},
		},
	}
	w := postJSON(t, planRouter(svc), "/api/v1/itineraries/selection", validPayload())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBuildItineraryEndpointInvalidRequest(t *testing.T) {
	svc := &stubItineraryService{}
	payload := validPayload()
	payload.Pacing = "frantic"

	w := postJSON(t, planRouter(svc), "/api/v1/itineraries", payload)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
}

func TestBuildItineraryEndpointInsufficientCandidates(t *testing.T) {
	svc := &stubItineraryService{err: utils.ErrInsufficientCandidates}
	w := postJSON(t, planRouter(svc), "/api/v1/itineraries", validPayload())
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestBuildItineraryEndpointOracleDown(t *testing.T) {
	svc := &stubItineraryService{err: utils.ErrOracleUnavailable}
	w := postJSON(t, planRouter(svc), "/api/v1/itineraries", validPayload())
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestBuildItineraryEndpointBadJSON(t *testing.T) {
	r := planRouter(&stubItineraryService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/itineraries", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
