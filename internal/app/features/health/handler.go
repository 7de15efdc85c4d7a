package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/resourcehub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client      *mongo.Client
	APIEndpoint string
	Log         *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client, the
// configured resources API endpoint and logger.
func NewHandler(client *mongo.Client, apiEndpoint string, logger *zap.Logger) *Handler {
	return &Handler{
		Client:      client,
		APIEndpoint: apiEndpoint,
		Log:         logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	API      string `json:"api"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "api":"https://…/api" }
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "api":"…", "message":"Database unavailable", "error":"…"}
//
// The resources API is reported, not probed; a browse failure is logged by
// the browse handlers themselves.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
		API:      h.APIEndpoint,
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	_ = json.NewEncoder(w).Encode(resp)
}
