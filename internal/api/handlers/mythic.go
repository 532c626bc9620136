package handlers

import (
	"errors"
	"net/http"

	"github.com/mttlgn/ParseAnalysisVisualizer/internal/api/response"
	"github.com/mttlgn/ParseAnalysisVisualizer/internal/mythic"
)

// MythicHandler handles Mythic+ season scaling requests.
type MythicHandler struct {
	data *mythic.SeasonData
}

// NewMythicHandler creates a new Mythic+ handler. Data may be nil when
// no scaling CSVs were found at startup.
func NewMythicHandler(data *mythic.SeasonData) *MythicHandler {
	return &MythicHandler{data: data}
}

// GetScaling handles GET /api/v1/mythic/scaling
func (h *MythicHandler) GetScaling(w http.ResponseWriter, _ *http.Request) {
	if h.data == nil {
		response.NotFound(w, errors.New("no mythic+ scaling data loaded"))
		return
	}
	response.Success(w, h.data)
}

// GetScalingDeltas handles GET /api/v1/mythic/scaling/deltas
func (h *MythicHandler) GetScalingDeltas(w http.ResponseWriter, _ *http.Request) {
	if h.data == nil {
		response.NotFound(w, errors.New("no mythic+ scaling data loaded"))
		return
	}
	response.Success(w, map[string]interface{}{
		"base":      mythic.Deltas(h.data.Base),
		"higher_10": mythic.Deltas(h.data.Higher10),
		"higher_25": mythic.Deltas(h.data.Higher25),
	})
}
