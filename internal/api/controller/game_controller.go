package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"matchpoint/internal/api/models"
	"matchpoint/internal/api/response"
	"matchpoint/internal/api/service"
)

// GameController handles the HTTP side of the presentation contract.
type GameController struct {
	gameService service.GameService
}

// NewGameController creates a new GameController.
func NewGameController(gameService service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// CreateSession handles POST /api/sessions.
func (gc *GameController) CreateSession(c *gin.Context) {
	id, snap, err := gc.gameService.CreateSession(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, models.SessionResponse{SessionID: id, State: snap})
}

// State handles GET /api/sessions/:id.
func (gc *GameController) State(c *gin.Context) {
	id := c.Param("id")

	snap, err := gc.gameService.State(c.Request.Context(), id)
	if err != nil {
		gc.fail(c, err)
		return
	}

	response.Success(c, models.SessionResponse{SessionID: id, State: snap})
}

// SubmitMove handles POST /api/sessions/:id/move. An illegal move is not an
// HTTP error: the reply carries accepted=false and the unchanged state.
func (gc *GameController) SubmitMove(c *gin.Context) {
	var req models.MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	snap, accepted, err := gc.gameService.SubmitMove(c.Request.Context(), c.Param("id"), *req.Index)
	if err != nil {
		gc.fail(c, err)
		return
	}

	response.Success(c, models.MoveResponse{Accepted: accepted, State: snap})
}

// NewRound handles POST /api/sessions/:id/new-round.
func (gc *GameController) NewRound(c *gin.Context) {
	id := c.Param("id")

	snap, err := gc.gameService.StartNewRound(c.Request.Context(), id)
	if err != nil {
		gc.fail(c, err)
		return
	}

	response.Success(c, models.SessionResponse{SessionID: id, State: snap})
}

// NewMatch handles POST /api/sessions/:id/new-match.
func (gc *GameController) NewMatch(c *gin.Context) {
	id := c.Param("id")

	snap, err := gc.gameService.StartNewMatch(c.Request.Context(), id)
	if err != nil {
		gc.fail(c, err)
		return
	}

	response.Success(c, models.SessionResponse{SessionID: id, State: snap})
}

// Results handles GET /api/sessions/:id/results.
func (gc *GameController) Results(c *gin.Context) {
	id := c.Param("id")

	results, err := gc.gameService.Results(c.Request.Context(), id)
	if err != nil {
		gc.fail(c, err)
		return
	}

	response.Success(c, models.ResultsResponse{SessionID: id, Results: results})
}

func (gc *GameController) fail(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		response.Error(c, http.StatusNotFound, err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, err.Error())
}
