package team

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/merasports/hub/internal/middleware"
	"github.com/merasports/hub/pkg/responses"
)

type TeamController struct {
	repo TeamRepository
}

func NewTeamController(repo TeamRepository) *TeamController {
	return &TeamController{repo: repo}
}

// @Summary      List my teams
// @Description  Teams captained by the current player.
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} responses.SuccessResponse
// @Router       /teams/my-teams [get]
func (tc *TeamController) MyTeams(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	teams, err := tc.repo.GetTeamsByCaptain(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("fetching teams failed")
		responses.InternalServerError(c, "Failed to fetch teams")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", gin.H{"teams": teams})
}

// @Summary      Look up a player by player id
// @Description  Resolves a display id like P100007 for team building.
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Param        playerId path string true "Player display id"
// @Success      200 {object} responses.SuccessResponse
// @Failure      404 {object} responses.ErrorResponse
// @Router       /teams/player-lookup/{playerId} [get]
func (tc *TeamController) PlayerLookup(c *gin.Context) {
	playerID := c.Param("playerId")

	player, err := tc.repo.FindPlayerByPlayerID(playerID)
	if err != nil {
		responses.InternalServerError(c, "Lookup failed")
		return
	}
	if player == nil {
		responses.NotFound(c, "Player ID")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "", gin.H{"player": gin.H{
		"id":        player.ID,
		"player_id": player.PlayerID(),
		"name":      player.Name,
		"age":       player.Age,
		"mobile":    player.Mobile,
		"aadhaar":   player.Aadhaar,
	}})
}

// @Summary      Create a team
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        team body CreateTeamRequest true "Team details"
// @Success      201 {object} responses.SuccessResponse
// @Router       /teams [post]
func (tc *TeamController) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	team := &Team{
		Name:      req.Name,
		Sport:     req.Sport,
		CaptainID: userID,
		Members:   req.Members,
	}
	if captain, err := tc.repo.GetUser(userID); err == nil && captain != nil {
		team.CaptainName = captain.Name
		team.CaptainMobile = captain.Mobile
	}

	if err := tc.repo.CreateTeam(team); err != nil {
		log.Error().Err(err).Msg("team creation failed")
		responses.InternalServerError(c, "Failed to create team")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Team created", gin.H{"team": team})
}

// @Summary      Update a team
// @Description  Captain-only.
// @Tags         Teams
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Param        team body UpdateTeamRequest true "Team details"
// @Success      200 {object} responses.SuccessResponse
// @Failure      403 {object} responses.ErrorResponse
// @Router       /teams/{id} [put]
func (tc *TeamController) Update(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid input: "+err.Error())
		return
	}

	team.Name = req.Name
	team.Sport = req.Sport
	team.Members = req.Members
	if err := tc.repo.UpdateTeam(team); err != nil {
		responses.InternalServerError(c, "Failed to update team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team updated", gin.H{"team": team})
}

// @Summary      Delete a team
// @Description  Captain-only.
// @Tags         Teams
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Team ID"
// @Success      200 {object} responses.SuccessResponse
// @Router       /teams/{id} [delete]
func (tc *TeamController) Delete(c *gin.Context) {
	team, ok := tc.ownedTeam(c)
	if !ok {
		return
	}
	if err := tc.repo.DeleteTeam(team.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete team")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Team deleted successfully", nil)
}

// ownedTeam loads the :id team and enforces captain ownership.
func (tc *TeamController) ownedTeam(c *gin.Context) (*Team, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		responses.SendError(c, http.StatusUnauthorized, "Unauthorized")
		return nil, false
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid team id")
		return nil, false
	}

	team, err := tc.repo.GetTeamByID(uint(id))
	if err != nil {
		responses.InternalServerError(c, "Failed to fetch team")
		return nil, false
	}
	if team == nil {
		responses.NotFound(c, "Team")
		return nil, false
	}
	if team.CaptainID != userID {
		responses.SendError(c, http.StatusForbidden, "You are not authorized to manage this team")
		return nil, false
	}
	return team, true
}
