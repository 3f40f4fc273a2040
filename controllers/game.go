package controllers

import (
	game_constants "Guessify/constants/game"
	models "Guessify/models/postgres"
	"Guessify/services/games"
	"Guessify/services/tracks"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CreateGameRequest is the POST /games payload.
type CreateGameRequest struct {
	Name        string `json:"name" binding:"required"`
	Password    string `json:"password"`
	Slots       int    `json:"slots"`
	PlaylistURL string `json:"playlistUrl" binding:"required"`
}

// @Summary Create a game
// @Description Resolves the playlist and persists a new WAITING game; an unresolvable playlist aborts creation
// @Tags games
// @Accept json
// @Produce json
// @Success 201 {object} postgres.Game
// @Failure 400 {object} map[string]interface{}
// @Router /games [post]
func CreateGame(store *games.Store, provider *tracks.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateGameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid game settings"})
			return
		}
		if req.Slots <= 0 {
			req.Slots = game_constants.DefaultSlots
		}

		trackList := provider.Resolve(req.PlaylistURL)
		if len(trackList) == 0 {
			log.Printf("[CREATE-ERROR] No playable tracks for playlist %s", req.PlaylistURL)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Couldn't load tracks"})
			return
		}

		game := &models.Game{
			Name:        req.Name,
			IsPrivate:   req.Password != "",
			Password:    req.Password,
			PlaylistURL: req.PlaylistURL,
			Slots:       req.Slots,
			Status:      game_constants.StatusWaiting,
		}
		game.SetTrackQueue(trackList)

		if err := store.Create(game); err != nil {
			if errors.Is(err, games.ErrNameTaken) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "This game name already exists."})
				return
			}
			log.Printf("[CREATE-ERROR] Error persisting game: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		c.JSON(http.StatusCreated, game)
	}
}

// @Summary List all games
// @Tags games
// @Produce json
// @Success 200 {array} postgres.Game
// @Router /games [get]
func GetAllGames(store *games.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := store.FindAll()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		c.JSON(http.StatusOK, all)
	}
}

// @Summary Fetch one game
// @Tags games
// @Produce json
// @Success 200 {object} postgres.Game
// @Failure 404 {object} map[string]interface{}
// @Router /games/{id} [get]
func GetGame(store *games.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		game, err := store.FindByID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if game == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
			return
		}
		c.JSON(http.StatusOK, game)
	}
}
