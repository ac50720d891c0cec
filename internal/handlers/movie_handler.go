package handlers

import (
	"errors"
	"strconv"

	"movie-loader/internal/repository"
	"movie-loader/internal/services"
	"movie-loader/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type MovieHandler struct {
	service services.MovieService
	logger  *logrus.Logger
}

func NewMovieHandler(service services.MovieService, logger *logrus.Logger) *MovieHandler {
	return &MovieHandler{
		service: service,
		logger:  logger,
	}
}

// GetAllMovies godoc
// @Summary Get all movies
// @Description Get loaded movies with pagination and an optional exact title filter
// @Tags movies
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param title query string false "Exact title"
// @Success 200 {object} utils.StandardResponse "List of movies"
// @Failure 500 {object} utils.StandardResponse "Internal server error"
// @Router /movies [get]
func (h *MovieHandler) GetAllMovies(c *fiber.Ctx) error {
	page, limit := utils.ParsePagination(c)
	title := c.Query("title")

	movies, total, err := h.service.GetAllMovies(c.UserContext(), page, limit, title)
	if err != nil {
		h.logger.WithError(err).WithField("title", title).Error("Failed to list movies")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve movies")
	}

	meta := utils.CreatePaginationMeta(page, limit, total)
	return utils.SuccessWithMetaResponse(c, fiber.StatusOK, "Movies retrieved successfully", movies, meta)
}

// GetMovieByID godoc
// @Summary Get movie by ID
// @Description Get a movie with its genres, actors and directors
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} utils.StandardResponse "Movie details"
// @Failure 400 {object} utils.StandardResponse "Invalid movie ID"
// @Failure 404 {object} utils.StandardResponse "Movie not found"
// @Router /movies/{id} [get]
func (h *MovieHandler) GetMovieByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid movie ID")
	}

	movie, err := h.service.GetMovieByID(c.UserContext(), uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found")
		}
		h.logger.WithError(err).WithField("id", id).Error("Failed to get movie")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie retrieved successfully", movie)
}

// LookupMovie godoc
// @Summary Look up a movie id by title
// @Description Returns the lowest id among movies with this exact title
// @Tags movies
// @Produce json
// @Param title query string true "Exact title"
// @Success 200 {object} utils.StandardResponse
// @Failure 400 {object} utils.StandardResponse
// @Failure 404 {object} utils.StandardResponse
// @Router /movies/lookup [get]
func (h *MovieHandler) LookupMovie(c *fiber.Ctx) error {
	title := c.Query("title")
	if title == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "title is required")
	}

	id, err := h.service.GetMovieIDByTitle(c.UserContext(), title)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Movie not found")
		}
		h.logger.WithError(err).WithField("title", title).Error("Failed to look up movie")
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to look up movie")
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Movie found", fiber.Map{"id": id, "title": title})
}

// GetStats godoc
// @Summary Get table row counts
// @Tags stats
// @Produce json
// @Success 200 {object} utils.StandardResponse
// @Failure 500 {object} utils.StandardResponse
// @Router /stats [get]
func (h *MovieHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.GetStats(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to retrieve stats")
	}
	return utils.SuccessResponse(c, fiber.StatusOK, "Stats retrieved successfully", stats)
}
