package routes

import (
	"movie-loader/internal/handlers"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App, movieHandler *handlers.MovieHandler, importHandler *handlers.ImportHandler) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	imports := v1.Group("/imports")
	{
		imports.Post("/", importHandler.RunImport)
		imports.Get("/last", importHandler.GetLastImport)
		imports.Get("/presign", importHandler.GetPresignedURL)
	}

	// Read-only views of the loaded data
	movies := v1.Group("/movies")
	{
		movies.Get("/", movieHandler.GetAllMovies)
		movies.Get("/lookup", movieHandler.LookupMovie)
		movies.Get("/:id", movieHandler.GetMovieByID)
	}

	v1.Get("/stats", movieHandler.GetStats)
}
