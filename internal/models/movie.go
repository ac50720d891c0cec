package models

type Movie struct {
	ID              uint     `gorm:"column:movie_id;primaryKey" json:"id" example:"1"`
	Title           string   `gorm:"column:movie_title;not null;index" json:"title" example:"Her"`
	Description     string   `gorm:"column:movie_description;type:text" json:"description"`
	ReleaseYear     int      `gorm:"column:release_year" json:"release_year" example:"2013"`
	RuntimeMinutes  int      `gorm:"column:runtime_minutes" json:"runtime_minutes" example:"126"`
	Rating          float64  `gorm:"column:rating" json:"rating" example:"8.0"`
	Votes           int      `gorm:"column:votes" json:"votes" example:"390531"`
	RevenueMillions *float64 `gorm:"column:revenue_millions" json:"revenue_millions" example:"25.56"`
	Metascore       *int     `gorm:"column:metascore" json:"metascore" example:"90"`
}

func (Movie) TableName() string {
	return "movies"
}

// MovieDetail is a movie together with the reference entities linked to it.
type MovieDetail struct {
	Movie
	Genres    []Genre    `json:"genres"`
	Actors    []Actor    `json:"actors"`
	Directors []Director `json:"directors"`
}

type TableStats struct {
	Movies         int64 `json:"movies" example:"1000"`
	Genres         int64 `json:"genres" example:"20"`
	Actors         int64 `json:"actors" example:"2394"`
	Directors      int64 `json:"directors" example:"644"`
	MovieGenres    int64 `json:"movie_genres" example:"2555"`
	MovieActors    int64 `json:"movie_actors" example:"3999"`
	MovieDirectors int64 `json:"movie_directors" example:"1000"`
}
