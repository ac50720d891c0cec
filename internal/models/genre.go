package models

type Genre struct {
	ID    uint   `gorm:"column:genre_id;primaryKey" json:"id"`
	Label string `gorm:"column:genre;not null;index" json:"genre"`
}

func (Genre) TableName() string {
	return "genre_ref"
}

type MovieGenre struct {
	MovieID uint `gorm:"column:movie_id;not null;index" json:"movie_id"`
	GenreID uint `gorm:"column:genre_id;not null;index" json:"genre_id"`
}

func (MovieGenre) TableName() string {
	return "movie_genre"
}
