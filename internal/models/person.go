package models

import "strings"

// PersonName is the natural key shared by actor_ref and director_ref rows.
// A nil MiddleName only matches rows stored without a middle name.
type PersonName struct {
	FirstName  string  `gorm:"column:first_name;not null" json:"first_name"`
	MiddleName *string `gorm:"column:middle_name" json:"middle_name,omitempty"`
	LastName   string  `gorm:"column:last_name;not null" json:"last_name"`
}

func (n PersonName) String() string {
	if n.MiddleName == nil {
		return n.FirstName + " " + n.LastName
	}
	return strings.Join([]string{n.FirstName, *n.MiddleName, n.LastName}, " ")
}

type Actor struct {
	ID uint `gorm:"column:actor_id;primaryKey" json:"id"`
	PersonName
}

func (Actor) TableName() string {
	return "actor_ref"
}

type Director struct {
	ID uint `gorm:"column:director_id;primaryKey" json:"id"`
	PersonName
}

func (Director) TableName() string {
	return "director_ref"
}

type MovieActor struct {
	MovieID uint `gorm:"column:movie_id;not null;index" json:"movie_id"`
	ActorID uint `gorm:"column:actor_id;not null;index" json:"actor_id"`
}

func (MovieActor) TableName() string {
	return "movie_actor"
}

type MovieDirector struct {
	MovieID    uint `gorm:"column:movie_id;not null;index" json:"movie_id"`
	DirectorID uint `gorm:"column:director_id;not null;index" json:"director_id"`
}

func (MovieDirector) TableName() string {
	return "movie_director"
}

func (n PersonName) HasMiddle() bool {
	return n.MiddleName != nil
}
