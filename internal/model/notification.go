package model

// Notification is embedded as an array element on user and admin documents;
// there is no standalone notifications collection.
type Notification struct {
	Title string `bson:"title" json:"title" validate:"required,min=1"`
	Date  string `bson:"date" json:"date" validate:"required,calendardate"`
	Desc  string `bson:"desc" json:"desc" validate:"required,min=1"`
}
