package model

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a stored event document. Volunteers holds the ids of users who
// joined; Approved the subset the organizer accepted.
type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Tags        []string           `bson:"tags" json:"tags"`
	Media       []string           `bson:"media" json:"media"`
	Desc        string             `bson:"desc" json:"desc"`
	Date        string             `bson:"date" json:"date"`
	Pricing     string             `bson:"pricing" json:"pricing"`
	Location    string             `bson:"location" json:"location"`
	OrganizerID string             `bson:"organizer_id" json:"organizer_id"`
	Volunteers  []string           `bson:"volunteers" json:"volunteers"`
	Approved    []string           `bson:"approved" json:"approved"`
}

// EventInput is the event creation payload.
type EventInput struct {
	Title       string   `json:"title" validate:"required"`
	Tags        []string `json:"tags"`
	Media       []string `json:"media"`
	Desc        string   `json:"desc" validate:"required"`
	Date        string   `json:"date" validate:"required,calendardate"`
	Pricing     string   `json:"pricing"`
	Location    string   `json:"location" validate:"required"`
	OrganizerID string   `json:"organizer_id" validate:"required"`
	Volunteers  []string `json:"volunteers"`
	Approved    []string `json:"approved"`
}

// Document applies schema defaults and returns the storable event.
func (in EventInput) Document() Event {
	e := Event{
		Title:       in.Title,
		Tags:        in.Tags,
		Media:       in.Media,
		Desc:        in.Desc,
		Date:        in.Date,
		Pricing:     in.Pricing,
		Location:    in.Location,
		OrganizerID: in.OrganizerID,
		Volunteers:  in.Volunteers,
		Approved:    in.Approved,
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if e.Media == nil {
		e.Media = []string{}
	}
	if e.Volunteers == nil {
		e.Volunteers = []string{}
	}
	if e.Approved == nil {
		e.Approved = []string{}
	}
	if e.Pricing == "" {
		e.Pricing = "Free"
	}
	return e
}

// EventPatch is the merge-patch payload for event updates.
type EventPatch struct {
	Title       *string   `json:"title"`
	Tags        *[]string `json:"tags"`
	Media       *[]string `json:"media"`
	Desc        *string   `json:"desc"`
	Date        *string   `json:"date" validate:"omitempty,calendardate"`
	Pricing     *string   `json:"pricing"`
	Location    *string   `json:"location"`
	OrganizerID *string   `json:"organizer_id"`
	Volunteers  *[]string `json:"volunteers"`
	Approved    *[]string `json:"approved"`
}

// SetFields returns only the fields present in the patch, ready for a $set.
func (p EventPatch) SetFields() bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Tags != nil {
		set["tags"] = *p.Tags
	}
	if p.Media != nil {
		set["media"] = *p.Media
	}
	if p.Desc != nil {
		set["desc"] = *p.Desc
	}
	if p.Date != nil {
		set["date"] = *p.Date
	}
	if p.Pricing != nil {
		set["pricing"] = *p.Pricing
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.OrganizerID != nil {
		set["organizer_id"] = *p.OrganizerID
	}
	if p.Volunteers != nil {
		set["volunteers"] = *p.Volunteers
	}
	if p.Approved != nil {
		set["approved"] = *p.Approved
	}
	return set
}
