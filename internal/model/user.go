package model

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is an aggregate score embedded on a user document.
type Rating struct {
	Value float64 `bson:"value" json:"value"`
	Count int     `bson:"count" json:"count"`
}

// User is a stored user or admin document. Password holds the bcrypt hash
// and is never serialized to JSON.
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Password      string             `bson:"password" json:"-"`
	Desc          string             `bson:"desc" json:"desc"`
	Tags          []string           `bson:"tags" json:"tags"`
	Notifications []Notification     `bson:"notifications" json:"notifications"`
	Type          Role               `bson:"type" json:"type"`
	Media         []string           `bson:"media" json:"media"`
	Rating        Rating             `bson:"rating" json:"rating"`
	Joined        string             `bson:"joined" json:"joined"`
	Approved      bool               `bson:"approved" json:"approved"`
	OTP           *int               `bson:"otp,omitempty" json:"-"`
}

// UserInput is the registration payload. Password rules apply to the raw
// password; the service hashes it before the document is built.
type UserInput struct {
	Name          string         `json:"name"`
	Email         string         `json:"email" validate:"required,email"`
	Password      string         `json:"password" validate:"required,min=8,password"`
	Desc          string         `json:"desc"`
	Tags          []string       `json:"tags"`
	Notifications []Notification `json:"notifications" validate:"omitempty,dive"`
	Type          Role           `json:"type" validate:"omitempty,oneof=organizer volunteer"`
	Media         []string       `json:"media"`
	Rating        *Rating        `json:"rating"`
	Joined        string         `json:"joined" validate:"required,calendardate"`
	Approved      *bool          `json:"approved"`
}

// Document applies schema defaults and returns the storable user.
// Approval is forced from the account type: organizers always start in
// pending review regardless of what the payload claimed.
func (in UserInput) Document(passwordHash string) User {
	u := User{
		Name:          in.Name,
		Email:         in.Email,
		Password:      passwordHash,
		Desc:          in.Desc,
		Tags:          in.Tags,
		Notifications: in.Notifications,
		Type:          in.Type,
		Media:         in.Media,
		Joined:        in.Joined,
	}
	if u.Tags == nil {
		u.Tags = []string{}
	}
	if u.Notifications == nil {
		u.Notifications = []Notification{}
	}
	if u.Media == nil {
		u.Media = []string{}
	}
	if u.Type == "" {
		u.Type = RoleVolunteer
	}
	if in.Rating != nil {
		u.Rating = *in.Rating
	}
	u.Approved = u.Type != RoleOrganizer
	return u
}

// UserPatch is the merge-patch payload for user updates. There is no
// password field: the hash can only be set through registration.
type UserPatch struct {
	Name          *string         `json:"name"`
	Email         *string         `json:"email" validate:"omitempty,email"`
	Desc          *string         `json:"desc"`
	Tags          *[]string       `json:"tags"`
	Notifications *[]Notification `json:"notifications" validate:"omitempty,dive"`
	Type          *Role           `json:"type" validate:"omitempty,oneof=organizer volunteer"`
	Media         *[]string       `json:"media"`
	Rating        *Rating         `json:"rating"`
	Joined        *string         `json:"joined" validate:"omitempty,calendardate"`
	Approved      *bool           `json:"approved"`
}

// SetFields returns only the fields present in the patch, ready for a $set.
func (p UserPatch) SetFields() bson.M {
	set := bson.M{}
	if p.Name != nil {
		set["name"] = *p.Name
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Desc != nil {
		set["desc"] = *p.Desc
	}
	if p.Tags != nil {
		set["tags"] = *p.Tags
	}
	if p.Notifications != nil {
		set["notifications"] = *p.Notifications
	}
	if p.Type != nil {
		set["type"] = *p.Type
	}
	if p.Media != nil {
		set["media"] = *p.Media
	}
	if p.Rating != nil {
		set["rating"] = *p.Rating
	}
	if p.Joined != nil {
		set["joined"] = *p.Joined
	}
	if p.Approved != nil {
		set["approved"] = *p.Approved
	}
	return set
}
