package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"volunflow/internal/auth"
	apperrors "volunflow/internal/errors"
	"volunflow/internal/mail"
	"volunflow/internal/model"
	"volunflow/internal/repository"
)

const usersCollection = "users"

// UpdateResult reports a user update's side products: a token when the
// account was promoted to organizer by this patch.
type UpdateResult struct {
	Token string
}

// UserService layers account semantics on top of the generic dispatcher:
// unique emails, password hashing, approval gating, and the email side
// effects a patch can trigger.
type UserService interface {
	Register(ctx context.Context, in model.UserInput) (*CreateResult, error)
	Update(ctx context.Context, id string, patch model.UserPatch) (*UpdateResult, error)
}

type userService struct {
	repo     repository.DocumentRepository
	crud     CrudService
	jwt      *auth.JWTService
	notifier mail.Notifier
}

// NewUserService wires the account flows.
func NewUserService(repo repository.DocumentRepository, crud CrudService, jwt *auth.JWTService, notifier mail.Notifier) UserService {
	return &userService{repo: repo, crud: crud, jwt: jwt, notifier: notifier}
}

// Register stores a new account with a hashed password and returns its id
// plus a volunteer-scoped token. Organizers get their role token later, on
// approval. The email uniqueness check is check-then-insert; a concurrent
// duplicate slips through without a unique index, which the schema does not
// demand.
func (s *userService) Register(ctx context.Context, in model.UserInput) (*CreateResult, error) {
	existing, err := s.repo.Count(ctx, usersCollection, bson.M{"email": in.Email})
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.crud.Create(ctx, usersCollection, in.Document(string(hash)), model.RoleVolunteer)
}

// Update applies a validated merge-patch and fires the side effects it
// implies: a role change re-derives the approval flag, a newly appended
// notification is mailed out, an approval is announced, and a promotion to
// organizer mints a fresh token for the caller to adopt.
func (s *userService) Update(ctx context.Context, id string, patch model.UserPatch) (*UpdateResult, error) {
	if patch.Type != nil {
		approved := *patch.Type != model.RoleOrganizer
		patch.Approved = &approved
	}

	if err := s.crud.Update(ctx, usersCollection, id, patch.SetFields()); err != nil {
		return nil, err
	}

	res := &UpdateResult{}
	if patch.Type != nil && *patch.Type == model.RoleOrganizer {
		token, err := s.jwt.Generate(id, model.RoleOrganizer)
		if err != nil {
			return nil, err
		}
		res.Token = token
	}

	notify := patch.Notifications != nil && len(*patch.Notifications) > 0
	approve := patch.Approved != nil && *patch.Approved
	if !notify && !approve {
		return res, nil
	}

	email, err := s.accountEmail(ctx, id)
	if err != nil || email == "" {
		// The patch already landed; a missing address only mutes the
		// announcement.
		return res, nil
	}
	if notify {
		latest := (*patch.Notifications)[len(*patch.Notifications)-1]
		s.notifier.SendNotification(email, latest)
	}
	if approve {
		s.notifier.SendApproval(email)
	}
	return res, nil
}

func (s *userService) accountEmail(ctx context.Context, id string) (string, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", apperrors.ErrInvalidID
	}
	doc, err := s.repo.FindOne(ctx, usersCollection, bson.M{"_id": oid})
	if err != nil {
		return "", err
	}
	email, _ := doc["email"].(string)
	return email, nil
}
