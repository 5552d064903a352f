package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"volunflow/internal/auth"
	apperrors "volunflow/internal/errors"
	"volunflow/internal/model"
	"volunflow/internal/repository"
)

// Page is the envelope every paginated read returns.
type Page struct {
	Documents  []bson.M `json:"documents"`
	Total      int64    `json:"total"`
	Page       int64    `json:"page"`
	TotalPages int64    `json:"totalPages"`
}

// CreateResult is the outcome of a create, optionally bundling a token for
// the new identity.
type CreateResult struct {
	ID    string
	Token string
}

// CrudService is the resource-agnostic dispatch layer: create, paginated
// read, merge-patch update, and delete against any collection. Validation
// happens before documents reach it; only validated data is persisted.
type CrudService interface {
	Create(ctx context.Context, collection string, doc any, issueRole model.Role) (*CreateResult, error)
	ReadPage(ctx context.Context, collection string, filter, projection bson.M, page, limit int64) (*Page, error)
	Update(ctx context.Context, collection, id string, set bson.M) error
	Delete(ctx context.Context, collection, id string) error
}

type crudService struct {
	repo repository.DocumentRepository
	jwt  *auth.JWTService
}

// NewCrudService builds the generic dispatcher.
func NewCrudService(repo repository.DocumentRepository, jwt *auth.JWTService) CrudService {
	return &crudService{repo: repo, jwt: jwt}
}

// Create inserts a validated document and, when issueRole is set, issues a
// token for the generated id.
func (s *crudService) Create(ctx context.Context, collection string, doc any, issueRole model.Role) (*CreateResult, error) {
	id, err := s.repo.InsertOne(ctx, collection, doc)
	if err != nil {
		return nil, err
	}

	res := &CreateResult{ID: id.Hex()}
	if issueRole != "" {
		token, err := s.jwt.Generate(res.ID, issueRole)
		if err != nil {
			return nil, err
		}
		res.Token = token
	}
	return res, nil
}

// ReadPage returns the requested window plus a total counted against the
// same filter. The count and the window are separate queries and can race
// under concurrent writes; that is accepted, not hidden.
func (s *crudService) ReadPage(ctx context.Context, collection string, filter, projection bson.M, page, limit int64) (*Page, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	skip := (page - 1) * limit

	docs, err := s.repo.Find(ctx, collection, filter, projection, skip, limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, collection, filter)
	if err != nil {
		return nil, err
	}

	return &Page{
		Documents:  docs,
		Total:      total,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// Update applies a merge-patch: only the given fields are written, the rest
// of the document is untouched. A match that changes nothing is still a
// success.
func (s *crudService) Update(ctx context.Context, collection, id string, set bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrInvalidID
	}

	// Mongo rejects an empty $set; an empty patch degrades to an
	// existence check so unknown ids still 404.
	if len(set) == 0 {
		_, err := s.repo.FindOne(ctx, collection, bson.M{"_id": oid})
		return err
	}

	matched, _, err := s.repo.UpdateOne(ctx, collection, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes one document by id.
func (s *crudService) Delete(ctx context.Context, collection, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrInvalidID
	}

	deleted, err := s.repo.DeleteOne(ctx, collection, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
