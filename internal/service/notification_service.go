package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "volunflow/internal/errors"
	"volunflow/internal/model"
	"volunflow/internal/repository"
)

// NotificationService reads and replaces the notification list embedded on
// an account document. The list is replaced whole; append semantics are the
// caller's job.
type NotificationService interface {
	List(ctx context.Context, collection, id string) ([]model.Notification, error)
	Replace(ctx context.Context, collection, id string, items []model.Notification) error
}

type notificationService struct {
	repo repository.DocumentRepository
}

// NewNotificationService wires the embedded-list operations.
func NewNotificationService(repo repository.DocumentRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) List(ctx context.Context, collection, id string) ([]model.Notification, error) {
	if !AccountCollection(collection) {
		return nil, apperrors.ErrBadCollection
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}

	doc, err := s.repo.FindOne(ctx, collection, bson.M{"_id": oid})
	if err != nil {
		return nil, err
	}

	return decodeNotifications(doc["notifications"])
}

func (s *notificationService) Replace(ctx context.Context, collection, id string, items []model.Notification) error {
	if !AccountCollection(collection) {
		return apperrors.ErrBadCollection
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrInvalidID
	}
	if items == nil {
		items = []model.Notification{}
	}

	matched, _, err := s.repo.UpdateOne(ctx, collection, bson.M{"_id": oid}, bson.M{"$set": bson.M{"notifications": items}})
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// decodeNotifications converts the raw BSON array into typed entries via a
// marshal round-trip.
func decodeNotifications(raw any) ([]model.Notification, error) {
	if raw == nil {
		return []model.Notification{}, nil
	}
	wire, err := bson.Marshal(bson.M{"items": raw})
	if err != nil {
		return nil, err
	}
	var wrapper struct {
		Items []model.Notification `bson:"items"`
	}
	if err := bson.Unmarshal(wire, &wrapper); err != nil {
		return nil, err
	}
	if wrapper.Items == nil {
		wrapper.Items = []model.Notification{}
	}
	return wrapper.Items, nil
}
