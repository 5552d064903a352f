package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"volunflow/internal/model"
)

// MockDocumentRepository is a mock implementation of DocumentRepository.
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) InsertOne(ctx context.Context, collection string, doc any) (primitive.ObjectID, error) {
	args := m.Called(ctx, collection, doc)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockDocumentRepository) FindOne(ctx context.Context, collection string, filter bson.M) (bson.M, error) {
	args := m.Called(ctx, collection, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(bson.M), args.Error(1)
}

func (m *MockDocumentRepository) Find(ctx context.Context, collection string, filter, projection bson.M, skip, limit int64) ([]bson.M, error) {
	args := m.Called(ctx, collection, filter, projection, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]bson.M), args.Error(1)
}

func (m *MockDocumentRepository) UpdateOne(ctx context.Context, collection string, filter, update bson.M) (int64, int64, error) {
	args := m.Called(ctx, collection, filter, update)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockDocumentRepository) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	args := m.Called(ctx, collection, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	args := m.Called(ctx, collection, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockNotifier records outbound mail without sending anything.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendOTP(email string, otp int) {
	m.Called(email, otp)
}

func (m *MockNotifier) SendApproval(email string) {
	m.Called(email)
}

func (m *MockNotifier) SendNotification(email string, n model.Notification) {
	m.Called(email, n)
}

func (m *MockNotifier) SendContact(name, email, number, message string) {
	m.Called(name, email, number, message)
}
