package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"volunflow/internal/auth"
	apperrors "volunflow/internal/errors"
	"volunflow/internal/model"
)

func newAuthFixture() (*MockDocumentRepository, *MockNotifier, AuthService) {
	repo := new(MockDocumentRepository)
	notifier := new(MockNotifier)
	jwt := auth.NewJWTService("test-secret")
	return repo, notifier, NewAuthService(repo, jwt, notifier)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Login(t *testing.T) {
	oid := primitive.NewObjectID()
	password := "Sup3r@secret"

	tests := []struct {
		name          string
		collection    string
		doc           bson.M
		findErr       error
		password      string
		expectedError error
	}{
		{
			name:          "rejected collection",
			collection:    "events",
			expectedError: apperrors.ErrBadCollection,
		},
		{
			name:          "unknown account",
			collection:    "users",
			findErr:       apperrors.ErrNotFound,
			password:      password,
			expectedError: apperrors.ErrNotFound,
		},
		{
			name:          "account without stored hash",
			collection:    "users",
			doc:           bson.M{"_id": oid, "email": "a@b.c", "type": "volunteer", "approved": true},
			password:      password,
			expectedError: apperrors.ErrMissingPassword,
		},
		{
			name:       "unapproved organizer",
			collection: "users",
			doc: bson.M{"_id": oid, "email": "a@b.c", "type": "organizer",
				"approved": false, "password": "some-hash"},
			password:      password,
			expectedError: apperrors.ErrNotApproved,
		},
		{
			name:       "wrong password",
			collection: "users",
			doc: bson.M{"_id": oid, "email": "a@b.c", "type": "volunteer",
				"approved": true, "password": "$2a$04$invalidhashinvalidhashinvalidha"},
			password:      password,
			expectedError: apperrors.ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := newAuthFixture()
			if tt.doc != nil || tt.findErr != nil {
				repo.On("FindOne", mock.Anything, tt.collection, bson.M{"email": "a@b.c"}).
					Return(tt.doc, tt.findErr)
			}

			_, err := svc.Login(context.Background(), tt.collection, "a@b.c", "", tt.password)
			assert.ErrorIs(t, err, tt.expectedError)
		})
	}

	t.Run("successful login returns id, token and role", func(t *testing.T) {
		repo, _, svc := newAuthFixture()
		doc := bson.M{"_id": oid, "email": "a@b.c", "type": "volunteer",
			"approved": true, "password": hashOf(t, password)}
		repo.On("FindOne", mock.Anything, "users", bson.M{"email": "a@b.c"}).Return(doc, nil)

		res, err := svc.Login(context.Background(), "users", "a@b.c", "", password)

		assert.NoError(t, err)
		assert.Equal(t, oid.Hex(), res.UserID)
		assert.Equal(t, model.RoleVolunteer, res.Role)

		claims, err := auth.NewJWTService("test-secret").Verify(res.Token)
		assert.NoError(t, err)
		assert.Equal(t, model.RoleVolunteer, claims.Role)
	})

	t.Run("admin collection skips the approval gate", func(t *testing.T) {
		repo, _, svc := newAuthFixture()
		doc := bson.M{"_id": oid, "email": "a@b.c", "password": hashOf(t, password)}
		repo.On("FindOne", mock.Anything, "admin", bson.M{"email": "a@b.c"}).Return(doc, nil)

		res, err := svc.Login(context.Background(), "admin", "a@b.c", "", password)

		assert.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, res.Role)
	})

	t.Run("lookup by id", func(t *testing.T) {
		repo, _, svc := newAuthFixture()
		doc := bson.M{"_id": oid, "email": "a@b.c", "type": "volunteer",
			"approved": true, "password": hashOf(t, password)}
		repo.On("FindOne", mock.Anything, "users", bson.M{"_id": oid}).Return(doc, nil)

		_, err := svc.Login(context.Background(), "users", "", oid.Hex(), password)
		assert.NoError(t, err)
	})

	t.Run("malformed id", func(t *testing.T) {
		_, _, svc := newAuthFixture()
		_, err := svc.Login(context.Background(), "users", "", "nope", password)
		assert.ErrorIs(t, err, apperrors.ErrInvalidID)
	})
}

func TestAuthService_GenerateOTP(t *testing.T) {
	oid := primitive.NewObjectID()

	t.Run("stores a four digit code and mails it", func(t *testing.T) {
		repo, notifier, svc := newAuthFixture()
		filter := bson.M{"email": "a@b.c"}
		repo.On("FindOne", mock.Anything, "users", filter).
			Return(bson.M{"_id": oid, "email": "a@b.c"}, nil)

		var stored int
		repo.On("UpdateOne", mock.Anything, "users", filter,
			mock.MatchedBy(func(update bson.M) bool {
				set, ok := update["$set"].(bson.M)
				if !ok {
					return false
				}
				stored, ok = set["otp"].(int)
				return ok && stored >= 1000 && stored <= 9999
			})).Return(int64(1), int64(1), nil)
		notifier.On("SendOTP", "a@b.c", mock.AnythingOfType("int")).Return()

		err := svc.GenerateOTP(context.Background(), "users", "a@b.c", "")

		assert.NoError(t, err)
		notifier.AssertCalled(t, "SendOTP", "a@b.c", stored)
	})

	t.Run("unknown account", func(t *testing.T) {
		repo, notifier, svc := newAuthFixture()
		repo.On("FindOne", mock.Anything, "users", bson.M{"email": "a@b.c"}).
			Return(nil, apperrors.ErrNotFound)

		err := svc.GenerateOTP(context.Background(), "users", "a@b.c", "")

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		notifier.AssertNotCalled(t, "SendOTP", mock.Anything, mock.Anything)
	})
}

func TestAuthService_VerifyOTP(t *testing.T) {
	oid := primitive.NewObjectID()
	filter := bson.M{"email": "a@b.c"}

	t.Run("match without clear is repeatable", func(t *testing.T) {
		repo, _, svc := newAuthFixture()
		repo.On("FindOne", mock.Anything, "users", filter).
			Return(bson.M{"_id": oid, "email": "a@b.c", "otp": int32(4321)}, nil)

		assert.NoError(t, svc.VerifyOTP(context.Background(), "users", "a@b.c", "", 4321, false))
		assert.NoError(t, svc.VerifyOTP(context.Background(), "users", "a@b.c", "", 4321, false))
		repo.AssertNotCalled(t, "UpdateOne", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("match with clear unsets the code", func(t *testing.T) {
		repo, _, svc := newAuthFixture()
		repo.On("FindOne", mock.Anything, "users", filter).
			Return(bson.M{"_id": oid, "email": "a@b.c", "otp": int32(4321)}, nil)
		repo.On("UpdateOne", mock.Anything, "users", filter,
			bson.M{"$unset": bson.M{"otp": ""}}).Return(int64(1), int64(1), nil)

		assert.NoError(t, svc.VerifyOTP(context.Background(), "users", "a@b.c", "", 4321, true))
		repo.AssertExpectations(t)
	})

	t.Run("mismatch", func(t *testing.T) {
		repo, _, svc := newAuthFixture()
		repo.On("FindOne", mock.Anything, "users", filter).
			Return(bson.M{"_id": oid, "email": "a@b.c", "otp": int32(4321)}, nil)

		err := svc.VerifyOTP(context.Background(), "users", "a@b.c", "", 1111, false)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)
	})

	t.Run("no code stored", func(t *testing.T) {
		repo, _, svc := newAuthFixture()
		repo.On("FindOne", mock.Anything, "users", filter).
			Return(bson.M{"_id": oid, "email": "a@b.c"}, nil)

		err := svc.VerifyOTP(context.Background(), "users", "a@b.c", "", 4321, false)
		assert.ErrorIs(t, err, apperrors.ErrInvalidOTP)
	})
}

func TestNewOTPRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		otp := newOTP()
		assert.GreaterOrEqual(t, otp, 1000)
		assert.LessOrEqual(t, otp, 9999)
	}
}
