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

func newUserFixture() (*MockDocumentRepository, *MockNotifier, UserService) {
	repo := new(MockDocumentRepository)
	notifier := new(MockNotifier)
	jwt := auth.NewJWTService("test-secret")
	crud := NewCrudService(repo, jwt)
	return repo, notifier, NewUserService(repo, crud, jwt, notifier)
}

func TestUserService_Register(t *testing.T) {
	oid := primitive.NewObjectID()

	input := model.UserInput{
		Name:     "Sam",
		Email:    "sam@example.com",
		Password: "Sup3r@secret",
		Joined:   "2026-01-15",
	}

	t.Run("duplicate email", func(t *testing.T) {
		repo, _, svc := newUserFixture()
		repo.On("Count", mock.Anything, "users", bson.M{"email": input.Email}).Return(int64(1), nil)

		_, err := svc.Register(context.Background(), input)

		assert.ErrorIs(t, err, apperrors.ErrDuplicateEmail)
		repo.AssertNotCalled(t, "InsertOne", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stores hash, defaults and returns a volunteer token", func(t *testing.T) {
		repo, _, svc := newUserFixture()
		repo.On("Count", mock.Anything, "users", bson.M{"email": input.Email}).Return(int64(0), nil)

		var storedUser model.User
		repo.On("InsertOne", mock.Anything, "users", mock.MatchedBy(func(doc any) bool {
			u, ok := doc.(model.User)
			if ok {
				storedUser = u
			}
			return ok
		})).Return(oid, nil)

		res, err := svc.Register(context.Background(), input)

		assert.NoError(t, err)
		assert.Equal(t, oid.Hex(), res.ID)
		assert.NotEmpty(t, res.Token)

		assert.NotEqual(t, input.Password, storedUser.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedUser.Password), []byte(input.Password)))
		assert.Equal(t, model.RoleVolunteer, storedUser.Type)
		assert.True(t, storedUser.Approved)
		assert.Equal(t, []string{}, storedUser.Tags)
		assert.Equal(t, []model.Notification{}, storedUser.Notifications)

		claims, err := auth.NewJWTService("test-secret").Verify(res.Token)
		assert.NoError(t, err)
		assert.Equal(t, model.RoleVolunteer, claims.Role)
	})

	t.Run("organizer registrations start unapproved", func(t *testing.T) {
		repo, _, svc := newUserFixture()
		org := input
		org.Type = model.RoleOrganizer
		repo.On("Count", mock.Anything, "users", bson.M{"email": org.Email}).Return(int64(0), nil)

		var storedUser model.User
		repo.On("InsertOne", mock.Anything, "users", mock.MatchedBy(func(doc any) bool {
			u, ok := doc.(model.User)
			if ok {
				storedUser = u
			}
			return ok
		})).Return(oid, nil)

		_, err := svc.Register(context.Background(), org)

		assert.NoError(t, err)
		assert.False(t, storedUser.Approved)
	})
}

func TestUserService_Update(t *testing.T) {
	oid := primitive.NewObjectID()
	accountDoc := bson.M{"_id": oid, "email": "sam@example.com"}

	t.Run("plain field patch triggers no mail", func(t *testing.T) {
		repo, notifier, svc := newUserFixture()
		desc := "new description"
		repo.On("UpdateOne", mock.Anything, "users", bson.M{"_id": oid},
			bson.M{"$set": bson.M{"desc": desc}}).Return(int64(1), int64(1), nil)

		res, err := svc.Update(context.Background(), oid.Hex(), model.UserPatch{Desc: &desc})

		assert.NoError(t, err)
		assert.Empty(t, res.Token)
		notifier.AssertNotCalled(t, "SendApproval", mock.Anything)
		notifier.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything)
	})

	t.Run("type change forces the approval flag", func(t *testing.T) {
		repo, notifier, svc := newUserFixture()
		organizer := model.RoleOrganizer
		repo.On("UpdateOne", mock.Anything, "users", bson.M{"_id": oid},
			bson.M{"$set": bson.M{"type": organizer, "approved": false}}).
			Return(int64(1), int64(1), nil)

		res, err := svc.Update(context.Background(), oid.Hex(), model.UserPatch{Type: &organizer})

		assert.NoError(t, err)
		assert.NotEmpty(t, res.Token, "promotion to organizer mints a new token")

		claims, err := auth.NewJWTService("test-secret").Verify(res.Token)
		assert.NoError(t, err)
		assert.Equal(t, model.RoleOrganizer, claims.Role)
		notifier.AssertNotCalled(t, "SendApproval", mock.Anything)
	})

	t.Run("switching back to volunteer re-approves without a token", func(t *testing.T) {
		repo, notifier, svc := newUserFixture()
		volunteer := model.RoleVolunteer
		repo.On("UpdateOne", mock.Anything, "users", bson.M{"_id": oid},
			bson.M{"$set": bson.M{"type": volunteer, "approved": true}}).
			Return(int64(1), int64(1), nil)
		repo.On("FindOne", mock.Anything, "users", bson.M{"_id": oid}).Return(accountDoc, nil)
		notifier.On("SendApproval", "sam@example.com").Return()

		res, err := svc.Update(context.Background(), oid.Hex(), model.UserPatch{Type: &volunteer})

		assert.NoError(t, err)
		assert.Empty(t, res.Token)
		notifier.AssertExpectations(t)
	})

	t.Run("approval patch mails the account", func(t *testing.T) {
		repo, notifier, svc := newUserFixture()
		approved := true
		repo.On("UpdateOne", mock.Anything, "users", bson.M{"_id": oid},
			bson.M{"$set": bson.M{"approved": approved}}).Return(int64(1), int64(1), nil)
		repo.On("FindOne", mock.Anything, "users", bson.M{"_id": oid}).Return(accountDoc, nil)
		notifier.On("SendApproval", "sam@example.com").Return()

		_, err := svc.Update(context.Background(), oid.Hex(), model.UserPatch{Approved: &approved})

		assert.NoError(t, err)
		notifier.AssertExpectations(t)
	})

	t.Run("newly appended notification is mailed", func(t *testing.T) {
		repo, notifier, svc := newUserFixture()
		items := []model.Notification{
			{Title: "Old", Date: "2026-01-01", Desc: "already seen"},
			{Title: "Shift moved", Date: "2026-02-01", Desc: "new start time"},
		}
		repo.On("UpdateOne", mock.Anything, "users", bson.M{"_id": oid},
			bson.M{"$set": bson.M{"notifications": items}}).Return(int64(1), int64(1), nil)
		repo.On("FindOne", mock.Anything, "users", bson.M{"_id": oid}).Return(accountDoc, nil)
		notifier.On("SendNotification", "sam@example.com", items[1]).Return()

		_, err := svc.Update(context.Background(), oid.Hex(), model.UserPatch{Notifications: &items})

		assert.NoError(t, err)
		notifier.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo, _, svc := newUserFixture()
		name := "x"
		repo.On("UpdateOne", mock.Anything, "users", bson.M{"_id": oid},
			mock.Anything).Return(int64(0), int64(0), nil)

		_, err := svc.Update(context.Background(), oid.Hex(), model.UserPatch{Name: &name})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
