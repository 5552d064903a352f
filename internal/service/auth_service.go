package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"volunflow/internal/auth"
	apperrors "volunflow/internal/errors"
	"volunflow/internal/mail"
	"volunflow/internal/model"
	"volunflow/internal/repository"
)

// accountCollections is the allow-list of collections credential operations
// may touch. Anything else is rejected before a query is built.
var accountCollections = map[string]bool{
	"users": true,
	"admin": true,
}

// AccountCollection reports whether credential flows may operate on the
// named collection.
func AccountCollection(name string) bool {
	return accountCollections[name]
}

// LoginResult is the successful login response body.
type LoginResult struct {
	UserID string     `json:"user_id"`
	Token  string     `json:"token"`
	Role   model.Role `json:"role"`
}

// AuthService implements the credential flows: password login and the
// one-time-code generate/verify pair. All three locate the account by email
// or, failing that, by document id.
type AuthService interface {
	Login(ctx context.Context, collection, email, id, password string) (*LoginResult, error)
	GenerateOTP(ctx context.Context, collection, email, id string) error
	VerifyOTP(ctx context.Context, collection, email, id string, otp int, clear bool) error
}

type authService struct {
	repo     repository.DocumentRepository
	jwt      *auth.JWTService
	notifier mail.Notifier
}

// NewAuthService wires the credential flows.
func NewAuthService(repo repository.DocumentRepository, jwt *auth.JWTService, notifier mail.Notifier) AuthService {
	return &authService{repo: repo, jwt: jwt, notifier: notifier}
}

// accountFilter builds the lookup filter, preferring email over id.
func accountFilter(email, id string) (bson.M, error) {
	if email != "" {
		return bson.M{"email": email}, nil
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrInvalidID
	}
	return bson.M{"_id": oid}, nil
}

// Login checks the password against the stored hash and gates unapproved
// accounts. Admin documents are never gated; they carry no approval flag.
func (s *authService) Login(ctx context.Context, collection, email, id, password string) (*LoginResult, error) {
	if !AccountCollection(collection) {
		return nil, apperrors.ErrBadCollection
	}
	filter, err := accountFilter(email, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.repo.FindOne(ctx, collection, filter)
	if err != nil {
		return nil, err
	}

	hash, _ := doc["password"].(string)
	if hash == "" {
		return nil, apperrors.ErrMissingPassword
	}

	role := model.RoleAdmin
	if collection == "users" {
		t, _ := doc["type"].(string)
		role = model.Role(t)
		approved, _ := doc["approved"].(bool)
		if role != model.RoleAdmin && !approved {
			return nil, apperrors.ErrNotApproved
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidPassword
	}

	oid, _ := doc["_id"].(primitive.ObjectID)
	token, err := s.jwt.Generate(oid.Hex(), role)
	if err != nil {
		return nil, err
	}

	return &LoginResult{UserID: oid.Hex(), Token: token, Role: role}, nil
}

// GenerateOTP stores a fresh four-digit code on the account, replacing any
// earlier one, and emails it to the account's address.
func (s *authService) GenerateOTP(ctx context.Context, collection, email, id string) error {
	if !AccountCollection(collection) {
		return apperrors.ErrBadCollection
	}
	filter, err := accountFilter(email, id)
	if err != nil {
		return err
	}

	doc, err := s.repo.FindOne(ctx, collection, filter)
	if err != nil {
		return err
	}

	otp := newOTP()
	matched, _, err := s.repo.UpdateOne(ctx, collection, filter, bson.M{"$set": bson.M{"otp": otp}})
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperrors.ErrNotFound
	}

	if to, ok := doc["email"].(string); ok && to != "" {
		s.notifier.SendOTP(to, otp)
	}
	return nil
}

// VerifyOTP compares the submitted code with the stored one and, when clear
// is set, consumes it. Without clear the check is repeatable.
func (s *authService) VerifyOTP(ctx context.Context, collection, email, id string, otp int, clear bool) error {
	if !AccountCollection(collection) {
		return apperrors.ErrBadCollection
	}
	filter, err := accountFilter(email, id)
	if err != nil {
		return err
	}

	doc, err := s.repo.FindOne(ctx, collection, filter)
	if err != nil {
		return err
	}

	stored, ok := numericField(doc["otp"])
	if !ok || stored != otp {
		return apperrors.ErrInvalidOTP
	}

	if clear {
		if _, _, err := s.repo.UpdateOne(ctx, collection, filter, bson.M{"$unset": bson.M{"otp": ""}}); err != nil {
			return err
		}
	}
	return nil
}

// newOTP draws a four-digit code in [1000, 9999] from the system CSPRNG.
func newOTP() int {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return 1000 + int(binary.BigEndian.Uint64(b[:])%9000)
}

// numericField normalizes the BSON numeric types a stored code may decode as.
func numericField(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
