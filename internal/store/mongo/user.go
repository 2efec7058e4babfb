package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/canusa-hub/knowledge-nexus/internal/models"
	"github.com/canusa-hub/knowledge-nexus/internal/store"
)

var (
	_ store.UserStore    = (*UserStore)(nil)
	_ store.SessionStore = (*SessionStore)(nil)
)

type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection("users")}
}

func (s *UserStore) Insert(ctx context.Context, user *models.User) error {
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *UserStore) Get(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (s *UserStore) SetRecentlyViewed(ctx context.Context, userID string, articleIDs []string) error {
	result, err := s.coll.UpdateOne(ctx,
		bson.M{"user_id": userID},
		bson.M{"$set": bson.M{"recently_viewed": articleIDs}},
	)
	if err != nil {
		return fmt.Errorf("failed to update recently viewed: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

type SessionStore struct {
	coll *mongo.Collection
}

func NewSessionStore(db *mongo.Database) *SessionStore {
	return &SessionStore{coll: db.Collection("user_sessions")}
}

func (s *SessionStore) Insert(ctx context.Context, session *models.Session) error {
	if _, err := s.coll.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *SessionStore) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	err := s.coll.FindOne(ctx, bson.M{"session_token": token}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) DeleteByToken(ctx context.Context, token string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"session_token": token}); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
