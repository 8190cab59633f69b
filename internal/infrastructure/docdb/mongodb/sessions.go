// Package mongodb provides the sessions collection implementation.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/interviewly/interview-service/internal/domain/models"
)

// SessionsCollectionName is the name of the sessions collection.
const SessionsCollectionName = "sessions"

// sessionDoc pairs the store-native ObjectID with the domain session
// document. The hex form of the ID is what crosses the adapter boundary.
type sessionDoc struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Session models.Session     `bson:",inline"`
}

// SessionsCollection implements the docdb.SessionStore interface for MongoDB.
type SessionsCollection struct {
	collection *mongo.Collection
}

// NewSessionsCollection creates a new sessions collection wrapper.
func NewSessionsCollection(db *mongo.Database) *SessionsCollection {
	return &SessionsCollection{
		collection: db.Collection(SessionsCollectionName),
	}
}

// Insert stores a new session document and returns its hex identifier.
func (c *SessionsCollection) Insert(ctx context.Context, session *models.Session) (string, error) {
	result, err := c.collection.InsertOne(ctx, sessionDoc{Session: *session})
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", result.InsertedID)
	}
	return oid.Hex(), nil
}

// FindByID retrieves a session by its hex identifier. Malformed or unknown
// identifiers yield (nil, nil), not an error.
func (c *SessionsCollection) FindByID(ctx context.Context, id string) (*models.Session, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var doc sessionDoc
	if err := c.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session := doc.Session
	session.ID = doc.ID.Hex()
	return &session, nil
}

// UpdateFields applies a dot-path $set merge to the session document.
func (c *SessionsCollection) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	set := bson.M{}
	for path, value := range fields {
		set[path] = value
	}

	result, err := c.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("failed to update session fields: %w", err)
	}
	return result.ModifiedCount, nil
}

// AppendToArray pushes a value onto the array at the given dot path.
func (c *SessionsCollection) AppendToArray(ctx context.Context, id string, path string, value interface{}) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	result, err := c.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$push": bson.M{path: value}})
	if err != nil {
		return 0, fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return result.ModifiedCount, nil
}

// FindActive returns all sessions whose end_time is unset.
func (c *SessionsCollection) FindActive(ctx context.Context) ([]*models.Session, error) {
	cursor, err := c.collection.Find(ctx, bson.M{"end_time": nil})
	if err != nil {
		return nil, fmt.Errorf("failed to find active sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*models.Session
	for cursor.Next(ctx) {
		var doc sessionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode session: %w", err)
		}
		session := doc.Session
		session.ID = doc.ID.Hex()
		sessions = append(sessions, &session)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error while listing active sessions: %w", err)
	}
	return sessions, nil
}

// DeleteMany removes sessions matching the filter.
func (c *SessionsCollection) DeleteMany(ctx context.Context, filter map[string]interface{}) (int64, error) {
	bsonFilter := bson.M{}
	for k, v := range filter {
		bsonFilter[k] = v
	}

	result, err := c.collection.DeleteMany(ctx, bsonFilter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	return result.DeletedCount, nil
}

// EnsureIndexes creates the indexes the session queries rely on.
func (c *SessionsCollection) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "candidate_id", Value: 1}}},
		{Keys: bson.D{{Key: "end_time", Value: 1}}},
		{Keys: bson.D{{Key: "current_phase", Value: 1}}},
	}

	if _, err := c.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}
