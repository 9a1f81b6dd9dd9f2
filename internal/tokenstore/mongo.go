package tokenstore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/oauth2"
)

type tokenDocument struct {
	ID           string    `bson:"_id"`
	AccessToken  string    `bson:"access_token"`
	RefreshToken string    `bson:"refresh_token,omitempty"`
	TokenType    string    `bson:"token_type,omitempty"`
	Expiry       time.Time `bson:"expiry,omitempty"`
}

// MongoStore implements Store on a MongoDB collection, one document per user.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a MongoStore. collectionName defaults to "tokens"
// if empty.
func NewMongoStore(db *mongo.Database, collectionName string) *MongoStore {
	if collectionName == "" {
		collectionName = "tokens"
	}
	return &MongoStore{collection: db.Collection(collectionName)}
}

func (s *MongoStore) Get(ctx context.Context, userID string) (*oauth2.Token, error) {
	var doc tokenDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tokenstore: find token %q: %w", userID, err)
	}
	return &oauth2.Token{
		AccessToken:  doc.AccessToken,
		RefreshToken: doc.RefreshToken,
		TokenType:    doc.TokenType,
		Expiry:       doc.Expiry,
	}, nil
}

func (s *MongoStore) Set(ctx context.Context, userID string, token *oauth2.Token) error {
	doc := tokenDocument{
		ID:           userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		Expiry:       token.Expiry,
	}

	filter := bson.M{"_id": userID}
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)

	if _, err := s.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("tokenstore: upsert token %q: %w", userID, err)
	}
	return nil
}

func (s *MongoStore) Identities(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1}).SetSort(bson.M{"_id": 1})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("tokenstore: list identities: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("tokenstore: decode identity: %w", err)
		}
		ids = append(ids, doc.ID)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("tokenstore: iterate identities: %w", err)
	}
	return ids, nil
}
