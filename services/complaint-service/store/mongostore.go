package store

import (
	"context"
	"time"

	"complaint-portal/services/complaint-service/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const complaintCollection = "complaints"

// MongoStore backs the complaint list with a MongoDB collection. Upvote
// dedup rides on $addToSet so concurrent requests cannot double-count.
type MongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{db: db}
}

func (ms *MongoStore) collection() *mongo.Collection {
	return ms.db.Collection(complaintCollection)
}

func (ms *MongoStore) List(ctx context.Context) ([]models.Complaint, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := ms.collection().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	complaints := []models.Complaint{}
	if err := cursor.All(ctx, &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

func (ms *MongoStore) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	var c models.Complaint
	err := ms.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (ms *MongoStore) Append(ctx context.Context, c *models.Complaint) error {
	_, err := ms.collection().InsertOne(ctx, c)
	return err
}

func (ms *MongoStore) Upvote(ctx context.Context, id, addr string) (*models.Complaint, error) {
	// Only documents not yet upvoted by addr match, so the $inc and
	// $addToSet stay in lock step.
	filter := bson.M{"_id": id, "upvoted_by": bson.M{"$ne": addr}}
	update := bson.M{
		"$addToSet": bson.M{"upvoted_by": addr},
		"$inc":      bson.M{"upvotes": 1},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
	}

	if _, err := ms.collection().UpdateOne(ctx, filter, update); err != nil {
		return nil, err
	}

	// Unmatched filter means either a repeat upvote or an unknown id;
	// FindByID settles which.
	return ms.FindByID(ctx, id)
}

func (ms *MongoStore) SetStatus(ctx context.Context, id, status string) (*models.Complaint, error) {
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"updated_at": time.Now().UTC(),
		},
	}

	result, err := ms.collection().UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return ms.FindByID(ctx, id)
}

func (ms *MongoStore) Ping(ctx context.Context) error {
	return ms.db.Client().Ping(ctx, nil)
}
