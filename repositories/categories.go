package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gb-more-from-widget/models"
)

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{col: db.Collection("categories")}
}

// Upsert upserts a category identified by its numeric id.
func (r *CategoryRepository) Upsert(ctx context.Context, c *models.Category) (*mongo.UpdateResult, error) {
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	filter := bson.M{"_id": c.ID}
	update := bson.M{
		"$setOnInsert": bson.M{
			"created_at": c.CreatedAt,
		},
		"$set": bson.M{
			"updated_at": c.UpdatedAt,
			"name":       c.Name,
			"slug":       c.Slug,
		},
	}
	opts := options.Update().SetUpsert(true)
	return r.col.UpdateOne(ctx, filter, update, opts)
}

// FindByID finds a category by its numeric id.
func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	var c models.Category
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.Category
	if err := cur.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}
