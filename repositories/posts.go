package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gb-more-from-widget/models"
)

type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection("posts")}
}

// IsExistByLink checks if a post exists by its link.
func (r *PostRepository) IsExistByLink(ctx context.Context, link string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"link": link}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	return err == nil, err
}

// Insert inserts a new post document.
func (r *PostRepository) Insert(ctx context.Context, p *models.Post) (*mongo.InsertOneResult, error) {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = models.PostStatusPublish
	}
	return r.col.InsertOne(ctx, p)
}

// FindByID returns a post by its ObjectID
func (r *PostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

type ListByCategoryOptions struct {
	CategoryID int64
	Limit      int
	// IgnoreSticky 가 false 이면 sticky 포스트를 맨 앞에 고정한다.
	IgnoreSticky bool
}

// ListByCategory returns published posts filed under a category, newest first.
// A non-positive limit yields no posts.
func (r *PostRepository) ListByCategory(ctx context.Context, opt ListByCategoryOptions) ([]models.Post, error) {
	if opt.Limit <= 0 {
		return nil, nil
	}

	filter := bson.M{
		"category_ids": opt.CategoryID,
		"status":       models.PostStatusPublish,
	}

	sort := bson.D{
		{Key: "published_at", Value: -1},
		{Key: "_id", Value: -1},
	}
	if !opt.IgnoreSticky {
		sort = append(bson.D{{Key: "sticky", Value: -1}}, sort...)
	}

	findOpts := options.Find().SetLimit(int64(opt.Limit)).SetSort(sort)
	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var results []models.Post
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// UpdateThumbnailURL sets thumbnail_url field
func (r *PostRepository) UpdateThumbnailURL(ctx context.Context, postID primitive.ObjectID, url string) error {
	_, err := r.col.UpdateByID(ctx, postID, bson.M{
		"$set": bson.M{"thumbnail_url": url, "updated_at": time.Now()},
	})
	return err
}
