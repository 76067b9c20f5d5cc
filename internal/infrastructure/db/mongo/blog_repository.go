package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

const blogCollection = "blog_posts"

type BlogRepository struct {
	coll *mongo.Collection
}

func NewBlogRepository(db *mongo.Database) *BlogRepository {
	return &BlogRepository{coll: db.Collection(blogCollection)}
}

type blogDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Slug        string             `bson:"slug"`
	Content     string             `bson:"content"`
	Excerpt     string             `bson:"excerpt,omitempty"`
	CoverImage  string             `bson:"cover_image,omitempty"`
	AuthorID    string             `bson:"author_id"`
	Published   bool               `bson:"published"`
	PublishedAt int64              `bson:"published_at,omitempty"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
	Tags        []string           `bson:"tags,omitempty"`
	Metadata    bson.M             `bson:"metadata,omitempty"`
}

func blogToDoc(p *domain.BlogPost) blogDoc {
	doc := blogDoc{
		Title:      p.Title,
		Slug:       p.Slug,
		Content:    p.Content,
		Excerpt:    p.Excerpt,
		CoverImage: p.CoverImage,
		AuthorID:   p.AuthorID,
		Published:  p.Published,
		CreatedAt:  p.CreatedAt.Unix(),
		UpdatedAt:  p.UpdatedAt.Unix(),
		Tags:       p.Tags,
		Metadata:   bson.M(p.Metadata),
	}
	if p.PublishedAt != nil {
		doc.PublishedAt = p.PublishedAt.Unix()
	}
	return doc
}

func (d *blogDoc) toDomain() *domain.BlogPost {
	post := &domain.BlogPost{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		Slug:       d.Slug,
		Content:    d.Content,
		Excerpt:    d.Excerpt,
		CoverImage: d.CoverImage,
		AuthorID:   d.AuthorID,
		Published:  d.Published,
		CreatedAt:  unixToTime(d.CreatedAt),
		UpdatedAt:  unixToTime(d.UpdatedAt),
		Tags:       d.Tags,
		Metadata:   map[string]any(d.Metadata),
	}
	if d.PublishedAt != 0 {
		t := unixToTime(d.PublishedAt)
		post.PublishedAt = &t
	}
	return post
}

func (r *BlogRepository) List(ctx context.Context, publishedOnly bool) ([]domain.BlogPost, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var posts []domain.BlogPost
	for cur.Next(ctx) {
		var doc blogDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode post: %w", err)
		}
		posts = append(posts, *doc.toDomain())
	}
	return posts, cur.Err()
}

func (r *BlogRepository) FindBySlug(ctx context.Context, slug string) (*domain.BlogPost, error) {
	var doc blogDoc
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *BlogRepository) Create(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	_, err := r.coll.InsertOne(ctx, blogToDoc(post))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return r.FindBySlug(ctx, post.Slug)
}

func (r *BlogRepository) Update(ctx context.Context, post *domain.BlogPost) (*domain.BlogPost, error) {
	doc := blogToDoc(post)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"slug": post.Slug}, doc)
	if err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrPostNotFound
	}
	return r.FindBySlug(ctx, post.Slug)
}

func (r *BlogRepository) Delete(ctx context.Context, slug string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
