package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

const projectsCollection = "projects"

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(projectsCollection)}
}

type projectDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Slug         string             `bson:"slug"`
	Description  string             `bson:"description"`
	Content      string             `bson:"content"`
	CoverImage   string             `bson:"cover_image,omitempty"`
	AuthorID     string             `bson:"author_id"`
	Published    bool               `bson:"published"`
	PublishedAt  int64              `bson:"published_at,omitempty"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
	Tags         []string           `bson:"tags,omitempty"`
	Technologies []string           `bson:"technologies,omitempty"`
	LiveURL      string             `bson:"live_url,omitempty"`
	GithubURL    string             `bson:"github_url,omitempty"`
	Metadata     bson.M             `bson:"metadata,omitempty"`
}

func projectToDoc(p *domain.Project) projectDoc {
	doc := projectDoc{
		Title:        p.Title,
		Slug:         p.Slug,
		Description:  p.Description,
		Content:      p.Content,
		CoverImage:   p.CoverImage,
		AuthorID:     p.AuthorID,
		Published:    p.Published,
		CreatedAt:    p.CreatedAt.Unix(),
		UpdatedAt:    p.UpdatedAt.Unix(),
		Tags:         p.Tags,
		Technologies: p.Technologies,
		LiveURL:      p.LiveURL,
		GithubURL:    p.GithubURL,
		Metadata:     bson.M(p.Metadata),
	}
	if p.PublishedAt != nil {
		doc.PublishedAt = p.PublishedAt.Unix()
	}
	return doc
}

func (d *projectDoc) toDomain() *domain.Project {
	project := &domain.Project{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Slug:         d.Slug,
		Description:  d.Description,
		Content:      d.Content,
		CoverImage:   d.CoverImage,
		AuthorID:     d.AuthorID,
		Published:    d.Published,
		CreatedAt:    unixToTime(d.CreatedAt),
		UpdatedAt:    unixToTime(d.UpdatedAt),
		Tags:         d.Tags,
		Technologies: d.Technologies,
		LiveURL:      d.LiveURL,
		GithubURL:    d.GithubURL,
		Metadata:     map[string]any(d.Metadata),
	}
	if d.PublishedAt != 0 {
		t := unixToTime(d.PublishedAt)
		project.PublishedAt = &t
	}
	return project
}

func (r *ProjectRepository) List(ctx context.Context, publishedOnly bool) ([]domain.Project, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer cur.Close(ctx)

	var projects []domain.Project
	for cur.Next(ctx) {
		var doc projectDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode project: %w", err)
		}
		projects = append(projects, *doc.toDomain())
	}
	return projects, cur.Err()
}

func (r *ProjectRepository) FindBySlug(ctx context.Context, slug string) (*domain.Project, error) {
	var doc projectDoc
	if err := r.coll.FindOne(ctx, bson.M{"slug": slug}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	_, err := r.coll.InsertOne(ctx, projectToDoc(project))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrSlugExists
		}
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return r.FindBySlug(ctx, project.Slug)
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"slug": project.Slug}, projectToDoc(project))
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return r.FindBySlug(ctx, project.Slug)
}

func (r *ProjectRepository) Delete(ctx context.Context, slug string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"slug": slug})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
