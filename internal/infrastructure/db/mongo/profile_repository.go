package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codefolio/portfolio-api/internal/core/domain"
)

const profilesCollection = "profiles"

// ProfileRepository persists the identity-to-role mapping. Documents are
// keyed by the provider identity id, so the mapping is 1:1 by construction.
type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(profilesCollection)}
}

type profileDoc struct {
	ID        string `bson:"_id"`
	Role      string `bson:"role"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

// GetRole returns the role for an identity id. Missing documents and
// malformed stored roles both fail closed as ErrProfileNotFound.
func (r *ProfileRepository) GetRole(ctx context.Context, identityID string) (domain.Role, error) {
	var doc profileDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": identityID}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", domain.ErrProfileNotFound
		}
		return "", fmt.Errorf("find profile: %w", err)
	}

	role, err := domain.ParseRole(doc.Role)
	if err != nil {
		return "", domain.ErrProfileNotFound
	}
	return role, nil
}

// SetRole upserts the profile for an identity id.
func (r *ProfileRepository) SetRole(ctx context.Context, identityID string, role domain.Role) error {
	if !role.Valid() {
		return domain.ErrInvalidRole
	}

	now := time.Now().UTC().Unix()
	update := bson.M{
		"$set":         bson.M{"role": string(role), "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	_, err := r.coll.UpdateByID(ctx, identityID, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
