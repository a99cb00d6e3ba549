package templateRepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"skybook/models"
)

// ErrNotFound is returned when no template exists for the given token.
var ErrNotFound = errors.New("template not found")

// GetByToken returns the template bundle identified by its token.
func (r *mongoTemplateRepo) GetByToken(ctx context.Context, token string) (*models.TemplateBundle, error) {
	var bundle models.TemplateBundle
	err := r.coll.FindOne(ctx, bson.M{"template.token": token}).Decode(&bundle)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &bundle, nil
}

// Insert stores a new template bundle. Used by seeding/admin tooling.
func (r *mongoTemplateRepo) Insert(ctx context.Context, bundle models.TemplateBundle) error {
	now := time.Now()
	if bundle.Template.CreatedAt.IsZero() {
		bundle.Template.CreatedAt = now
	}
	bundle.Template.UpdatedAt = now
	_, err := r.coll.InsertOne(ctx, bundle)
	return err
}
