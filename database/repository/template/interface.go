package templateRepo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"skybook/config"
	"skybook/database"
	"skybook/models"
)

// TemplateRepository resolves the immutable booking template a customer opens
// by token.
type TemplateRepository interface {
	GetByToken(ctx context.Context, token string) (*models.TemplateBundle, error)
	Insert(ctx context.Context, bundle models.TemplateBundle) error
}

type mongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo returns a new TemplateRepository instance using MongoDB.
func NewMongoTemplateRepo() TemplateRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoTemplateRepo{
		coll: db.Collection("templates"),
	}
}
