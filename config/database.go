package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database holds the process-wide store handles. Constructed explicitly in
// main and closed on shutdown; no package-level singletons.
type Database struct {
	PG          *gorm.DB
	Mongo       *mongo.Database
	mongoClient *mongo.Client
}

func ConnectDB(cfg *Config) (*Database, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)
	pgDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	return &Database{
		PG:          pgDB,
		Mongo:       mongoClient.Database(cfg.MongoDBName),
		mongoClient: mongoClient,
	}, nil
}

func (d *Database) Close(ctx context.Context) error {
	if sqlDB, err := d.PG.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return d.mongoClient.Disconnect(ctx)
}
