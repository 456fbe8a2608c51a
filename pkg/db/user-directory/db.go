package userdirectory

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
)

// collection names
const (
	COLLECTION_NAME_PLATFORM_USERS = "platformUsers"
	COLLECTION_NAME_SESSIONS       = "sessions"
	COLLECTION_NAME_AGENTS         = "agents"
	COLLECTION_NAME_CUSTOMERS      = "customers"
)

const REMOVE_SESSIONS_AFTER = 60 * 60 * 24 * 7 // 7 days

type UserDirectoryDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
	InstanceIDs  []string
}

func NewUserDirectoryDBService(configs db.DBConfig) (*UserDirectoryDBService, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	defer cancel()

	dbClient, err := mongo.Connect(ctx,
		options.Client().ApplyURI(configs.URI),
		options.Client().SetMaxConnIdleTime(time.Duration(configs.IdleConnTimeout)*time.Second),
		options.Client().SetMaxPoolSize(configs.MaxPoolSize),
	)
	if err != nil {
		return nil, err
	}

	ctx, conCancel := context.WithTimeout(context.Background(), time.Duration(configs.Timeout)*time.Second)
	err = dbClient.Ping(ctx, nil)
	defer conCancel()
	if err != nil {
		return nil, err
	}

	udDBSc := &UserDirectoryDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
		InstanceIDs:  configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := udDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for user directory DB", slog.String("error", err.Error()))
		}
	}

	return udDBSc, nil
}

func (dbService *UserDirectoryDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_userDirectoryDB"
}

func (dbService *UserDirectoryDBService) collectionPlatformUsers(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_PLATFORM_USERS)
}

func (dbService *UserDirectoryDBService) collectionSessions(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_SESSIONS)
}

func (dbService *UserDirectoryDBService) collectionAgents(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_AGENTS)
}

func (dbService *UserDirectoryDBService) collectionCustomers(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_CUSTOMERS)
}

func (dbService *UserDirectoryDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *UserDirectoryDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for user directory DB")

	for _, instanceID := range dbService.InstanceIDs {
		ctx, cancel := dbService.getContext()
		defer cancel()

		_, err := dbService.collectionPlatformUsers(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		)
		if err != nil {
			slog.Error("Error creating index for platform users", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}

		// sessions: auto delete on creation date
		_, err = dbService.collectionSessions(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys:    bson.D{{Key: "createdAt", Value: 1}},
				Options: options.Index().SetExpireAfterSeconds(REMOVE_SESSIONS_AFTER),
			},
		)
		if err != nil {
			slog.Error("Error creating index for sessions", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}

		_, err = dbService.collectionAgents(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		)
		if err != nil {
			slog.Error("Error creating index for agents", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}

		_, err = dbService.collectionCustomers(instanceID).Indexes().CreateMany(
			ctx,
			[]mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "email", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{{Key: "agentID", Value: 1}},
				},
			},
		)
		if err != nil {
			slog.Error("Error creating indexes for customers", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
	}
	return nil
}
