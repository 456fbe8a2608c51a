package assessment

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
	COLLECTION_NAME_ASSESSMENTS = "assessments"
	COLLECTION_NAME_LINKS       = "assessmentLinks"
	COLLECTION_NAME_RESPONSES   = "assessmentResponses"
)

type AssessmentDBService struct {
	DBClient        *mongo.Client
	timeout         int
	noCursorTimeout bool
	DBNamePrefix    string
	InstanceIDs     []string
}

func NewAssessmentDBService(configs db.DBConfig) (*AssessmentDBService, error) {
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

	assessmentDBSc := &AssessmentDBService{
		DBClient:        dbClient,
		timeout:         configs.Timeout,
		noCursorTimeout: configs.NoCursorTimeout,
		DBNamePrefix:    configs.DBNamePrefix,
		InstanceIDs:     configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := assessmentDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for assessment DB", slog.String("error", err.Error()))
		}
	}

	return assessmentDBSc, nil
}

func (dbService *AssessmentDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_assessmentDB"
}

func (dbService *AssessmentDBService) collectionAssessments(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_ASSESSMENTS)
}

func (dbService *AssessmentDBService) collectionLinks(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_LINKS)
}

func (dbService *AssessmentDBService) collectionResponses(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_RESPONSES)
}

func (dbService *AssessmentDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *AssessmentDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for assessment DB")

	for _, instanceID := range dbService.InstanceIDs {
		ctx, cancel := dbService.getContext()
		defer cancel()

		// token lookups must be unique and fast
		_, err := dbService.collectionLinks(instanceID).Indexes().CreateMany(
			ctx,
			[]mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "token", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{{Key: "status", Value: 1}},
				},
				{
					Keys: bson.D{
						{Key: "customerID", Value: 1},
						{Key: "status", Value: 1},
					},
				},
				{
					Keys: bson.D{{Key: "agentID", Value: 1}},
				},
			},
		)
		if err != nil {
			slog.Error("Error creating indexes for assessment links", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}

		// one response document per link
		_, err = dbService.collectionResponses(instanceID).Indexes().CreateMany(
			ctx,
			[]mongo.IndexModel{
				{
					Keys:    bson.D{{Key: "linkID", Value: 1}},
					Options: options.Index().SetUnique(true),
				},
				{
					Keys: bson.D{{Key: "submittedAt", Value: 1}},
				},
			},
		)
		if err != nil {
			slog.Error("Error creating indexes for assessment responses", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}

		_, err = dbService.collectionAssessments(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys: bson.D{{Key: "status", Value: 1}},
			},
		)
		if err != nil {
			slog.Error("Error creating index for assessments", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
	}
	return nil
}
