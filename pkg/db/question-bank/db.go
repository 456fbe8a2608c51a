package questionbank

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
	COLLECTION_NAME_COMPARTMENTS = "compartments"
	COLLECTION_NAME_QUESTIONS    = "questions"
	COLLECTION_NAME_PROVIDERS    = "insuranceProviders"
)

type QuestionBankDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
	InstanceIDs  []string
}

func NewQuestionBankDBService(configs db.DBConfig) (*QuestionBankDBService, error) {
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

	qbDBSc := &QuestionBankDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
		InstanceIDs:  configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := qbDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for question bank DB", slog.String("error", err.Error()))
		}
	}

	return qbDBSc, nil
}

func (dbService *QuestionBankDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_questionBankDB"
}

func (dbService *QuestionBankDBService) collectionCompartments(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_COMPARTMENTS)
}

func (dbService *QuestionBankDBService) collectionQuestions(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_QUESTIONS)
}

func (dbService *QuestionBankDBService) collectionProviders(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_PROVIDERS)
}

func (dbService *QuestionBankDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *QuestionBankDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for question bank DB")

	for _, instanceID := range dbService.InstanceIDs {
		ctx, cancel := dbService.getContext()
		defer cancel()

		_, err := dbService.collectionQuestions(instanceID).Indexes().CreateMany(
			ctx,
			[]mongo.IndexModel{
				{
					Keys: bson.D{
						{Key: "compartmentID", Value: 1},
						{Key: "order", Value: 1},
					},
				},
				{
					Keys: bson.D{{Key: "applicableProviders", Value: 1}},
				},
				{
					Keys: bson.D{{Key: "isActive", Value: 1}},
				},
			},
		)
		if err != nil {
			slog.Error("Error creating indexes for questions", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}

		_, err = dbService.collectionCompartments(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys: bson.D{{Key: "order", Value: 1}},
			},
		)
		if err != nil {
			slog.Error("Error creating index for compartments", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}

		_, err = dbService.collectionProviders(instanceID).Indexes().CreateOne(
			ctx,
			mongo.IndexModel{
				Keys:    bson.D{{Key: "code", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		)
		if err != nil {
			slog.Error("Error creating index for insurance providers", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
	}
	return nil
}
