package audit

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
)

const COLLECTION_NAME_AUDIT_LOGS = "auditLogs"

type AuditDBService struct {
	DBClient     *mongo.Client
	timeout      int
	DBNamePrefix string
	InstanceIDs  []string
}

func NewAuditDBService(configs db.DBConfig) (*AuditDBService, error) {
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

	auditDBSc := &AuditDBService{
		DBClient:     dbClient,
		timeout:      configs.Timeout,
		DBNamePrefix: configs.DBNamePrefix,
		InstanceIDs:  configs.InstanceIDs,
	}

	if configs.RunIndexCreation {
		if err := auditDBSc.ensureIndexes(); err != nil {
			slog.Error("Error ensuring indexes for audit DB", slog.String("error", err.Error()))
		}
	}

	return auditDBSc, nil
}

func (dbService *AuditDBService) getDBName(instanceID string) string {
	return dbService.DBNamePrefix + instanceID + "_auditDB"
}

func (dbService *AuditDBService) collectionAuditLogs(instanceID string) *mongo.Collection {
	return dbService.DBClient.Database(dbService.getDBName(instanceID)).Collection(COLLECTION_NAME_AUDIT_LOGS)
}

func (dbService *AuditDBService) getContext() (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(dbService.timeout)*time.Second)
}

func (dbService *AuditDBService) ensureIndexes() error {
	slog.Debug("Ensuring indexes for audit DB")

	for _, instanceID := range dbService.InstanceIDs {
		ctx, cancel := dbService.getContext()
		defer cancel()

		_, err := dbService.collectionAuditLogs(instanceID).Indexes().CreateMany(
			ctx,
			[]mongo.IndexModel{
				{
					Keys: bson.D{{Key: "createdAt", Value: -1}},
				},
				{
					Keys: bson.D{
						{Key: "entityType", Value: 1},
						{Key: "entityID", Value: 1},
					},
				},
				{
					Keys: bson.D{{Key: "performedBy", Value: 1}},
				},
			},
		)
		if err != nil {
			slog.Error("Error creating indexes for audit logs", slog.String("error", err.Error()), slog.String("instanceID", instanceID))
		}
	}
	return nil
}
