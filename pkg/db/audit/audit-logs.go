package audit

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
)

func (dbService *AuditDBService) AddAuditLog(instanceID string, entry types.AuditLog) (types.AuditLog, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionAuditLogs(instanceID).InsertOne(ctx, entry)
	if err != nil {
		return entry, err
	}
	entry.ID = ret.InsertedID.(primitive.ObjectID)
	return entry, nil
}

func (dbService *AuditDBService) GetAuditLogs(instanceID string, filter bson.M, sort bson.M, page int64, limit int64) (entries []types.AuditLog, paginationInfo *db.PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if len(sort) == 0 {
		sort = bson.M{"createdAt": -1}
	}

	totalCount, err := dbService.collectionAuditLogs(instanceID).CountDocuments(ctx, filter)
	if err != nil {
		return entries, nil, err
	}

	pagination := db.PrepPaginationInfos(totalCount, page, limit)
	skip := (pagination.CurrentPage - 1) * pagination.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(pagination.PageSize)
	cursor, err := dbService.collectionAuditLogs(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return entries, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &entries)
	if err != nil {
		return entries, nil, err
	}
	return entries, &pagination, nil
}
