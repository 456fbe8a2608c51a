package userdirectory

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
)

func (dbService *UserDirectoryDBService) CreateAgent(instanceID string, agent types.Agent) (types.Agent, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionAgents(instanceID).InsertOne(ctx, agent)
	if err != nil {
		return agent, err
	}
	agent.ID = ret.InsertedID.(primitive.ObjectID)
	return agent, nil
}

func (dbService *UserDirectoryDBService) GetAgentByID(instanceID string, agentID string) (agent types.Agent, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(agentID)
	if err != nil {
		return agent, err
	}

	err = dbService.collectionAgents(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&agent)
	return agent, err
}

func (dbService *UserDirectoryDBService) GetAgents(instanceID string, filter bson.M, sort bson.M, page int64, limit int64) (agents []types.Agent, paginationInfo *db.PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	totalCount, err := dbService.collectionAgents(instanceID).CountDocuments(ctx, filter)
	if err != nil {
		return agents, nil, err
	}

	pagination := db.PrepPaginationInfos(totalCount, page, limit)
	skip := (pagination.CurrentPage - 1) * pagination.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(pagination.PageSize)
	cursor, err := dbService.collectionAgents(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return agents, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &agents)
	if err != nil {
		return agents, nil, err
	}
	return agents, &pagination, nil
}

func (dbService *UserDirectoryDBService) UpdateAgent(instanceID string, agentID string, update bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(agentID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionAgents(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *UserDirectoryDBService) DeleteAgentByID(instanceID string, agentID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(agentID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionAgents(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
