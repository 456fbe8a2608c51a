package userdirectory

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
)

func (dbService *UserDirectoryDBService) CreateCustomer(instanceID string, customer types.Customer) (types.Customer, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionCustomers(instanceID).InsertOne(ctx, customer)
	if err != nil {
		return customer, err
	}
	customer.ID = ret.InsertedID.(primitive.ObjectID)
	return customer, nil
}

func (dbService *UserDirectoryDBService) GetCustomerByID(instanceID string, customerID string) (customer types.Customer, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return customer, err
	}

	err = dbService.collectionCustomers(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&customer)
	return customer, err
}

func (dbService *UserDirectoryDBService) GetCustomers(instanceID string, filter bson.M, sort bson.M, page int64, limit int64) (customers []types.Customer, paginationInfo *db.PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	totalCount, err := dbService.collectionCustomers(instanceID).CountDocuments(ctx, filter)
	if err != nil {
		return customers, nil, err
	}

	pagination := db.PrepPaginationInfos(totalCount, page, limit)
	skip := (pagination.CurrentPage - 1) * pagination.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(pagination.PageSize)
	cursor, err := dbService.collectionCustomers(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return customers, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &customers)
	if err != nil {
		return customers, nil, err
	}
	return customers, &pagination, nil
}

func (dbService *UserDirectoryDBService) CountCustomersForAgent(instanceID string, agentID primitive.ObjectID) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionCustomers(instanceID).CountDocuments(ctx, bson.M{"agentID": agentID})
}

func (dbService *UserDirectoryDBService) UpdateCustomer(instanceID string, customerID string, update bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionCustomers(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *UserDirectoryDBService) DeleteCustomerByID(instanceID string, customerID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(customerID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionCustomers(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
