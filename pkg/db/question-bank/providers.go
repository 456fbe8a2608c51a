package questionbank

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
)

func (dbService *QuestionBankDBService) CreateProvider(instanceID string, provider types.InsuranceProvider) (types.InsuranceProvider, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionProviders(instanceID).InsertOne(ctx, provider)
	if err != nil {
		return provider, err
	}
	provider.ID = ret.InsertedID.(primitive.ObjectID)
	return provider, nil
}

func (dbService *QuestionBankDBService) GetProviders(instanceID string, onlyActive bool) (providers []types.InsuranceProvider, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{}
	if onlyActive {
		filter["isActive"] = true
	}

	opts := options.Find().SetSort(bson.M{"name": 1})
	cursor, err := dbService.collectionProviders(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return providers, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &providers)
	return providers, err
}

func (dbService *QuestionBankDBService) GetProviderByID(instanceID string, providerID string) (provider types.InsuranceProvider, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		return provider, err
	}

	err = dbService.collectionProviders(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&provider)
	return provider, err
}

func (dbService *QuestionBankDBService) UpdateProvider(instanceID string, providerID string, update bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionProviders(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *QuestionBankDBService) DeleteProviderByID(instanceID string, providerID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(providerID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionProviders(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
