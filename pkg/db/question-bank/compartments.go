package questionbank

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
)

func (dbService *QuestionBankDBService) CreateCompartment(instanceID string, compartment types.Compartment) (types.Compartment, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionCompartments(instanceID).InsertOne(ctx, compartment)
	if err != nil {
		return compartment, err
	}
	compartment.ID = ret.InsertedID.(primitive.ObjectID)
	return compartment, nil
}

// GetCompartments returns all compartments in display order.
func (dbService *QuestionBankDBService) GetCompartments(instanceID string) (compartments []types.Compartment, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"order": 1})
	cursor, err := dbService.collectionCompartments(instanceID).Find(ctx, bson.M{}, opts)
	if err != nil {
		return compartments, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &compartments)
	return compartments, err
}

func (dbService *QuestionBankDBService) GetCompartmentByID(instanceID string, compartmentID string) (compartment types.Compartment, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(compartmentID)
	if err != nil {
		return compartment, err
	}

	err = dbService.collectionCompartments(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&compartment)
	return compartment, err
}

func (dbService *QuestionBankDBService) UpdateCompartment(instanceID string, compartmentID string, update bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(compartmentID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionCompartments(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *QuestionBankDBService) DeleteCompartmentByID(instanceID string, compartmentID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(compartmentID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionCompartments(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
