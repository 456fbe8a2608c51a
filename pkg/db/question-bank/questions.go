package questionbank

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
)

func (dbService *QuestionBankDBService) CreateQuestion(instanceID string, question types.Question) (types.Question, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionQuestions(instanceID).InsertOne(ctx, question)
	if err != nil {
		return question, err
	}
	question.ID = ret.InsertedID.(primitive.ObjectID)
	return question, nil
}

func (dbService *QuestionBankDBService) CreateQuestions(instanceID string, questions []types.Question) (int, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	docs := make([]interface{}, len(questions))
	for i, q := range questions {
		docs[i] = q
	}

	ret, err := dbService.collectionQuestions(instanceID).InsertMany(ctx, docs)
	if err != nil {
		inserted := 0
		if ret != nil {
			inserted = len(ret.InsertedIDs)
		}
		return inserted, err
	}
	return len(ret.InsertedIDs), nil
}

func (dbService *QuestionBankDBService) GetQuestionByID(instanceID string, questionID string) (question types.Question, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return question, err
	}

	err = dbService.collectionQuestions(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&question)
	return question, err
}

func (dbService *QuestionBankDBService) GetQuestions(instanceID string, filter bson.M, sort bson.M, page int64, limit int64) (questions []types.Question, paginationInfo *db.PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	totalCount, err := dbService.collectionQuestions(instanceID).CountDocuments(ctx, filter)
	if err != nil {
		return questions, nil, err
	}

	pagination := db.PrepPaginationInfos(totalCount, page, limit)
	skip := (pagination.CurrentPage - 1) * pagination.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(pagination.PageSize)
	cursor, err := dbService.collectionQuestions(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return questions, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &questions)
	if err != nil {
		return questions, nil, err
	}
	return questions, &pagination, nil
}

// GetActiveQuestionsForProvider returns the questions a filler sees through a
// link of the given provider, ordered for form assembly.
func (dbService *QuestionBankDBService) GetActiveQuestionsForProvider(instanceID string, providerID string) (questions []types.Question, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"isActive":            true,
		"applicableProviders": providerID,
	}
	opts := options.Find().SetSort(bson.D{
		{Key: "compartmentID", Value: 1},
		{Key: "order", Value: 1},
	})

	cursor, err := dbService.collectionQuestions(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return questions, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &questions)
	return questions, err
}

func (dbService *QuestionBankDBService) UpdateQuestion(instanceID string, questionID string, update bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionQuestions(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *QuestionBankDBService) DeleteQuestionByID(instanceID string, questionID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(questionID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionQuestions(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
