package assessment

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
)

func (dbService *AssessmentDBService) CreateAssessment(instanceID string, assessment types.Assessment) (types.Assessment, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionAssessments(instanceID).InsertOne(ctx, assessment)
	if err != nil {
		return assessment, err
	}
	assessment.ID = ret.InsertedID.(primitive.ObjectID)
	return assessment, nil
}

func (dbService *AssessmentDBService) GetAssessmentByID(instanceID string, assessmentID string) (assessment types.Assessment, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(assessmentID)
	if err != nil {
		return assessment, err
	}

	err = dbService.collectionAssessments(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&assessment)
	return assessment, err
}

func (dbService *AssessmentDBService) GetAssessments(instanceID string, filter bson.M, sort bson.M, page int64, limit int64) (assessments []types.Assessment, paginationInfo *db.PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	totalCount, err := dbService.collectionAssessments(instanceID).CountDocuments(ctx, filter)
	if err != nil {
		return assessments, nil, err
	}

	pagination := db.PrepPaginationInfos(totalCount, page, limit)
	skip := (pagination.CurrentPage - 1) * pagination.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(pagination.PageSize)
	cursor, err := dbService.collectionAssessments(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return assessments, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &assessments)
	if err != nil {
		return assessments, nil, err
	}
	return assessments, &pagination, nil
}

func (dbService *AssessmentDBService) UpdateAssessment(instanceID string, assessmentID string, update bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(assessmentID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionAssessments(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *AssessmentDBService) UpdateAssessmentStats(instanceID string, assessmentID primitive.ObjectID, stats types.AssessmentStats) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionAssessments(instanceID).UpdateOne(ctx, bson.M{"_id": assessmentID}, bson.M{"$set": bson.M{"stats": stats}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *AssessmentDBService) DeleteAssessmentByID(instanceID string, assessmentID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(assessmentID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionAssessments(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
