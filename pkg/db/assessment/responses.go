package assessment

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
)

// UpsertDraftResponse replaces the draft answer set of a link. The write is
// idempotent: storing the same snapshot twice leaves the same document.
func (dbService *AssessmentDBService) UpsertDraftResponse(instanceID string, linkID primitive.ObjectID, answers []types.AnswerItem, filledBy string, updatedAt int64) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"linkID": linkID}
	update := bson.M{
		"$set": bson.M{
			"answers":   answers,
			"filledBy":  filledBy,
			"updatedAt": updatedAt,
		},
		"$setOnInsert": bson.M{
			"linkID": linkID,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := dbService.collectionResponses(instanceID).UpdateOne(ctx, filter, update, opts)
	return err
}

// FinalizeResponse writes the submitted answer set together with the
// provenance fields, superseding any draft.
func (dbService *AssessmentDBService) FinalizeResponse(instanceID string, linkID primitive.ObjectID, response types.AssessmentResponse) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"linkID": linkID}
	update := bson.M{
		"$set": bson.M{
			"answers":          response.Answers,
			"filledBy":         response.FilledBy,
			"submittedBy":      response.SubmittedBy,
			"consentConfirmed": response.ConsentConfirmed,
			"submittedAt":      response.SubmittedAt,
			"updatedAt":        response.UpdatedAt,
			"ipAddress":        response.IPAddress,
			"userAgent":        response.UserAgent,
		},
		"$setOnInsert": bson.M{
			"linkID": linkID,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := dbService.collectionResponses(instanceID).UpdateOne(ctx, filter, update, opts)
	return err
}

func (dbService *AssessmentDBService) GetResponseByLinkID(instanceID string, linkID primitive.ObjectID) (response types.AssessmentResponse, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionResponses(instanceID).FindOne(ctx, bson.M{"linkID": linkID}).Decode(&response)
	return response, err
}

// GetSubmittedResponses returns finalized responses only, paginated.
func (dbService *AssessmentDBService) GetSubmittedResponses(instanceID string, filter bson.M, sort bson.M, page int64, limit int64) (responses []types.AssessmentResponse, paginationInfo *db.PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if filter == nil {
		filter = bson.M{}
	}
	filter["submittedAt"] = bson.M{"$gt": 0}

	totalCount, err := dbService.collectionResponses(instanceID).CountDocuments(ctx, filter)
	if err != nil {
		return responses, nil, err
	}

	pagination := db.PrepPaginationInfos(totalCount, page, limit)
	skip := (pagination.CurrentPage - 1) * pagination.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(pagination.PageSize)
	cursor, err := dbService.collectionResponses(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return responses, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	if err != nil {
		return responses, nil, err
	}
	return responses, &pagination, nil
}
