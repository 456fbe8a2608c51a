package assessment

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karthigaD-hub/xcyber360-backend/pkg/assessment/types"
	"github.com/karthigaD-hub/xcyber360-backend/pkg/db"
)

func (dbService *AssessmentDBService) CreateLink(instanceID string, link types.AssessmentLink) (types.AssessmentLink, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionLinks(instanceID).InsertOne(ctx, link)
	if err != nil {
		return link, err
	}
	link.ID = ret.InsertedID.(primitive.ObjectID)
	return link, nil
}

func (dbService *AssessmentDBService) GetLinkByToken(instanceID string, token string) (link types.AssessmentLink, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"token": token}
	err = dbService.collectionLinks(instanceID).FindOne(ctx, filter).Decode(&link)
	return link, err
}

func (dbService *AssessmentDBService) GetLinkByID(instanceID string, linkID string) (link types.AssessmentLink, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(linkID)
	if err != nil {
		return link, err
	}

	err = dbService.collectionLinks(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&link)
	return link, err
}

// UpdateLinkProgress sets the stored progress and moves the status to
// IN_PROGRESS unless the link is already submitted. The conditional filter is
// what enforces the one-way locking at the database, independent of callers.
func (dbService *AssessmentDBService) UpdateLinkProgress(instanceID string, linkID primitive.ObjectID, progressPercent int) (types.AssessmentLink, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"_id":    linkID,
		"status": bson.M{"$ne": types.LINK_STATUS_SUBMITTED},
	}
	update := bson.M{
		"$set": bson.M{
			"status":          types.LINK_STATUS_IN_PROGRESS,
			"progressPercent": progressPercent,
		},
	}

	var updated types.AssessmentLink
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := dbService.collectionLinks(instanceID).FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	return updated, err
}

// MarkLinkSubmitted performs the terminal transition. It only matches links
// that are not yet submitted, so a second call reports mongo.ErrNoDocuments.
func (dbService *AssessmentDBService) MarkLinkSubmitted(instanceID string, linkID primitive.ObjectID, progressPercent int, submittedAt int64) (types.AssessmentLink, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"_id":    linkID,
		"status": bson.M{"$ne": types.LINK_STATUS_SUBMITTED},
	}
	update := bson.M{
		"$set": bson.M{
			"status":          types.LINK_STATUS_SUBMITTED,
			"progressPercent": progressPercent,
			"submittedAt":     submittedAt,
		},
	}

	var updated types.AssessmentLink
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := dbService.collectionLinks(instanceID).FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated)
	return updated, err
}

func (dbService *AssessmentDBService) GetLinks(instanceID string, filter bson.M, sort bson.M, page int64, limit int64) (links []types.AssessmentLink, paginationInfo *db.PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	totalCount, err := dbService.GetLinksCount(instanceID, filter)
	if err != nil {
		return links, nil, err
	}

	pagination := db.PrepPaginationInfos(totalCount, page, limit)
	skip := (pagination.CurrentPage - 1) * pagination.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(pagination.PageSize)
	cursor, err := dbService.collectionLinks(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return links, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &links)
	if err != nil {
		return links, nil, err
	}
	return links, &pagination, nil
}

func (dbService *AssessmentDBService) GetLinksCount(instanceID string, filter bson.M) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionLinks(instanceID).CountDocuments(ctx, filter)
}

func (dbService *AssessmentDBService) DeleteLinkByID(instanceID string, linkID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(linkID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionLinks(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
