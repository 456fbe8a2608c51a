package userdirectory

import (
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	userTypes "github.com/karthigaD-hub/xcyber360-backend/pkg/user-management/types"
)

func (dbService *UserDirectoryDBService) CreatePlatformUser(instanceID string, user userTypes.PlatformUser) (userTypes.PlatformUser, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	ret, err := dbService.collectionPlatformUsers(instanceID).InsertOne(ctx, user)
	if err != nil {
		return user, err
	}
	user.ID = ret.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (dbService *UserDirectoryDBService) GetPlatformUserByEmail(instanceID string, email string) (user userTypes.PlatformUser, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	err = dbService.collectionPlatformUsers(instanceID).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	return user, err
}

func (dbService *UserDirectoryDBService) GetPlatformUserByID(instanceID string, userID string) (user userTypes.PlatformUser, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return user, err
	}

	err = dbService.collectionPlatformUsers(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&user)
	return user, err
}

func (dbService *UserDirectoryDBService) UpdatePlatformUser(instanceID string, userID string, update bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionPlatformUsers(instanceID).UpdateOne(ctx, bson.M{"_id": _id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *UserDirectoryDBService) CreateSession(instanceID string, userID primitive.ObjectID, createdAt int64) (session userTypes.Session, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	session = userTypes.Session{
		UserID:     userID,
		RenewToken: uuid.NewString(),
		CreatedAt:  createdAt,
	}

	ret, err := dbService.collectionSessions(instanceID).InsertOne(ctx, session)
	if err != nil {
		return session, err
	}
	session.ID = ret.InsertedID.(primitive.ObjectID)
	return session, nil
}

func (dbService *UserDirectoryDBService) GetSessionByID(instanceID string, sessionID string) (session userTypes.Session, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return session, err
	}

	err = dbService.collectionSessions(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&session)
	return session, err
}

func (dbService *UserDirectoryDBService) DeleteSessionByID(instanceID string, sessionID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(sessionID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionSessions(instanceID).DeleteOne(ctx, bson.M{"_id": _id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
