package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"groupchat/internal/model"
)

// GroupRepository defines group persistence operations. Member and like
// mutations go through single-document update operators so that
// concurrent writes to the same group are serialized by the store.
type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Group, error)
	FindByName(ctx context.Context, name string) (*model.Group, error)
	SearchByName(ctx context.Context, fragment string) ([]model.Group, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	SetMembers(ctx context.Context, id primitive.ObjectID, members []primitive.ObjectID) error
	AppendMessage(ctx context.Context, id primitive.ObjectID, msg *model.Message) error
	AddLike(ctx context.Context, groupID, messageID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, groupID, messageID, userID primitive.ObjectID) error
}

type groupRepository struct {
	col *mongo.Collection
}

// NewGroupRepository builds a mongo-backed repository over the groups
// collection.
func NewGroupRepository(database *mongo.Database) GroupRepository {
	return &groupRepository{col: database.Collection("groups")}
}

func (r *groupRepository) Create(ctx context.Context, group *model.Group) error {
	res, err := r.col.InsertOne(ctx, group)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		group.ID = id
	}
	return nil
}

func (r *groupRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Group, error) {
	var group model.Group
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&group); err != nil {
		return nil, err
	}
	return &group, nil
}

// FindByName matches the group name exactly.
func (r *groupRepository) FindByName(ctx context.Context, name string) (*model.Group, error) {
	var group model.Group
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&group); err != nil {
		return nil, err
	}
	return &group, nil
}

// SearchByName does a case-insensitive substring match in natural order.
// The fragment is quoted so it is always a literal, never a pattern.
func (r *groupRepository) SearchByName(ctx context.Context, fragment string) ([]model.Group, error) {
	filter := bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(fragment), Options: "i"}}
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	groups := []model.Group{}
	if err := cur.All(ctx, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *groupRepository) SetMembers(ctx context.Context, id primitive.ObjectID, members []primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"members":   members,
		"updatedAt": time.Now().UTC(),
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *groupRepository) AppendMessage(ctx context.Context, id primitive.ObjectID, msg *model.Message) error {
	update := bson.M{
		"$push": bson.M{"messages": msg},
		"$set":  bson.M{"updatedAt": msg.CreatedAt},
	}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// AddLike adds userID to the message's like set. $addToSet keeps the set
// free of duplicates even under concurrent toggles.
func (r *groupRepository) AddLike(ctx context.Context, groupID, messageID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": groupID, "messages._id": messageID}
	update := bson.M{"$addToSet": bson.M{"messages.$.likes": userID}}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// RemoveLike removes userID from the message's like set.
func (r *groupRepository) RemoveLike(ctx context.Context, groupID, messageID, userID primitive.ObjectID) error {
	filter := bson.M{"_id": groupID, "messages._id": messageID}
	update := bson.M{"$pull": bson.M{"messages.$.likes": userID}}
	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
