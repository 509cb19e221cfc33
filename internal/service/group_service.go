package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"groupchat/internal/cache"
	"groupchat/internal/errors"
	"groupchat/internal/model"
	"groupchat/internal/repository"
)

const searchCacheTTL = 30 * time.Second

// GroupService exposes group and messaging operations.
type GroupService interface {
	CreateGroup(ctx context.Context, name string, ownerID primitive.ObjectID) (*model.Group, error)
	DeleteGroup(ctx context.Context, id, requesterID primitive.ObjectID) error
	SearchGroups(ctx context.Context, fragment string) ([]model.Group, error)
	AddMembers(ctx context.Context, id, requesterID primitive.ObjectID, memberIDs []primitive.ObjectID) (*model.Group, error)
	SendMessage(ctx context.Context, groupID, senderID primitive.ObjectID, content string) (*model.Group, *model.Message, error)
	ToggleLike(ctx context.Context, groupID, messageID, userID primitive.ObjectID) (*model.Group, *model.Message, bool, error)
}

type groupService struct {
	groups repository.GroupRepository
	cache  *cache.Client
}

// NewGroupService builds a GroupService with repository and cache.
func NewGroupService(groups repository.GroupRepository, cache *cache.Client) GroupService {
	return &groupService{groups: groups, cache: cache}
}

func (s *groupService) searchCacheKey(fragment string) string {
	return "groups:search:" + strings.ToLower(fragment)
}

// CreateGroup stores a new group with the creator as its sole member and
// therefore its owner.
func (s *groupService) CreateGroup(ctx context.Context, name string, ownerID primitive.ObjectID) (*model.Group, error) {
	existing, err := s.groups.FindByName(ctx, name)
	if err == nil && existing != nil {
		return nil, errors.ErrGroupNameTaken
	}
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("check group name: %w", err)
	}

	now := time.Now().UTC()
	group := &model.Group{
		Name:      name,
		Members:   []primitive.ObjectID{ownerID},
		Messages:  []model.Message{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.groups.Create(ctx, group); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.ErrGroupNameTaken
		}
		return nil, fmt.Errorf("create group: %w", err)
	}

	return group, nil
}

// DeleteGroup removes a group. Only the owner, the member at index 0, may
// delete it; everyone else gets ErrPermissionDenied.
func (s *groupService) DeleteGroup(ctx context.Context, id, requesterID primitive.ObjectID) error {
	group, err := s.findGroup(ctx, id)
	if err != nil {
		return err
	}
	if group.Owner() != requesterID {
		return errors.ErrPermissionDenied
	}
	if err := s.groups.Delete(ctx, id); err != nil {
		if err == mongo.ErrNoDocuments {
			return errors.ErrGroupNotFound
		}
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

// SearchGroups returns groups whose name contains the fragment,
// case-insensitive, in the store's natural order. Results are cached
// briefly; a cold or unavailable cache degrades to a store read.
func (s *groupService) SearchGroups(ctx context.Context, fragment string) ([]model.Group, error) {
	key := s.searchCacheKey(fragment)
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached []model.Group
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	groups, err := s.groups.SearchByName(ctx, fragment)
	if err != nil {
		return nil, fmt.Errorf("search groups: %w", err)
	}

	if payload, err := json.Marshal(groups); err == nil {
		_ = s.cache.Set(ctx, key, payload, searchCacheTTL)
	}
	return groups, nil
}

// AddMembers unions the given ids onto the member list. Existing order is
// preserved, new members are appended, duplicates collapse, so repeating
// the same input is a no-op. Any current member may add members.
func (s *groupService) AddMembers(ctx context.Context, id, requesterID primitive.ObjectID, memberIDs []primitive.ObjectID) (*model.Group, error) {
	group, err := s.findGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(requesterID) {
		return nil, errors.ErrPermissionDenied
	}

	members := lo.Union(group.Members, memberIDs)
	if err := s.groups.SetMembers(ctx, id, members); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("set members: %w", err)
	}

	group.Members = members
	return group, nil
}

// SendMessage appends a message to the group. Only members may send.
func (s *groupService) SendMessage(ctx context.Context, groupID, senderID primitive.ObjectID, content string) (*model.Group, *model.Message, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, nil, err
	}
	if !group.HasMember(senderID) {
		return nil, nil, errors.ErrPermissionDenied
	}

	msg := &model.Message{
		ID:        primitive.NewObjectID(),
		Content:   content,
		Sender:    senderID,
		CreatedAt: time.Now().UTC(),
		Likes:     []primitive.ObjectID{},
	}

	if err := s.groups.AppendMessage(ctx, groupID, msg); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, errors.ErrGroupNotFound
		}
		return nil, nil, fmt.Errorf("append message: %w", err)
	}

	group.Messages = append(group.Messages, *msg)
	return group, msg, nil
}

// ToggleLike flips the user's like on a message: present removes it,
// absent adds it. Two identical calls return the like set to its original
// state. The returned bool is true when the call liked the message.
func (s *groupService) ToggleLike(ctx context.Context, groupID, messageID, userID primitive.ObjectID) (*model.Group, *model.Message, bool, error) {
	group, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, nil, false, err
	}
	msg, ok := group.MessageByID(messageID)
	if !ok {
		return nil, nil, false, errors.ErrMessageNotFound
	}

	liked := !msg.LikedBy(userID)
	if liked {
		err = s.groups.AddLike(ctx, groupID, messageID, userID)
	} else {
		err = s.groups.RemoveLike(ctx, groupID, messageID, userID)
	}
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil, false, errors.ErrMessageNotFound
		}
		return nil, nil, false, fmt.Errorf("toggle like: %w", err)
	}

	if liked {
		msg.Likes = append(msg.Likes, userID)
	} else {
		msg.Likes = lo.Without(msg.Likes, userID)
	}
	return group, msg, liked, nil
}

func (s *groupService) findGroup(ctx context.Context, id primitive.ObjectID) (*model.Group, error) {
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.ErrGroupNotFound
		}
		return nil, fmt.Errorf("find group: %w", err)
	}
	return group, nil
}
