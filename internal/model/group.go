package model

import (
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is embedded in its group document and cannot outlive it.
// Likes carries set semantics: one entry per user, enforced by the
// like toggle.
type Message struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id"`
	Content   string               `json:"content" bson:"content"`
	Sender    primitive.ObjectID   `json:"sender" bson:"sender"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	Likes     []primitive.ObjectID `json:"likes" bson:"likes"`
}

// LikedBy reports whether userID already liked the message.
func (m *Message) LikedBy(userID primitive.ObjectID) bool {
	return lo.Contains(m.Likes, userID)
}

// Group represents a chat group. The member at index 0 is the owner for
// the lifetime of the group; there is no ownership transfer.
type Group struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name"`
	Members   []primitive.ObjectID `json:"members" bson:"members"`
	Messages  []Message            `json:"messages" bson:"messages"`
	CreatedAt time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// Owner returns the first member, the only identity allowed to delete the
// group.
func (g *Group) Owner() primitive.ObjectID {
	if len(g.Members) == 0 {
		return primitive.NilObjectID
	}
	return g.Members[0]
}

// HasMember reports whether id is in the member list.
func (g *Group) HasMember(id primitive.ObjectID) bool {
	return lo.Contains(g.Members, id)
}

// MessageByID returns a pointer into the embedded message list.
func (g *Group) MessageByID(id primitive.ObjectID) (*Message, bool) {
	for i := range g.Messages {
		if g.Messages[i].ID == id {
			return &g.Messages[i], true
		}
	}
	return nil, false
}
