package types

import "go.mongodb.org/mongo-driver/bson/primitive"

type AuditLog struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Action        string             `bson:"action" json:"action"`
	EntityType    string             `bson:"entityType" json:"entity_type"`
	EntityID      string             `bson:"entityID" json:"entity_id"`
	PerformedBy   string             `bson:"performedBy" json:"performed_by"`
	PerformerRole string             `bson:"performerRole" json:"performer_role"`
	Details       string             `bson:"details,omitempty" json:"details,omitempty"`
	IPAddress     string             `bson:"ipAddress,omitempty" json:"ip_address,omitempty"`
	UserAgent     string             `bson:"userAgent,omitempty" json:"user_agent,omitempty"`
	CreatedAt     int64              `bson:"createdAt" json:"created_at"`
}
