package types

import "go.mongodb.org/mongo-driver/bson/primitive"

type Agent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Designation string             `bson:"designation,omitempty" json:"designation,omitempty"`
	EmpID       string             `bson:"empID,omitempty" json:"emp_id,omitempty"`
	IsActive    bool               `bson:"isActive" json:"is_active"`
	CreatedAt   int64              `bson:"createdAt" json:"created_at"`
}

type Customer struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	CompanyName string             `bson:"companyName" json:"company_name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Industry    string             `bson:"industry,omitempty" json:"industry,omitempty"`
	AgentID     primitive.ObjectID `bson:"agentID,omitempty" json:"agent_id,omitempty"`
	CreatedAt   int64              `bson:"createdAt" json:"created_at"`
}

type InsuranceProvider struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name         string             `bson:"name" json:"name"`
	Code         string             `bson:"code" json:"code"`
	ContactEmail string             `bson:"contactEmail,omitempty" json:"contact_email,omitempty"`
	ContactPhone string             `bson:"contactPhone,omitempty" json:"contact_phone,omitempty"`
	IsActive     bool               `bson:"isActive" json:"is_active"`
	CreatedAt    int64              `bson:"createdAt" json:"created_at"`
}
