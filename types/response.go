package types

import "go.mongodb.org/mongo-driver/bson/primitive"

type ApiResponse struct {
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Data    interface{} `json:"data,omitempty"`
}

// InsertResponse mirrors the document store's insert acknowledgement.
type InsertResponse struct {
	Acknowledged bool               `json:"acknowledged"`
	InsertedID   primitive.ObjectID `json:"insertedId"`
}
