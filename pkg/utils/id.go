package utils

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID 24 位十六进制 ObjectID
func NewID() string { return primitive.NewObjectID().Hex() }

// IsValidID 判断 id 是否为合法 ObjectID（长度 24，仅十六进制）
func IsValidID(id string) bool { return primitive.IsValidObjectID(id) }
