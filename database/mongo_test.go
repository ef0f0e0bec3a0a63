package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestMongoFilter(t *testing.T) {
	name, filter := mongoFilter("users", bson.M{"uid": "u1"})
	assert.Equal(t, "users", name)
	assert.Equal(t, bson.M{"uid": "u1"}, filter)

	name, filter = mongoFilter("users/u1/notifications", nil)
	assert.Equal(t, "notifications", name)
	assert.Equal(t, bson.M{"parent": "users/u1"}, filter)
}

func TestClassifyMongo(t *testing.T) {
	assert.ErrorIs(t, classifyMongo("op", context.DeadlineExceeded), ErrUnavailable)
	assert.ErrorIs(t, classifyMongo("op", mongo.CommandError{Code: 13, Message: "not authorized"}), ErrPermissionDenied)
	assert.ErrorIs(t, classifyMongo("op", errors.New("odd")), ErrUnknown)
}
