package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestIsDuplicateEmail(t *testing.T) {
	dup := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
	assert.True(t, IsDuplicateEmail(dup), "unique index violations map to the duplicate-account response")

	other := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 121, Message: "Document failed validation"}},
	}
	assert.False(t, IsDuplicateEmail(other))
	assert.False(t, IsDuplicateEmail(errors.New("connection reset")))
	assert.False(t, IsDuplicateEmail(nil))
}
