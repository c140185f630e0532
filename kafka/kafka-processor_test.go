package main

import (
	"testing"

	"github.com/google/uuid"
	kafka "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultKey(t *testing.T) {
	assert.Equal(t, []byte("seq-1"), resultKey(kafka.Message{Key: []byte("seq-1")}))

	key := resultKey(kafka.Message{})
	_, err := uuid.Parse(string(key))
	require.NoError(t, err)
}
