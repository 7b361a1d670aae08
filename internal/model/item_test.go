package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidStatus(t *testing.T) {
	tests := []struct {
		status   string
		expected bool
	}{
		{ItemStatusOpen, true},
		{ItemStatusInProgress, true},
		{ItemStatusDone, true},
		{"open", false},
		{"Closed", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ValidStatus(tt.status), "ValidStatus(%q)", tt.status)
	}
}

func TestNewItemDefaults(t *testing.T) {
	item, err := NewItem{Title: "Buy milk"}.Item()
	require.NoError(t, err)

	assert.Equal(t, "Buy milk", item.Title)
	assert.Equal(t, ItemStatusOpen, item.Status)
	assert.NotNil(t, item.Tags)
	assert.Empty(t, item.Tags)
	assert.Nil(t, item.Description)
	assert.Nil(t, item.DueDate)
	assert.Empty(t, item.ID)
}

func TestNewItemValidation(t *testing.T) {
	long := strings.Repeat("x", MaxDescriptionLength+1)

	tests := []struct {
		name  string
		input NewItem
		field string
	}{
		{"empty title", NewItem{}, "title"},
		{"long title", NewItem{Title: strings.Repeat("a", MaxTitleLength+1)}, "title"},
		{"long description", NewItem{Title: "ok", Description: &long}, "description"},
		{"bad status", NewItem{Title: "ok", Status: "Closed"}, "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.input.Item()
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestTitleLengthCountsRunes(t *testing.T) {
	assert.NoError(t, ValidateTitle(strings.Repeat("č", MaxTitleLength)))
	assert.Error(t, ValidateTitle(strings.Repeat("č", MaxTitleLength+1)))
}

func TestValidAction(t *testing.T) {
	for _, action := range []string{ActionCreated, ActionUpdated, ActionStatusChanged, ActionDeleted} {
		assert.True(t, ValidAction(action), action)
	}
	assert.False(t, ValidAction("archived"))
}
