package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjection_OmitsPasswordHash(t *testing.T) {
	a := &Account{
		ID:           "id-1",
		Email:        "a@x.com",
		PasswordHash: []byte("$2a$10$secret"),
		DisplayName:  "Ann",
		CreatedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	b, err := json.Marshal(a.Projection())
	require.NoError(t, err)
	assert.False(t, strings.Contains(string(b), "secret"))
	assert.Contains(t, string(b), `"id":"id-1"`)
	assert.Contains(t, string(b), `"display_name":"Ann"`)
}

func TestProfileUpdate_ApplyOnlySetFields(t *testing.T) {
	a := &Account{DisplayName: "old", Bio: "old bio", Picture: "p.png"}
	name := "new"
	empty := ""

	ProfileUpdate{DisplayName: &name, Picture: &empty}.Apply(a)

	assert.Equal(t, "new", a.DisplayName)
	assert.Equal(t, "old bio", a.Bio)
	assert.Equal(t, "", a.Picture)
}
