package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestLoad(t *testing.T) {
	doc, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Marketplace core API", doc.Info.Title)
	assert.NotNil(t, doc.Paths.Find("/api/v1/orders/{orderId}/transitions"))
	assert.NotNil(t, doc.Paths.Find("/api/v1/notifications/history"))

	again, err := Load()
	require.NoError(t, err)
	assert.Same(t, doc, again)
}

func TestRegisterSwagger(t *testing.T) {
	require.NoError(t, RegisterSwagger())
	require.NoError(t, RegisterSwagger())

	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &parsed))
	assert.Equal(t, "3.0.3", parsed["openapi"])
}
