package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

func TestExtractFieldName(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid field URI", "orderform://fields/customer_name", "customer_name"},
		{"invalid prefix", "file://fields/customer_name", ""},
		{"schema URI", "orderform://schema", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractFieldName(tt.uri))
		})
	}
}

func TestServer_handleSchemaResource(t *testing.T) {
	server := newTestServer(t)

	result, err := server.handleSchemaResource(context.Background(), makeReadResourceRequest("orderform://schema"))

	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	var fields []fieldInfo
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &fields))
	require.Len(t, fields, domain.DefaultSchema().Len())
	assert.Equal(t, domain.FieldCustomerName, fields[0].Name)
	assert.Equal(t, "input_source", fields[0].Step)
	assert.True(t, fields[0].Required)
}

func TestServer_handleFieldResource(t *testing.T) {
	ctx := context.Background()
	server := newTestServer(t)

	t.Run("conditional field", func(t *testing.T) {
		uri := "orderform://fields/" + domain.FieldAddendumEffectiveDate
		result, err := server.handleFieldResource(ctx, makeReadResourceRequest(uri))

		require.NoError(t, err)
		var field fieldInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &field))
		assert.Equal(t, domain.FieldAddendumEffectiveDate, field.Name)
		assert.Equal(t, "date", field.Type)
		assert.False(t, field.Required)
		assert.Contains(t, field.RequiredWhen, domain.FieldOpportunityType)
	})

	t.Run("field with default", func(t *testing.T) {
		uri := "orderform://fields/" + domain.FieldSubscriptionTerm
		result, err := server.handleFieldResource(ctx, makeReadResourceRequest(uri))

		require.NoError(t, err)
		var field fieldInfo
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &field))
		assert.Equal(t, "12", field.Default)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := server.handleFieldResource(ctx, makeReadResourceRequest("orderform://fields/nope"))
		assert.Error(t, err)
	})

	t.Run("malformed URI", func(t *testing.T) {
		_, err := server.handleFieldResource(ctx, makeReadResourceRequest("orderform://other"))
		assert.Error(t, err)
	})
}
