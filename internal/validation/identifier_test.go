package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestValidateNodeID проверяет валидацию идентификатора узла
func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		nodeID  string
		wantErr bool
	}{
		{"valid simple", "node-1", false},
		{"valid with underscore", "edge_node_42", false},
		{"valid uuid-like", "a1b2c3d4-e5f6-7890-abcd-ef0123456789", false},
		{"empty", "", true},
		{"with spaces", "node 1", true},
		{"with slash", "node/1", true},
		{"too long", strings.Repeat("a", 65), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.nodeID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateModelName проверяет валидацию имени модели
func TestValidateModelName(t *testing.T) {
	tests := []struct {
		name      string
		modelName string
		wantErr   bool
	}{
		{"valid simple", "Document", false},
		{"valid dotted", "inventory.Item", false},
		{"valid underscore", "cctv_camera", false},
		{"empty", "", true},
		{"with hyphen", "my-model", true},
		{"with spaces", "my model", true},
		{"too long", strings.Repeat("m", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModelName(tt.modelName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestValidateRecordID проверяет валидацию record_id
func TestValidateRecordID(t *testing.T) {
	// record_id opaque: допускаются любые непустые строки разумной длины
	assert.NoError(t, ValidateRecordID("42"))
	assert.NoError(t, ValidateRecordID("urn:doc:42/rev-7"))

	assert.Error(t, ValidateRecordID(""))
	assert.Error(t, ValidateRecordID(strings.Repeat("x", 256)))
}
