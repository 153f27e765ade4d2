package sync

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func side(version, baseVersion int64, checksum string) Side {
	return Side{
		ModifiedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Checksum:    checksum,
		Data:        json.RawMessage(`{}`),
		Version:     version,
		BaseVersion: baseVersion,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		local  Side
		remote Side
		want   Classification
	}{
		{
			name:   "identical checksums converge regardless of versions",
			local:  side(5, 3, "aaa"),
			remote: side(7, 4, "aaa"),
			want:   ClassNoConflict,
		},
		{
			name:   "only local advanced",
			local:  side(5, 7, "aaa"),
			remote: side(7, 4, "bbb"),
			want:   ClassLocalWinsClean,
		},
		{
			name:   "only remote advanced",
			local:  side(4, 3, "aaa"),
			remote: side(7, 4, "bbb"),
			want:   ClassRemoteWinsClean,
		},
		{
			// Узел на версии 5, hub на 7, hub видел узел на версии 4:
			// обе стороны ушли вперед от последней общей точки
			name:   "both advanced past last sync",
			local:  side(5, 6, "aaa"),
			remote: side(7, 4, "bbb"),
			want:   ClassConflict,
		},
		{
			// Версии не продвинулись, но содержимое различается:
			// победитель не выбирается молча
			name:   "diverged content without version advance",
			local:  side(4, 7, "aaa"),
			remote: side(7, 4, "bbb"),
			want:   ClassConflict,
		},
		{
			name:   "first change on both sides",
			local:  side(1, 0, "aaa"),
			remote: side(1, 0, "bbb"),
			want:   ClassConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.local, tt.remote))
		})
	}
}

func TestClassify_TimestampsDoNotMatter(t *testing.T) {
	// Дивергенцию определяют версии: более позднее wall-clock время
	// удаленной стороны не делает её победителем
	local := side(5, 6, "aaa")
	remote := side(7, 4, "bbb")
	remote.ModifiedAt = local.ModifiedAt.Add(48 * time.Hour)

	assert.Equal(t, ClassConflict, Classify(local, remote))
}
