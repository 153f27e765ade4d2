package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iudanet/syncpoint/internal/checksum"
	"github.com/iudanet/syncpoint/internal/hub/storage"
	"github.com/iudanet/syncpoint/internal/models"
	"github.com/iudanet/syncpoint/internal/validation"
	"github.com/iudanet/syncpoint/pkg/api"
)

// SyncStorage определяет интерфейс хранилища для обработчиков синхронизации
type SyncStorage interface {
	ApplyRecord(ctx context.Context, nodeID string, record api.RemoteRecord) (*storage.ApplyResult, error)
	ListSince(ctx context.Context, nodeID, modelName string, since int64) ([]*models.HubRecord, error)
	GetHubVersions(ctx context.Context) (map[string]int64, error)
	NodeBase(ctx context.Context, nodeID, modelName string) (int64, error)
	ListConflicts(ctx context.Context, limit int) ([]*models.HubConflict, error)
}

// SyncHandler handles push/pull requests from nodes
type SyncHandler struct {
	logger  *slog.Logger
	storage SyncStorage
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(logger *slog.Logger, storage SyncStorage) *SyncHandler {
	return &SyncHandler{
		logger:  logger,
		storage: storage,
	}
}

// HandlePush обрабатывает POST /api/v1/sync/push
// Применяет пакет изменений узла. Записи с устаревшей базой отклоняются,
// их текущее состояние возвращается узлу для локального разрешения.
func (h *SyncHandler) HandlePush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "only POST is allowed")
		return
	}

	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode push request", "error", err)
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid request body")
		return
	}

	if err := validation.ValidateNodeID(req.NodeID); err != nil {
		h.logger.Warn("Push with invalid node id", "node_id", req.NodeID, "error", err)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.logger.Info("Push request", "node_id", req.NodeID, "records_count", len(req.Records))

	resp := api.PushResponse{}

	for i, record := range req.Records {
		if err := validateWireRecord(record); err != nil {
			h.logger.Warn("Push record rejected",
				"node_id", req.NodeID,
				"record_id", record.RecordID,
				"error", err)
			writeError(w, http.StatusBadRequest, "invalid_record",
				fmt.Sprintf("record %d: %s", i, err))
			return
		}

		result, err := h.storage.ApplyRecord(ctx, req.NodeID, record)
		if err != nil {
			h.logger.Error("Failed to apply record",
				"error", err,
				"node_id", req.NodeID,
				"record_id", record.RecordID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}

		switch result.Outcome {
		case storage.ApplyOutcomeApplied:
			resp.Accepted++
		case storage.ApplyOutcomeDuplicate:
			resp.Duplicates++
		case storage.ApplyOutcomeConflict:
			resp.Conflicts++

			wire, err := h.toWireRecord(ctx, req.NodeID, result.Current)
			if err != nil {
				h.logger.Error("Failed to build conflict record", "error", err)
				writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
				return
			}
			resp.ConflictRecords = append(resp.ConflictRecords, wire)
		}
	}

	versions, err := h.storage.GetHubVersions(ctx)
	if err != nil {
		h.logger.Error("Failed to get hub versions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	resp.HubVersions = versions

	writeJSON(w, h.logger, resp)

	h.logger.Info("Push completed",
		"node_id", req.NodeID,
		"accepted", resp.Accepted,
		"duplicates", resp.Duplicates,
		"conflicts", resp.Conflicts)
}

// HandlePull обрабатывает GET /api/v1/sync/pull?node_id=&model=&since=
// Возвращает записи модели, применённые на hub после версии since,
// кроме записей самого запрашивающего узла
func (h *SyncHandler) HandlePull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "only GET is allowed")
		return
	}

	nodeID := r.URL.Query().Get("node_id")
	if err := validation.ValidateNodeID(nodeID); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	modelName := r.URL.Query().Get("model")
	if err := validation.ValidateModelName(modelName); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var since int64
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		var err error
		since, err = strconv.ParseInt(sinceStr, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid since parameter")
			return
		}
	}

	h.logger.Info("Pull request", "node_id", nodeID, "model", modelName, "since", since)

	records, err := h.storage.ListSince(ctx, nodeID, modelName, since)
	if err != nil {
		h.logger.Error("Failed to list records", "error", err, "model", modelName)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	resp := api.PullResponse{
		Records: make([]api.RemoteRecord, 0, len(records)),
	}

	for _, record := range records {
		wire, err := h.toWireRecord(ctx, nodeID, record)
		if err != nil {
			h.logger.Error("Failed to build pull record", "error", err)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			return
		}
		resp.Records = append(resp.Records, wire)
	}

	versions, err := h.storage.GetHubVersions(ctx)
	if err != nil {
		h.logger.Error("Failed to get hub versions", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	resp.HubVersions = versions

	writeJSON(w, h.logger, resp)

	h.logger.Info("Pull completed", "node_id", nodeID, "model", modelName, "records_count", len(resp.Records))
}

// HandleConflicts обрабатывает GET /api/v1/sync/conflicts?limit=
// Возвращает журнал отклонённых push-записей, новые первыми
func (h *SyncHandler) HandleConflicts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "only GET is allowed")
		return
	}

	var limit int
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "invalid limit parameter")
			return
		}
	}

	conflicts, err := h.storage.ListConflicts(ctx, limit)
	if err != nil {
		h.logger.Error("Failed to list conflicts", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	if conflicts == nil {
		conflicts = []*models.HubConflict{}
	}

	writeJSON(w, h.logger, conflicts)
}

// toWireRecord конвертирует запись hub в wire-формат для узла.
// BaseVersion заполняется последней версией, принятой от этого узла:
// по ней узел определяет, менялась ли его локальная копия.
func (h *SyncHandler) toWireRecord(ctx context.Context, nodeID string, record *models.HubRecord) (api.RemoteRecord, error) {
	base, err := h.storage.NodeBase(ctx, nodeID, record.ModelName)
	if err != nil {
		return api.RemoteRecord{}, fmt.Errorf("failed to get node base: %w", err)
	}

	return api.RemoteRecord{
		ModifiedAt:    record.ModifiedAt,
		ModelName:     record.ModelName,
		RecordID:      record.RecordID,
		Operation:     string(record.Operation),
		Checksum:      record.Checksum,
		SourceNode:    record.SourceNode,
		Data:          record.Data,
		SourceVersion: record.HubVersion,
		BaseVersion:   base,
	}, nil
}

// validateWireRecord проверяет идентификаторы и целостность данных записи
func validateWireRecord(record api.RemoteRecord) error {
	if err := validation.ValidateModelName(record.ModelName); err != nil {
		return err
	}
	if err := validation.ValidateRecordID(record.RecordID); err != nil {
		return err
	}
	if record.SourceVersion <= 0 {
		return errors.New("source version must be positive")
	}
	if err := checksum.Verify(record.Data, record.Checksum); err != nil {
		return err
	}
	return nil
}

// writeJSON сериализует успешный ответ
func writeJSON(w http.ResponseWriter, logger *slog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError сериализует ошибку в формате api.ErrorResponse
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   code,
		Message: message,
	})
}
