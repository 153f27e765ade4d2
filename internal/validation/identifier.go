package validation

import (
	"fmt"
	"regexp"
)

// NodeIDPattern определяет допустимый формат идентификатора узла
// Латинские буквы, цифры, дефис (-), нижнее подчеркивание (_)
// Длина: 1-64 символа
var NodeIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ModelNamePattern определяет допустимый формат имени модели
// Латинские буквы, цифры, точка (.), нижнее подчеркивание (_)
// Длина: 1-128 символов
var ModelNamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.]{1,128}$`)

const (
	// MaxRecordIDLen максимальная длина record_id
	MaxRecordIDLen = 255
)

// ValidateNodeID проверяет, что идентификатор узла соответствует требованиям
func ValidateNodeID(nodeID string) error {
	if nodeID == "" {
		return fmt.Errorf("node_id cannot be empty")
	}

	if !NodeIDPattern.MatchString(nodeID) {
		return fmt.Errorf("node_id can only contain letters, numbers, hyphens and underscores (max 64 characters)")
	}

	return nil
}

// ValidateModelName проверяет, что имя модели соответствует требованиям
func ValidateModelName(modelName string) error {
	if modelName == "" {
		return fmt.Errorf("model_name cannot be empty")
	}

	if !ModelNamePattern.MatchString(modelName) {
		return fmt.Errorf("model_name can only contain letters, numbers, dots and underscores (max 128 characters)")
	}

	return nil
}

// ValidateRecordID проверяет record_id. Формат opaque — ограничиваем
// только непустоту и длину.
func ValidateRecordID(recordID string) error {
	if recordID == "" {
		return fmt.Errorf("record_id cannot be empty")
	}

	if len(recordID) > MaxRecordIDLen {
		return fmt.Errorf("record_id must not exceed %d characters", MaxRecordIDLen)
	}

	return nil
}
