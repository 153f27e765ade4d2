// Package checksum вычисляет контрольные суммы payload записей синхронизации.
// Канонизация обязана быть детерминированной: логически одинаковые payload
// должны давать одинаковый hash независимо от порядка ключей в исходном JSON.
package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Tombstone маркер удаленной сущности. Для operation=delete checksum
// вычисляется по этому маркеру, а не по отсутствующим данным.
var Tombstone = json.RawMessage(`{"_deleted":true}`)

// Canonicalize приводит JSON к канонической форме: стабильный порядок
// ключей на всех уровнях вложенности, без незначащих пробелов.
// encoding/json сериализует map-ключи в отсортированном порядке, поэтому
// достаточно декодировать в промежуточное представление и закодировать обратно.
// Числа декодируются как json.Number: float64 теряет целые за пределами
// 2^53, и разные payload давали бы одинаковый checksum.
func Canonicalize(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot canonicalize empty payload")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid payload json: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("invalid payload json: trailing data")
	}

	canonical, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode payload: %w", err)
	}

	return canonical, nil
}

// Sum возвращает hex-encoded SHA-256 канонизированного payload
func Sum(data []byte) (string, error) {
	canonical, err := Canonicalize(data)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(canonical)
	return hex.EncodeToString(hash[:]), nil
}

// SumTombstone возвращает checksum маркера удаления.
// Детерминирован, поэтому delete одной и той же сущности на разных
// узлах дает одинаковый checksum.
func SumTombstone() string {
	// Tombstone уже каноничен
	hash := sha256.Sum256(Tombstone)
	return hex.EncodeToString(hash[:])
}

// Verify проверяет соответствие payload сохраненному checksum.
// Несовпадение означает повреждение данных: запись нельзя применять.
func Verify(data []byte, expected string) error {
	if expected == "" {
		return fmt.Errorf("checksum cannot be empty")
	}

	computed, err := Sum(data)
	if err != nil {
		return fmt.Errorf("failed to compute checksum: %w", err)
	}

	if computed != expected {
		return fmt.Errorf("checksum mismatch: expected %s, computed %s", expected, computed)
	}

	return nil
}
