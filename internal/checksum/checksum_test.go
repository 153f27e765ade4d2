package checksum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSum_Deterministic проверяет, что логически одинаковые payload
// дают одинаковый checksum независимо от порядка ключей
func TestSum_Deterministic(t *testing.T) {
	a := []byte(`{"title":"hello","tags":["x","y"],"count":3}`)
	b := []byte(`{"count":3,"tags":["x","y"],"title":"hello"}`)

	sumA, err := Sum(a)
	require.NoError(t, err)

	sumB, err := Sum(b)
	require.NoError(t, err)

	assert.Equal(t, sumA, sumB)
	assert.Len(t, sumA, 64) // hex-encoded SHA-256
}

// TestSum_NestedKeyOrder проверяет канонизацию на вложенных объектах
func TestSum_NestedKeyOrder(t *testing.T) {
	a := []byte(`{"outer":{"b":2,"a":1},"z":true}`)
	b := []byte(`{"z":true,"outer":{"a":1,"b":2}}`)

	sumA, err := Sum(a)
	require.NoError(t, err)

	sumB, err := Sum(b)
	require.NoError(t, err)

	assert.Equal(t, sumA, sumB)
}

// TestSum_DifferentPayloads проверяет, что разные данные дают разные суммы
func TestSum_DifferentPayloads(t *testing.T) {
	sumA, err := Sum([]byte(`{"title":"hello"}`))
	require.NoError(t, err)

	sumB, err := Sum([]byte(`{"title":"world"}`))
	require.NoError(t, err)

	assert.NotEqual(t, sumA, sumB)
}

// TestSum_LargeIntegerPrecision проверяет, что целые за пределами
// точности float64 не схлопываются при канонизации: соседние значения
// около 2^53 обязаны давать разные checksum
func TestSum_LargeIntegerPrecision(t *testing.T) {
	sumA, err := Sum([]byte(`{"v":9007199254740992}`))
	require.NoError(t, err)

	sumB, err := Sum([]byte(`{"v":9007199254740993}`))
	require.NoError(t, err)

	assert.NotEqual(t, sumA, sumB)

	// Подмена значения не проходит сверку
	err = Verify([]byte(`{"v":9007199254740993}`), sumA)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

// TestCanonicalize_PreservesNumberText проверяет, что цифры числа
// переносятся в каноническую форму дословно
func TestCanonicalize_PreservesNumberText(t *testing.T) {
	canonical, err := Canonicalize([]byte(`{"b": 9007199254740993, "a": 1}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":9007199254740993}`, string(canonical))
}

// TestSum_InvalidJSON проверяет ошибку на некорректном payload
func TestSum_InvalidJSON(t *testing.T) {
	_, err := Sum([]byte(`{not json`))
	assert.Error(t, err)

	_, err = Sum(nil)
	assert.Error(t, err)
}

// TestSumTombstone проверяет детерминированность checksum маркера удаления
func TestSumTombstone(t *testing.T) {
	first := SumTombstone()
	second := SumTombstone()
	assert.Equal(t, first, second)

	// Должен совпадать с обычным Sum по маркеру
	viaSum, err := Sum(Tombstone)
	require.NoError(t, err)
	assert.Equal(t, viaSum, first)
}

// TestVerify проверяет сверку checksum
func TestVerify(t *testing.T) {
	data := []byte(`{"title":"hello"}`)

	sum, err := Sum(data)
	require.NoError(t, err)

	// Тот же payload с другим порядком байт ключей проходит проверку
	assert.NoError(t, Verify([]byte(`{"title": "hello"}`), sum))

	// Поврежденные данные не проходят
	err = Verify([]byte(`{"title":"tampered"}`), sum)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")

	// Пустой expected checksum — ошибка
	assert.Error(t, Verify(data, ""))
}
