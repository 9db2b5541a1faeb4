// Пакет shortcode отвечает за генерацию коротких кодов алиасов.
package shortcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// DefaultLength — длина кода по умолчанию.
const DefaultLength = 8

// alphabet содержит все валидные символы кода: буквы обоих регистров и цифры.
const alphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator генерирует случайные коды фиксированной длины.
// Источник случайности криптографический: живые коды нельзя угадать перебором
// предсказуемого генератора.
type Generator struct {
	length int
}

// New создаёт генератор кодов длины length (<= 0 означает DefaultLength).
func New(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{length: length}
}

// Length возвращает длину генерируемых кодов.
func (g *Generator) Length() int {
	return g.length
}

// Generate возвращает случайный код, равномерно распределённый по алфавиту.
func (g *Generator) Generate() (string, error) {
	result := make([]byte, g.length)
	for i := 0; i < g.length; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(alphabet))))
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}
	return string(result), nil
}

// IsValid проверяет, может ли строка быть кодом, выданным генератором.
func IsValid(code string, length int) bool {
	if len(code) != length {
		return false
	}
	for _, c := range code {
		if !isValidChar(c) {
			return false
		}
	}
	return true
}

func isValidChar(c rune) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
