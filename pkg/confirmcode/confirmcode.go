package confirmcode

import (
	"crypto/rand"
	"fmt"
)

// CodeLength длина кода подтверждения
const CodeLength = 8

// alphabet — 36 символов, ~41 бит энтропии на код из 8 символов.
// Код не является криптографическим секретом и не используется для аутентификации.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxUnbiasedByte — граница отбрасывания: 252 = 7*36. Байты 252-255 дали бы
// символам A-D лишнюю вероятность 8/256 против 7/256 у остальных
const maxUnbiasedByte = len(alphabet) * (256 / len(alphabet))

// Generate генерирует код подтверждения из 8 символов [A-Z0-9],
// равномерно распределённых по алфавиту
func Generate() (string, error) {
	code := make([]byte, 0, CodeLength)
	buf := make([]byte, 2*CodeLength)

	for len(code) < CodeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("confirmcode: failed to read random bytes: %w", err)
		}
		code = appendUnbiased(code, buf)
	}
	return string(code[:CodeLength]), nil
}

// appendUnbiased отображает случайные байты в символы алфавита методом
// отбрасывания: байты вне [0, maxUnbiasedByte) пропускаются, остальные дают
// каждый символ ровно с 7 прообразами
func appendUnbiased(dst, src []byte) []byte {
	for _, b := range src {
		if int(b) >= maxUnbiasedByte {
			continue
		}
		dst = append(dst, alphabet[int(b)%len(alphabet)])
	}
	return dst
}

// Matches сравнивает сохранённый и предъявленный коды
// Сравнение точное, с учётом регистра
func Matches(stored, supplied string) bool {
	return stored != "" && stored == supplied
}
