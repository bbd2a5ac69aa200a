package header

import (
	"strings"
	"sync"
	"unicode"

	"github.com/kljensen/snowball"
)

// Stemmer сводит русские слова к основе алгоритмом Snowball.
// Результаты кэшируются, экземпляр безопасен для параллельного использования.
type Stemmer struct {
	mu    sync.RWMutex
	cache map[string]string
}

// NewStemmer создает стеммер с пустым кэшем.
func NewStemmer() *Stemmer {
	return &Stemmer{cache: make(map[string]string)}
}

// Stem возвращает основу слова. Если Snowball не справился, возвращается
// приведённое к нижнему регистру слово.
// Пример: "мобильного" -> "мобильн", "телефона" -> "телефон"
func (s *Stemmer) Stem(word string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(word)), "ё", "е")
	if normalized == "" {
		return ""
	}

	s.mu.RLock()
	cached, found := s.cache[normalized]
	s.mu.RUnlock()
	if found {
		return cached
	}

	stemmed, err := snowball.Stem(normalized, "russian", true)
	if err != nil || stemmed == "" {
		stemmed = normalized
	}

	s.mu.Lock()
	s.cache[normalized] = stemmed
	s.mu.Unlock()
	return stemmed
}

// Stems разбивает текст на слова и возвращает множество их основ.
// Однобуквенные слова и знаки препинания отбрасываются.
func (s *Stemmer) Stems(text string) map[string]bool {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make(map[string]bool, len(words))
	for _, w := range words {
		if len([]rune(w)) < 2 {
			continue
		}
		if st := s.Stem(w); st != "" {
			out[st] = true
		}
	}
	return out
}

// Hint предположение о поле для колонки, заголовок которой не совпал ни
// с одним синонимом.
type Hint struct {
	Column  int    `json:"column"`
	Header  string `json:"header"`
	Field   Field  `json:"field"`
	Synonym string `json:"synonym"`
}

// Suggest подбирает поля для незанятых колонок заголовка по общим основам
// слов с синонимами. Поля, уже получившие колонку, не предлагаются.
// Побеждает синоним с наибольшим числом общих основ, при равенстве более
// ранний по порядку Fields.
func Suggest(st *Stemmer, syn Synonyms, hdr Row, cols ColumnMap) []Hint {
	used := make(map[int]bool, cols.Len())
	for _, f := range Fields {
		if i, ok := cols.Index(f); ok {
			used[i] = true
		}
	}

	var hints []Hint
	for i, raw := range hdr.Raw {
		if used[i] || strings.TrimSpace(raw) == "" {
			continue
		}
		stems := st.Stems(raw)
		if len(stems) == 0 {
			continue
		}

		best := Hint{Column: i, Header: raw}
		bestScore := 0
		for _, f := range Fields {
			if cols.Has(f) {
				continue
			}
			for _, variant := range syn[f] {
				score := 0
				for stem := range st.Stems(variant) {
					if stems[stem] {
						score++
					}
				}
				if score > bestScore {
					bestScore = score
					best.Field = f
					best.Synonym = variant
				}
			}
		}
		if bestScore > 0 {
			hints = append(hints, best)
		}
	}
	return hints
}
