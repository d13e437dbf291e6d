// Package puzzle picks the daily word puzzle every member of every circle
// sees, tracks per-user progress and ranks the day's scores.
//
// Selection is a pure function of the calendar date and locale. Two
// independent streams are derived from the same date seed: one orders the
// word bank, the other orders each word's options.
package puzzle

import (
	"sort"
	"time"

	"golang.org/x/text/language"

	"github.com/dukerupert/carecircle/internal/catalog"
)

// DefaultSize is the number of words in a day's puzzle.
const DefaultSize = 5

const dateLayout = "2006-01-02"

const (
	selectionSalt uint64 = 0x5e1ec7
	optionSalt    uint64 = 0x0b7105
)

// Item is one word of the day's puzzle with its options in display order.
type Item struct {
	WordID       string   `json:"word_id"`
	Word         string   `json:"word"`
	Options      []string `json:"shuffled_options"`
	CorrectIndex int      `json:"correct_index"`
}

// Seed turns a YYYY-MM-DD date into the integer YYYYMMDD. Unparseable
// dates seed 0 so the output stays deterministic.
func Seed(date string) int64 {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0
	}
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// mix is splitmix64's finalizer. It is the only source of randomness here.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// selectionValue is the per-index value used to shuffle the word bank.
func selectionValue(seed int64, i int) uint64 {
	return mix(mix(uint64(seed)^selectionSalt) ^ uint64(i))
}

// optionValue is the per-position value used to shuffle one word's options.
func optionValue(seed int64, wordIndex int, firstChar rune, i int) uint64 {
	h := mix(uint64(seed) ^ optionSalt)
	h = mix(h ^ uint64(wordIndex))
	h = mix(h ^ uint64(firstChar))
	return mix(h ^ uint64(i))
}

// Select shuffles the bank by seed and returns the first n words.
func Select(bank []catalog.Word, seed int64, n int) []catalog.Word {
	order := make([]int, len(bank))
	for i := range order {
		order[i] = i
	}
	for i := len(order) - 1; i > 0; i-- {
		j := int(selectionValue(seed, i) % uint64(i+1))
		order[i], order[j] = order[j], order[i]
	}

	if n > len(order) {
		n = len(order)
	}
	out := make([]catalog.Word, n)
	for i := 0; i < n; i++ {
		out[i] = bank[order[i]]
	}
	return out
}

// ShuffleOptions orders the answer and distractors of the word at position
// index of the day's puzzle.
func ShuffleOptions(w catalog.Word, seed int64, index int) Item {
	opts := make([]string, 0, len(w.Distractors)+1)
	opts = append(opts, w.Answer)
	opts = append(opts, w.Distractors...)

	var first rune
	for _, r := range w.Text {
		first = r
		break
	}
	for i := len(opts) - 1; i > 0; i-- {
		j := int(optionValue(seed, index, first, i) % uint64(i+1))
		opts[i], opts[j] = opts[j], opts[i]
	}

	item := Item{WordID: w.ID, Word: w.Text, Options: opts}
	for i, o := range opts {
		if o == w.Answer {
			item.CorrectIndex = i
			break
		}
	}
	return item
}

// Today returns the puzzle for date and locale. n <= 0 uses DefaultSize.
func Today(date, locale string, n int) []Item {
	if n <= 0 {
		n = DefaultSize
	}
	seed := Seed(date)
	words := Select(BankFor(locale), seed, n)
	items := make([]Item, len(words))
	for i, w := range words {
		items[i] = ShuffleOptions(w, seed, i)
	}
	return items
}

var (
	bankLanguages []string
	bankMatcher   language.Matcher
)

func init() {
	bankLanguages = append(bankLanguages, catalog.DefaultLanguage)
	var rest []string
	for lang := range catalog.WordBanks {
		if lang != catalog.DefaultLanguage {
			rest = append(rest, lang)
		}
	}
	sort.Strings(rest)
	bankLanguages = append(bankLanguages, rest...)

	tags := make([]language.Tag, len(bankLanguages))
	for i, lang := range bankLanguages {
		tags[i] = language.Make(lang)
	}
	bankMatcher = language.NewMatcher(tags)
}

// Language returns the word bank language used for locale.
func Language(locale string) string {
	_, idx, conf := bankMatcher.Match(language.Make(locale))
	if conf == language.No {
		return catalog.DefaultLanguage
	}
	return bankLanguages[idx]
}

// BankFor returns the word bank best matching locale.
func BankFor(locale string) []catalog.Word {
	return catalog.WordBanks[Language(locale)]
}
