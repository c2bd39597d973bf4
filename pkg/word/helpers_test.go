package word_test

import (
	"strings"
	"testing"

	"github.com/NicholasDeLioncourt/phonix/pkg/errors"
	"github.com/NicholasDeLioncourt/phonix/pkg/feature"
	"github.com/NicholasDeLioncourt/phonix/pkg/word"
	"github.com/stretchr/testify/require"
)

// alphabet maps single letters to matrices: one unary feature per letter
// plus a binary "vowel" feature.
type alphabet struct {
	vowel   *feature.Feature
	letters map[rune]*feature.Matrix
}

func newAlphabet(t *testing.T) *alphabet {
	t.Helper()
	set := feature.NewSet()
	vowel, err := set.NewBinary("vowel")
	require.NoError(t, err)

	a := &alphabet{vowel: vowel, letters: map[rune]*feature.Matrix{}}
	for _, r := range "abcdeiouxyz" {
		f, err := set.NewUnary(string(r))
		require.NoError(t, err)
		v := vowel.MinusValue()
		if strings.ContainsRune("aeiou", r) {
			v = vowel.PlusValue()
		}
		a.letters[r] = feature.NewMatrix(f.UnaryValue(), v)
	}
	return a
}

func (a *alphabet) m(r rune) *feature.Matrix { return a.letters[r] }

func (a *alphabet) word(s string) *word.Word {
	ms := make([]*feature.Matrix, 0, len(s))
	for _, r := range s {
		ms = append(ms, a.letters[r])
	}
	return word.New(ms)
}

func (a *alphabet) letter(m *feature.Matrix) string {
	for r, lm := range a.letters {
		if lm.Equal(m) {
			return string(r)
		}
	}
	return "?"
}

func (a *alphabet) spell(w *word.Word) string {
	var b strings.Builder
	for _, m := range w.Matrices() {
		b.WriteString(a.letter(m))
	}
	return b.String()
}

func (a *alphabet) vowels() feature.Matcher {
	return feature.NewMatrixMatcher(a.vowel.PlusValue())
}

// firstSlice returns the slice starting at position i, rightward.
func firstSlice(t *testing.T, w *word.Word, i int, filter feature.Matcher) *word.Slice {
	t.Helper()
	it := w.Slices(word.Rightward, filter)
	for n := 0; n <= i; n++ {
		require.True(t, it.Next())
	}
	return it.Slice()
}

func panicCode(fn func()) (code errors.ErrorCode) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				code = errors.GetErrorCode(err)
				return
			}
			code = errors.ErrUnknown
		}
	}()
	fn()
	return ""
}
