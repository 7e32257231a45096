package grid

import "fmt"

// ValidateWord checks that w is 1..Size uppercase ASCII letters.
func ValidateWord(w string) error {
	switch {
	case w == "":
		return ErrEmptyWord
	case len(w) > Size:
		return fmt.Errorf("%w: %q has %d letters, max %d", ErrWordTooLong, w, len(w), Size)
	}
	for i := 0; i < len(w); i++ {
		if !isUpper(w[i]) {
			return fmt.Errorf("%w: %q", ErrMalformedWord, w)
		}
	}
	return nil
}

// ValidateWords checks a whole word list: non-empty, every word valid,
// no duplicates, and total letters within Size*Size.
func ValidateWords(words []string) error {
	if len(words) == 0 {
		return ErrNoWords
	}
	seen := make(map[string]struct{}, len(words))
	total := 0
	for _, w := range words {
		if err := ValidateWord(w); err != nil {
			return err
		}
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateWord, w)
		}
		seen[w] = struct{}{}
		total += len(w)
	}
	if total > Size*Size {
		return fmt.Errorf("%w: %d letters for %d cells", ErrOverCapacity, total, Size*Size)
	}
	return nil
}
