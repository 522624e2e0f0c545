package adaptive

import "fmt"

// Difficulty is the ordered difficulty level of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// AllDifficulties returns all levels from easiest to hardest.
func AllDifficulties() []Difficulty {
	return []Difficulty{
		DifficultyEasy,
		DifficultyMedium,
		DifficultyHard,
	}
}

// ParseDifficulty converts a wire label into a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
	}
	return d, nil
}

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	return d.rank() >= 0
}

// rank returns the position of d in the easy < medium < hard order,
// or -1 for an unknown label.
func (d Difficulty) rank() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyMedium:
		return 1
	case DifficultyHard:
		return 2
	default:
		return -1
	}
}

// Increase returns the next harder level, saturating at hard.
// Unknown labels are returned unchanged.
func (d Difficulty) Increase() Difficulty {
	return d.step(1)
}

// Decrease returns the next easier level, saturating at easy.
// Unknown labels are returned unchanged.
func (d Difficulty) Decrease() Difficulty {
	return d.step(-1)
}

func (d Difficulty) step(delta int) Difficulty {
	r := d.rank()
	if r < 0 {
		return d
	}
	levels := AllDifficulties()
	r = max(0, min(len(levels)-1, r+delta))
	return levels[r]
}

// String implements fmt.Stringer.
func (d Difficulty) String() string {
	return string(d)
}
