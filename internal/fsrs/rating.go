package fsrs

import "fmt"

// Rating is the student's assessment of recall quality for one review.
type Rating int

const (
	Again Rating = iota + 1 // failed to recall
	Hard                    // recalled with significant difficulty
	Good                    // recalled with some effort
	Easy                    // recalled effortlessly
)

var ratingNames = [...]string{Again: "Again", Hard: "Hard", Good: "Good", Easy: "Easy"}

// IsValid reports whether r is a valid rating (Again through Easy).
func (r Rating) IsValid() bool {
	return r >= Again && r <= Easy
}

// String returns the name of the rating. For invalid values it returns
// "Rating(n)".
func (r Rating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("Rating(%d)", int(r))
}

// FromCorrect maps a binary outcome to a rating: correct answers review as
// Good, incorrect ones as Again.
func FromCorrect(correct bool) Rating {
	if correct {
		return Good
	}
	return Again
}
