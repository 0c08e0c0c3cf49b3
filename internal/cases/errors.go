package cases

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidChoice is returned when a selected index is not an offered option.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrUnknownCase is returned for a case ID lookup miss.
	ErrUnknownCase = errors.New("unknown case id")

	// ErrUnknownScenario is returned for a scenario ID lookup miss.
	ErrUnknownScenario = errors.New("unknown scenario id")

	// ErrTitleNotFound is returned when no entry in a list has the given title.
	ErrTitleNotFound = errors.New("title not found")
)

// InvalidChoiceError reports an out-of-range option index.
type InvalidChoiceError struct {
	Index   int
	Options int
}

func (e *InvalidChoiceError) Error() string {
	return fmt.Sprintf("invalid choice %d: want 0 <= index < %d", e.Index, e.Options)
}

func (e *InvalidChoiceError) Is(target error) bool { return target == ErrInvalidChoice }

// TitleNotFoundError carries the closest titles so the caller can offer them.
type TitleNotFoundError struct {
	Title       string
	Suggestions []string
}

func (e *TitleNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("no entry titled %q", e.Title)
	}
	return fmt.Sprintf("no entry titled %q (did you mean %s?)", e.Title, quoteJoin(e.Suggestions))
}

func (e *TitleNotFoundError) Is(target error) bool { return target == ErrTitleNotFound }

func quoteJoin(titles []string) string {
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return strings.Join(quoted, " or ")
}
