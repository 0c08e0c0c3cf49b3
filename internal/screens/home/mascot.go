package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/detective/internal/progress"
	"github.com/abhisek/detective/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // default
	MascotCelebrating                      // on a streak
	MascotAlert                            // streak just broken
)

// celebrateStreak is the streak at which the mascot starts cheering.
const celebrateStreak = 3

const mascotIdle = ` ▄███▄
▐█◉ ◉█▌
 ▀─▽─▀
 ┌┴─┴┐
 │ ? │
 └───┘`

const mascotCelebrating = ` ▄███▄
▐█★ ★█▌
 ▀─◡─▀
\┌┴─┴┐/
 │ ! │
 └───┘`

const mascotAlert = ` ▄███▄
▐█◉ ◉█▌ ?
 ▀─△─▀
 ┌┴─┴┐
 │ … │
 └───┘`

// mascotFor picks the variant matching the player's momentum.
func mascotFor(snap progress.Snapshot) MascotVariant {
	switch {
	case snap.CurrentStreak >= celebrateStreak:
		return MascotCelebrating
	case snap.CurrentStreak == 0 && snap.BestStreak > 0:
		return MascotAlert
	default:
		return MascotIdle
	}
}

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(variant MascotVariant) string {
	art := mascotIdle
	fg := theme.ArcadeCyan

	switch variant {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.ArcadeYellow
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
