package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/duelqueens/duelqueens/game"
)

// ToDisplayText renders the board as a letter grid: each cell shows its
// region letter, and placed queens replace it with the owning player's
// number. Player 1 owns the even-indexed queens; moves strictly
// alternate.
func ToDisplayText(st *game.State) string {
	n := st.N
	letters := regionLetters(st.Regions)

	owner := map[int]int{}
	for i, pos := range st.Queens {
		owner[pos] = 1 + i%2
	}

	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < n; col++ {
		fmt.Fprintf(&sb, "%2d ", col)
	}
	sb.WriteString("\n")
	for row := 0; row < n; row++ {
		fmt.Fprintf(&sb, "%2d ", row)
		for col := 0; col < n; col++ {
			pos := row*n + col
			if p, placed := owner[pos]; placed {
				fmt.Fprintf(&sb, " %d ", p)
			} else {
				fmt.Fprintf(&sb, " %c ", letters[pos])
			}
		}
		sb.WriteString("\n")
	}

	if st.GameOver {
		sb.WriteString(st.Message)
	} else {
		fmt.Fprintf(&sb, "%s (queens %d/%d)", st.Message, len(st.Queens), n)
	}
	return sb.String()
}

// regionLetters maps each cell's region id to a letter, 'a' for the
// smallest id and so on. Ids past 'z' wrap; boards that big are not
// playable in a terminal anyway.
func regionLetters(regions []int) []rune {
	seen := map[int]bool{}
	var ids []int
	for _, id := range regions {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	letterFor := make(map[int]rune, len(ids))
	for i, id := range ids {
		letterFor[id] = rune('a' + i%26)
	}
	out := make([]rune, len(regions))
	for pos, id := range regions {
		out[pos] = letterFor[id]
	}
	return out
}
