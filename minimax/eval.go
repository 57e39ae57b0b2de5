package minimax

import "github.com/aracataca/conecta/board"

// Heuristic weights. These are fixed and hand-tuned; there is no learned
// component. A window is any four consecutive cells along one of the four
// line orientations.
const (
	centerWeight    = 3
	fourInWindow    = 100
	threeInWindow   = 5
	twoInWindow     = 2
	oppThreePenalty = -4
)

// evaluate scores a non-terminal position for the given piece. It rewards
// central influence and near-completions and penalizes imminent opponent
// threats. There is no lookahead here; all lookahead belongs to the search.
func evaluate(b *board.Board, p board.Piece) int {
	score := 0

	// Center-column control. Center cells participate in more winning
	// lines than any others.
	for r := 0; r < board.Rows; r++ {
		if b.Cell(r, board.CenterCol) == p {
			score += centerWeight
		}
	}

	// Horizontal windows.
	for r := 0; r < board.Rows; r++ {
		for c := 0; c <= board.Cols-board.WinLength; c++ {
			score += scoreWindow(b, p, r, c, 0, 1)
		}
	}
	// Vertical windows.
	for r := 0; r <= board.Rows-board.WinLength; r++ {
		for c := 0; c < board.Cols; c++ {
			score += scoreWindow(b, p, r, c, 1, 0)
		}
	}
	// Down-right diagonal windows.
	for r := 0; r <= board.Rows-board.WinLength; r++ {
		for c := 0; c <= board.Cols-board.WinLength; c++ {
			score += scoreWindow(b, p, r, c, 1, 1)
		}
	}
	// Up-right diagonal windows.
	for r := board.WinLength - 1; r < board.Rows; r++ {
		for c := 0; c <= board.Cols-board.WinLength; c++ {
			score += scoreWindow(b, p, r, c, -1, 1)
		}
	}
	return score
}

// scoreWindow scores the four cells starting at (r, c) and stepping by
// (dr, dc). Windows containing both pieces contribute nothing.
func scoreWindow(b *board.Board, p board.Piece, r, c, dr, dc int) int {
	opp := p.Other()
	var own, theirs, empty int
	for i := 0; i < board.WinLength; i++ {
		switch b.Cell(r+i*dr, c+i*dc) {
		case p:
			own++
		case opp:
			theirs++
		default:
			empty++
		}
	}
	switch {
	case own == 4:
		return fourInWindow
	case own == 3 && empty == 1:
		return threeInWindow
	case own == 2 && empty == 2:
		return twoInWindow
	case theirs == 3 && empty == 1:
		return oppThreePenalty
	}
	return 0
}
