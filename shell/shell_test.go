package shell

import (
	"testing"

	"github.com/matryer/is"

	"github.com/aracataca/conecta/board"
)

func TestParseColumn(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCol int
		expErr bool
	}
	cases := []testdata{
		{"0", 0, false},
		{"6", 6, false},
		{" 3 ", 3, false},
		{"7", 0, true},
		{"-1", 0, true},
		{"three", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		col, err := parseColumn(tc.line)
		is.Equal(err != nil, tc.expErr)
		if err == nil {
			is.Equal(col, tc.expCol)
		}
	}
}

func TestParseDifficulty(t *testing.T) {
	is := is.New(t)

	d, err := parseDifficulty("")
	is.NoErr(err)
	is.Equal(d, DefaultDifficulty)

	d, err = parseDifficulty("5")
	is.NoErr(err)
	is.Equal(d, 5)

	_, err = parseDifficulty("0")
	is.True(err != nil)

	_, err = parseDifficulty("6")
	is.True(err != nil)

	_, err = parseDifficulty("hard")
	is.True(err != nil)
}

func TestParseSetboard(t *testing.T) {
	is := is.New(t)

	rows := "......./......./......./......./....O../.XXX..."
	b, onturn, err := parseSetboard(rows + " O")
	is.NoErr(err)
	is.Equal(onturn, board.O)
	is.Equal(b.Cell(4, 4), board.O)
	is.Equal(b.Cell(5, 1), board.X)
	is.Equal(b.Filled(), 4)

	_, onturn, err = parseSetboard(rows + " x")
	is.NoErr(err) // side is case-insensitive
	is.Equal(onturn, board.X)

	_, _, err = parseSetboard(rows)
	is.True(err != nil) // missing side to move

	_, _, err = parseSetboard(rows + " Z")
	is.True(err != nil)

	_, _, err = parseSetboard("....... X")
	is.True(err != nil) // wrong number of rows

	// Floating piece: an X above an empty cell.
	_, _, err = parseSetboard("......./......./......./....X../......./....... X")
	is.True(err != nil)
}

func TestAutoplayArgs(t *testing.T) {
	is := is.New(t)

	games, threads, depths, err := autoplayArgs("autoplay", 3)
	is.NoErr(err)
	is.Equal(games, 20)
	is.Equal(threads, 4)
	is.Equal(depths, [2]int{3, 3})

	games, threads, depths, err = autoplayArgs("autoplay 100 8 2 4", 3)
	is.NoErr(err)
	is.Equal(games, 100)
	is.Equal(threads, 8)
	is.Equal(depths, [2]int{2, 4})

	_, _, _, err = autoplayArgs("autoplay ten", 3)
	is.True(err != nil)

	_, _, _, err = autoplayArgs("autoplay 1 1 1 1 1", 3)
	is.True(err != nil)

	_, _, _, err = autoplayArgs("autoplay 0", 3)
	is.True(err != nil)
}

func TestModeFromStr(t *testing.T) {
	is := is.New(t)

	m, err := modeFromStr("standard")
	is.NoErr(err)
	is.Equal(m, StandardMode)

	m, err = modeFromStr("endgame")
	is.True(err != nil)
	is.Equal(m, InvalidMode)
}
