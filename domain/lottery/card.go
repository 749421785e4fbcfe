package lottery

// The card is a 5x5 grid numbered row by row: row 1 holds 1..5, row 5 holds 21..25.
const cardSide = 5

// molduraMask covers the 16 border positions of the card
var molduraMask = func() Mask {
	var m Mask
	for n := MinNumber; n <= MaxNumber; n++ {
		row, col := CardPosition(n)
		if row == 0 || row == cardSide-1 || col == 0 || col == cardSide-1 {
			m |= 1 << uint(n-1)
		}
	}
	return m
}()

// CardPosition returns the zero-based row and column of n on the card
func CardPosition(n int) (row, col int) {
	return (n - 1) / cardSide, (n - 1) % cardSide
}

// IsMoldura reports whether n sits on the border of the card
func IsMoldura(n int) bool {
	return molduraMask.Has(n)
}

// CardFeatures describes how a combination is spread over the card
type CardFeatures struct {
	Moldura int           `json:"moldura"`
	Centro  int           `json:"centro"`
	Linhas  [cardSide]int `json:"linhas"`
	Colunas [cardSide]int `json:"colunas"`
}

// Features computes the card layout features of the combination
func (c Combination) Features() CardFeatures {
	var f CardFeatures
	for _, n := range c {
		row, col := CardPosition(n)
		f.Linhas[row]++
		f.Colunas[col]++
	}
	f.Moldura = c.Mask().Overlap(molduraMask)
	f.Centro = DrawSize - f.Moldura
	return f
}
