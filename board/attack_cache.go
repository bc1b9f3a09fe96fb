package board

// AttackCache precomputes, for each cell, the set of cells a queen placed
// there attacks. It turns the per-queen attack recomputation into a
// membership test. The cache depends only on the board dimension, so a
// warmed-up cache may be shared read-only across sessions with the same N.
type AttackCache struct {
	n       int
	attacks [][]bool
}

func NewAttackCache(n int) *AttackCache {
	c := &AttackCache{n: n, attacks: make([][]bool, n*n)}
	for pos := 0; pos < n*n; pos++ {
		attacked := make([]bool, n*n)
		row, col := pos/n, pos%n
		for r := 0; r < n; r++ {
			for col2 := 0; col2 < n; col2++ {
				if r == row && col2 == col {
					continue
				}
				if r == row || col2 == col || r-col2 == row-col || r+col2 == row+col {
					attacked[r*n+col2] = true
				}
			}
		}
		c.attacks[pos] = attacked
	}
	return c
}

func (c *AttackCache) Dim() int {
	return c.n
}

// Attacks reports whether a queen at from attacks target. A cell does not
// attack itself.
func (c *AttackCache) Attacks(from, target int) bool {
	return c.attacks[from][target]
}

// Mark sets attacked[t] for every cell t attacked by a queen at from.
func (c *AttackCache) Mark(from int, attacked []bool) {
	for t, hit := range c.attacks[from] {
		if hit {
			attacked[t] = true
		}
	}
}
