package analysis

import (
	"slices"

	"github.com/nao1215/salesreport/internal/model"
)

type pairKey struct {
	first, second int
}

// FrequentPairs counts, for every unordered pair of distinct products, the
// number of orders containing both, and returns the top pairs by count.
// Ties are ordered by (first product ID, second product ID). Unknown
// products keep an empty name and a zero category.
func FrequentPairs(ds *model.Dataset, top int) []model.ProductPair {
	counts := make(map[pairKey]int)

	lines := ds.Lines()
	for i := 0; i < len(lines); {
		j := i
		for j < len(lines) && lines[j].OrderID == lines[i].OrderID {
			j++
		}

		products := make([]int, 0, j-i)
		for _, l := range lines[i:j] {
			products = append(products, l.ProductID)
		}
		slices.Sort(products)
		products = slices.Compact(products)

		for a := 0; a < len(products); a++ {
			for b := a + 1; b < len(products); b++ {
				counts[pairKey{products[a], products[b]}]++
			}
		}
		i = j
	}

	keys := make([]pairKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b pairKey) int {
		if c := counts[b] - counts[a]; c != 0 {
			return c
		}
		if a.first != b.first {
			return a.first - b.first
		}
		return a.second - b.second
	})

	n := min(max(top, 0), len(keys))
	rows := make([]model.ProductPair, n)
	for i, k := range keys[:n] {
		p1, _ := ds.Product(k.first)
		p2, _ := ds.Product(k.second)
		rows[i] = model.ProductPair{
			ProductID1:   k.first,
			ProductName1: p1.Name,
			CategoryID1:  p1.CategoryID,
			ProductID2:   k.second,
			ProductName2: p2.Name,
			CategoryID2:  p2.CategoryID,
			Orders:       counts[k],
		}
	}
	return rows
}
