package dataset

import (
	"fmt"
	"math"
	"math/rand"
)

// Split partitions rows into train and test sets using a seeded shuffle.
// The same rows, fraction and seed always produce the same partition. Both
// partitions are guaranteed non-empty.
func Split(rows []Listing, testFraction float64, seed int64) (train, test []Listing, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction must be in (0, 1), got %v", testFraction)
	}
	n := len(rows)
	if n < 2 {
		return nil, nil, fmt.Errorf("need at least 2 rows to split, got %d", n)
	}

	nTest := int(math.Round(float64(n) * testFraction))
	if nTest < 1 {
		nTest = 1
	}
	if nTest > n-1 {
		nTest = n - 1
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)

	test = make([]Listing, 0, nTest)
	train = make([]Listing, 0, n-nTest)
	for i, idx := range perm {
		if i < nTest {
			test = append(test, rows[idx])
		} else {
			train = append(train, rows[idx])
		}
	}

	return train, test, nil
}
