package boost

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Node is one node of a fitted regression tree. Fields are exported so trees
// gob-encode inside the persisted model artifact.
type Node struct {
	Leaf      bool
	Value     float64 // leaf output (mean residual of the node's samples)
	Feature   int
	Threshold float64
	Left      *Node
	Right     *Node
}

// predict walks the tree for one feature row. Samples with a feature value
// at or below the threshold go left.
func (n *Node) predict(x []float64) float64 {
	for !n.Leaf {
		if x[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Value
}

// splitCandidate is the best split found for a single feature.
type splitCandidate struct {
	ok        bool
	sse       float64
	threshold float64
}

// treeBuilder grows a single regression tree on the current residuals.
type treeBuilder struct {
	x        *mat.Dense
	residual []float64
	maxDepth int
	minLeaf  int
	workers  int
}

func newTreeBuilder(x *mat.Dense, residual []float64, maxDepth, minLeaf int) *treeBuilder {
	return &treeBuilder{
		x:        x,
		residual: residual,
		maxDepth: maxDepth,
		minLeaf:  minLeaf,
		workers:  runtime.GOMAXPROCS(0),
	}
}

func (b *treeBuilder) build(samples []int, depth int) *Node {
	if depth >= b.maxDepth || len(samples) < 2*b.minLeaf {
		return b.leaf(samples)
	}

	feature, split, ok := b.bestSplit(samples)
	if !ok {
		return b.leaf(samples)
	}

	var left, right []int
	for _, i := range samples {
		if b.x.At(i, feature) <= split.threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.minLeaf || len(right) < b.minLeaf {
		return b.leaf(samples)
	}

	return &Node{
		Feature:   feature,
		Threshold: split.threshold,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

func (b *treeBuilder) leaf(samples []int) *Node {
	var sum float64
	for _, i := range samples {
		sum += b.residual[i]
	}
	value := 0.0
	if len(samples) > 0 {
		value = sum / float64(len(samples))
	}
	return &Node{Leaf: true, Value: value}
}

// bestSplit searches every feature for the split minimizing the summed
// squared error of the two children. Features are evaluated concurrently;
// the reduce runs in feature-index order with a strict comparison, so the
// outcome is independent of goroutine scheduling.
func (b *treeBuilder) bestSplit(samples []int) (int, splitCandidate, bool) {
	_, nFeatures := b.x.Dims()

	candidates := make([]splitCandidate, nFeatures)
	g := new(errgroup.Group)
	g.SetLimit(b.workers)
	for j := 0; j < nFeatures; j++ {
		j := j
		g.Go(func() error {
			candidates[j] = b.bestSplitForFeature(samples, j)
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	bestFeature := -1
	var best splitCandidate
	for j, c := range candidates {
		if !c.ok {
			continue
		}
		if bestFeature == -1 || c.sse < best.sse {
			bestFeature = j
			best = c
		}
	}
	if bestFeature == -1 {
		return 0, splitCandidate{}, false
	}
	return bestFeature, best, true
}

func (b *treeBuilder) bestSplitForFeature(samples []int, feature int) splitCandidate {
	n := len(samples)

	type pair struct {
		value  float64
		target float64
	}
	pairs := make([]pair, n)
	for k, i := range samples {
		pairs[k] = pair{value: b.x.At(i, feature), target: b.residual[i]}
	}
	sort.Slice(pairs, func(a, c int) bool { return pairs[a].value < pairs[c].value })

	var totalSum, totalSq float64
	for _, p := range pairs {
		totalSum += p.target
		totalSq += p.target * p.target
	}

	best := splitCandidate{}
	var leftSum, leftSq float64

	for k := 0; k < n-1; k++ {
		leftSum += pairs[k].target
		leftSq += pairs[k].target * pairs[k].target

		// No threshold separates equal values.
		if pairs[k].value == pairs[k+1].value {
			continue
		}

		nLeft := k + 1
		nRight := n - nLeft
		if nLeft < b.minLeaf || nRight < b.minLeaf {
			continue
		}

		rightSum := totalSum - leftSum
		rightSq := totalSq - leftSq
		sse := (leftSq - leftSum*leftSum/float64(nLeft)) +
			(rightSq - rightSum*rightSum/float64(nRight))

		if !best.ok || sse < best.sse {
			best = splitCandidate{
				ok:        true,
				sse:       sse,
				threshold: (pairs[k].value + pairs[k+1].value) / 2,
			}
		}
	}

	return best
}
