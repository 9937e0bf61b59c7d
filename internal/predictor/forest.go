package predictor

import "math/rand"

// A small in-package random-forest regressor: bootstrap-sampled CART trees
// averaged at prediction time. Deliberately minimal, it only needs to fit
// the sliding-window price dataset built in regression.go.

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

type forest struct {
	trees []*treeNode
}

func fitForest(X [][]float64, y []float64, nTrees, maxDepth int, seed int64) *forest {
	rng := rand.New(rand.NewSource(seed))
	f := &forest{trees: make([]*treeNode, 0, nTrees)}
	for t := 0; t < nTrees; t++ {
		bx := make([][]float64, len(X))
		by := make([]float64, len(y))
		for i := range X {
			j := rng.Intn(len(X))
			bx[i] = X[j]
			by[i] = y[j]
		}
		f.trees = append(f.trees, buildTree(bx, by, 0, maxDepth))
	}
	return f
}

func (f *forest) predict(x []float64) float64 {
	sum := 0.0
	for _, t := range f.trees {
		sum += predictTree(t, x)
	}
	return sum / float64(len(f.trees))
}

func predictTree(n *treeNode, x []float64) float64 {
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

func buildTree(X [][]float64, y []float64, depth, maxDepth int) *treeNode {
	if depth >= maxDepth || len(y) < 2 {
		return &treeNode{leaf: true, value: mean(y)}
	}

	feature, threshold, ok := bestSplit(X, y)
	if !ok {
		return &treeNode{leaf: true, value: mean(y)}
	}

	var lx, rx [][]float64
	var ly, ry []float64
	for i, row := range X {
		if row[feature] <= threshold {
			lx = append(lx, row)
			ly = append(ly, y[i])
		} else {
			rx = append(rx, row)
			ry = append(ry, y[i])
		}
	}
	if len(ly) == 0 || len(ry) == 0 {
		return &treeNode{leaf: true, value: mean(y)}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(lx, ly, depth+1, maxDepth),
		right:     buildTree(rx, ry, depth+1, maxDepth),
	}
}

// bestSplit scans every feature and every adjacent-midpoint threshold for
// the split with minimal summed squared error.
func bestSplit(X [][]float64, y []float64) (feature int, threshold float64, ok bool) {
	bestErr := sse(y)
	nFeatures := len(X[0])

	for f := 0; f < nFeatures; f++ {
		values := make([]float64, len(X))
		for i, row := range X {
			values[i] = row[f]
		}
		for _, th := range candidateThresholds(values) {
			var ly, ry []float64
			for i := range X {
				if X[i][f] <= th {
					ly = append(ly, y[i])
				} else {
					ry = append(ry, y[i])
				}
			}
			if len(ly) == 0 || len(ry) == 0 {
				continue
			}
			if err := sse(ly) + sse(ry); err < bestErr {
				bestErr = err
				feature = f
				threshold = th
				ok = true
			}
		}
	}
	return feature, threshold, ok
}

// candidateThresholds returns midpoints between sorted distinct values.
func candidateThresholds(values []float64) []float64 {
	sorted := append([]float64(nil), values...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	var out []float64
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1] {
			out = append(out, (sorted[i]+sorted[i-1])/2)
		}
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func sse(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum
}
