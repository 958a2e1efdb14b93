package risk

import (
	"math"
	"math/rand/v2"
	"slices"
)

// node is one node of a flattened CART tree. Leaves have Feature -1.
type node struct {
	Feature   int       `json:"f"`
	Threshold float64   `json:"t,omitempty"`
	Left      int       `json:"l,omitempty"`
	Right     int       `json:"r,omitempty"`
	Probs     []float64 `json:"p,omitempty"`
}

type tree struct {
	Nodes []node `json:"nodes"`
}

func (t *tree) predict(x []float64) []float64 {
	i := 0
	for t.Nodes[i].Feature >= 0 {
		n := t.Nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Probs
}

type forestParams struct {
	trees       int
	maxDepth    int
	minSplit    int
	maxFeatures int
}

type forest struct {
	Trees      []tree    `json:"trees"`
	Importance []float64 `json:"importance"` // mean Gini decrease, sums to 1
	Classes    int       `json:"classes"`
}

func (f *forest) predictProba(x []float64) []float64 {
	out := make([]float64, f.Classes)
	for i := range f.Trees {
		for c, p := range f.Trees[i].predict(x) {
			out[c] += p
		}
	}
	for c := range out {
		out[c] /= float64(len(f.Trees))
	}
	return out
}

// trainForest fits a random forest of CART trees with bootstrap samples
// and a random feature subset at every split.
func trainForest(X [][]float64, y []int, classes int, p forestParams, rng *rand.Rand) *forest {
	nFeat := len(X[0])
	f := &forest{Classes: classes, Importance: make([]float64, nFeat)}

	for range p.trees {
		sample := make([]int, len(X))
		for i := range sample {
			sample[i] = rng.IntN(len(X))
		}
		b := &builder{X: X, y: y, classes: classes, params: p, rng: rng, imp: make([]float64, nFeat), total: len(sample)}
		b.build(sample, 0)

		sum := 0.0
		for _, v := range b.imp {
			sum += v
		}
		if sum > 0 {
			for i, v := range b.imp {
				f.Importance[i] += v / sum
			}
		}
		f.Trees = append(f.Trees, b.tree)
	}

	sum := 0.0
	for _, v := range f.Importance {
		sum += v
	}
	if sum > 0 {
		for i := range f.Importance {
			f.Importance[i] /= sum
		}
	}
	return f
}

type builder struct {
	X       [][]float64
	y       []int
	classes int
	params  forestParams
	rng     *rand.Rand
	tree    tree
	imp     []float64
	total   int
}

// build grows the subtree for the samples in idx and returns its node index.
func (b *builder) build(idx []int, depth int) int {
	counts := b.counts(idx)
	self := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, node{Feature: -1})

	parent := gini(counts, len(idx))
	if depth >= b.params.maxDepth || len(idx) < b.params.minSplit || parent == 0 {
		b.tree.Nodes[self].Probs = probs(counts, len(idx))
		return self
	}

	feat, thr, gain := b.bestSplit(idx, parent)
	if feat < 0 {
		b.tree.Nodes[self].Probs = probs(counts, len(idx))
		return self
	}

	var left, right []int
	for _, i := range idx {
		if b.X[i][feat] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	b.imp[feat] += float64(len(idx)) / float64(b.total) * gain

	l := b.build(left, depth+1)
	r := b.build(right, depth+1)
	b.tree.Nodes[self] = node{Feature: feat, Threshold: thr, Left: l, Right: r}
	return self
}

// bestSplit searches a random subset of features for the threshold with
// the largest impurity decrease. It returns feature -1 when no split
// separates the samples.
func (b *builder) bestSplit(idx []int, parent float64) (int, float64, float64) {
	nFeat := len(b.X[0])
	cand := b.rng.Perm(nFeat)[:b.params.maxFeatures]

	bestFeat, bestThr, bestGain := -1, 0.0, 0.0
	sorted := slices.Clone(idx)
	n := float64(len(idx))

	for _, feat := range cand {
		slices.SortFunc(sorted, func(a, c int) int { return cmpFloat(b.X[a][feat], b.X[c][feat]) })

		left := make([]int, b.classes)
		right := b.counts(sorted)
		for k := 0; k < len(sorted)-1; k++ {
			cls := b.y[sorted[k]]
			left[cls]++
			right[cls]--

			v, next := b.X[sorted[k]][feat], b.X[sorted[k+1]][feat]
			if v == next {
				continue
			}
			nl, nr := float64(k+1), n-float64(k+1)
			child := nl/n*gini(left, k+1) + nr/n*gini(right, len(sorted)-k-1)
			if gain := parent - child; gain > bestGain {
				bestFeat, bestThr, bestGain = feat, (v+next)/2, gain
			}
		}
	}
	return bestFeat, bestThr, bestGain
}

func (b *builder) counts(idx []int) []int {
	c := make([]int, b.classes)
	for _, i := range idx {
		c[b.y[i]]++
	}
	return c
}

func gini(counts []int, n int) float64 {
	if n == 0 {
		return 0
	}
	g := 1.0
	for _, c := range counts {
		p := float64(c) / float64(n)
		g -= p * p
	}
	return math.Max(g, 0)
}

func probs(counts []int, n int) []float64 {
	p := make([]float64, len(counts))
	for i, c := range counts {
		p[i] = float64(c) / float64(n)
	}
	return p
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// scaler standardizes each feature to zero mean and unit variance.
type scaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

func fitScaler(X [][]float64) scaler {
	nFeat := len(X[0])
	s := scaler{Mean: make([]float64, nFeat), Std: make([]float64, nFeat)}
	for _, row := range X {
		for j, v := range row {
			s.Mean[j] += v
		}
	}
	for j := range s.Mean {
		s.Mean[j] /= float64(len(X))
	}
	for _, row := range X {
		for j, v := range row {
			d := v - s.Mean[j]
			s.Std[j] += d * d
		}
	}
	for j := range s.Std {
		s.Std[j] = math.Sqrt(s.Std[j] / float64(len(X)))
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return s
}

func (s scaler) transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}
