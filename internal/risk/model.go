package risk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
)

// Level is a predicted risk class.
type Level int

const (
	Low Level = iota
	Moderate
	High
	numLevels
)

func (l Level) String() string {
	switch l {
	case Low:
		return "Low Risk"
	case Moderate:
		return "Moderate Risk"
	case High:
		return "High Risk"
	default:
		return "Unknown"
	}
}

// Description is a one-line reading of the level.
func (l Level) Description() string {
	switch l {
	case Low:
		return "Strong emotional intelligence indicators"
	case Moderate:
		return "Some areas for emotional growth"
	case High:
		return "May benefit from emotional support"
	default:
		return ""
	}
}

// levelFor labels a synthetic sample by its average answer.
func levelFor(avg float64) Level {
	switch {
	case avg <= 2:
		return High
	case avg <= 3:
		return Moderate
	default:
		return Low
	}
}

// Training parameters.
const (
	TrainSeed    = 42
	TrainSamples = 1000
	testFraction = 0.2
	minAge       = 12
	maxAge       = 60
)

// ModelFile is the file name the model is saved under, next to the database.
const ModelFile = "risk_model.json"

const modelVersion = 1

// Model is a trained classifier.
type Model struct {
	Version  int     `json:"version"`
	Seed     uint64  `json:"seed"`
	Accuracy float64 `json:"accuracy"` // on the held-out synthetic split
	Scaler   scaler  `json:"scaler"`
	Forest   *forest `json:"forest"`
}

// FeatureWeight pairs a feature with its importance.
type FeatureWeight struct {
	Name   string
	Value  float64
	Weight float64
}

// Prediction is the classifier output for one feature vector.
type Prediction struct {
	Level         Level
	Probabilities [numLevels]float64
	Confidence    float64
	Features      Features
	TopFeatures   []FeatureWeight // most important first
}

// synthetic generates labelled training rows from a seeded source.
func synthetic(n int, rng *rand.Rand) ([][]float64, []int) {
	X := make([][]float64, n)
	y := make([]int, n)
	for i := range n {
		answers := make([]int, referenceCount)
		total := 0
		for j := range answers {
			answers[j] = 1 + rng.IntN(4)
			total += answers[j]
		}
		age := minAge + rng.IntN(maxAge-minAge+1)
		f := NewFeatures(answers, &age, total)
		X[i] = f[:]
		y[i] = int(levelFor(f[FeatAverage]))
	}
	return X, y
}

// Train fits a model on seeded synthetic data.
func Train(seed uint64) *Model {
	rng := rand.New(rand.NewPCG(seed, seed))
	X, y := synthetic(TrainSamples, rng)

	split := int(float64(len(X)) * (1 - testFraction))
	trainX, testX := X[:split], X[split:]
	trainY, testY := y[:split], y[split:]

	sc := fitScaler(trainX)
	scaled := make([][]float64, len(trainX))
	for i, row := range trainX {
		scaled[i] = sc.transform(row)
	}

	params := forestParams{
		trees:       50,
		maxDepth:    6,
		minSplit:    2,
		maxFeatures: max(1, int(math.Sqrt(numFeatures))),
	}
	m := &Model{
		Version: modelVersion,
		Seed:    seed,
		Scaler:  sc,
		Forest:  trainForest(scaled, trainY, int(numLevels), params, rng),
	}

	correct := 0
	for i, row := range testX {
		if m.classify(row) == Level(testY[i]) {
			correct++
		}
	}
	m.Accuracy = float64(correct) / float64(len(testX))
	return m
}

func (m *Model) proba(x []float64) []float64 {
	return m.Forest.predictProba(m.Scaler.transform(x))
}

func (m *Model) classify(x []float64) Level {
	p := m.proba(x)
	best := 0
	for c := range p {
		if p[c] > p[best] {
			best = c
		}
	}
	return Level(best)
}

// Predict classifies f and ranks its features by importance.
func (m *Model) Predict(f Features) Prediction {
	p := m.proba(f[:])
	pred := Prediction{Features: f}
	best := 0
	for c := range pred.Probabilities {
		pred.Probabilities[c] = p[c]
		if p[c] > p[best] {
			best = c
		}
	}
	pred.Level = Level(best)
	pred.Confidence = p[best]

	for i, w := range m.Forest.Importance {
		pred.TopFeatures = append(pred.TopFeatures, FeatureWeight{Name: FeatureNames[i], Value: f[i], Weight: w})
	}
	slices.SortStableFunc(pred.TopFeatures, func(a, b FeatureWeight) int {
		return cmpFloat(b.Weight, a.Weight)
	})
	return pred
}

// Save writes the model as JSON.
func (m *Model) Save(path string) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode risk model: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create model dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write risk model: %w", err)
	}
	return nil
}

// ErrModelShape reports a saved model that does not match this build.
var ErrModelShape = errors.New("risk model has an unexpected shape")

// Load reads a model saved by Save.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode risk model: %w", err)
	}
	if m.Version != modelVersion || m.Forest == nil || len(m.Forest.Trees) == 0 ||
		len(m.Scaler.Mean) != numFeatures || len(m.Scaler.Std) != numFeatures ||
		len(m.Forest.Importance) != numFeatures || m.Forest.Classes != int(numLevels) {
		return nil, ErrModelShape
	}
	return &m, nil
}

// LoadOrTrain loads the model at path, training and saving a fresh one
// when the file is missing or unreadable.
func LoadOrTrain(path string) (*Model, error) {
	m, err := Load(path)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("discarding saved risk model", "path", path, "error", err)
	}

	m = Train(TrainSeed)
	slog.Info("trained risk model", "path", path, "accuracy", m.Accuracy)
	if err := m.Save(path); err != nil {
		return m, err
	}
	return m, nil
}
