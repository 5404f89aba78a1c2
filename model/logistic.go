package model

import (
	"fmt"
	"math"
	"polarity-lab/domain"
	"polarity-lab/errors"
	"sort"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const gradientThreshold = 1e-6

// LogisticRegression is an L2-regularized binary logistic regression. The intercept is not
// penalized. Of the two labels seen in training, the lexicographically larger one is the
// positive class.
type LogisticRegression struct {
	c         float64
	classes   []domain.Label
	weights   []float64
	intercept float64
}

// NewLogisticRegression returns an unfitted model with inverse regularization strength c.
func NewLogisticRegression(c float64) *LogisticRegression {
	if c <= 0 {
		c = 1
	}
	return &LogisticRegression{c: c}
}

// Fit minimizes 0.5*|w|^2 + c*sum(log(1+exp(-y*(w.x+b)))) with LBFGS.
func (m *LogisticRegression) Fit(table domain.FeatureTable) error {
	n, p := table.Len(), table.Width()
	if n == 0 {
		return fmt.Errorf("%w: nothing to fit", errors.ErrEmptyTable)
	}
	if p == 0 {
		return fmt.Errorf("%w: nothing to fit", errors.ErrNoFeatureColumns)
	}
	classes := lo.Uniq(lo.Map(table.Rows, func(r domain.FeatureRow, _ int) domain.Label { return r.Label }))
	if len(classes) != 2 {
		return fmt.Errorf("%w: found %d labels %v", errors.ErrNotBinary, len(classes), classes)
	}
	sort.Slice(classes, func(i, j int) bool { return classes[i] < classes[j] })

	data := make([]float64, 0, n*p)
	y := make([]float64, n)
	for i, r := range table.Rows {
		if err := checkRow(r, p); err != nil {
			return err
		}
		data = append(data, r.Values...)
		y[i] = -1
		if r.Label == classes[1] {
			y[i] = 1
		}
	}
	x := mat.NewDense(n, p, data)

	// margins computes z = Xw + b for params = [w..., b].
	margins := func(params []float64) *mat.VecDense {
		var z mat.VecDense
		z.MulVec(x, mat.NewVecDense(p, params[:p]))
		for i := 0; i < n; i++ {
			z.SetVec(i, z.AtVec(i)+params[p])
		}
		return &z
	}
	problem := optimize.Problem{
		Func: func(params []float64) float64 {
			z := margins(params)
			loss := 0.0
			for i := 0; i < n; i++ {
				loss += logLoss(y[i] * z.AtVec(i))
			}
			w := params[:p]
			return 0.5*floats.Dot(w, w) + m.c*loss
		},
		Grad: func(grad, params []float64) {
			z := margins(params)
			r := mat.NewVecDense(n, nil)
			bias := 0.0
			for i := 0; i < n; i++ {
				g := -y[i] * sigmoid(-y[i]*z.AtVec(i)) * m.c
				r.SetVec(i, g)
				bias += g
			}
			g := mat.NewVecDense(p, grad[:p])
			g.MulVec(x.T(), r)
			floats.Add(grad[:p], params[:p])
			grad[p] = bias
		},
	}

	result, err := optimize.Minimize(problem, make([]float64, p+1), &optimize.Settings{GradientThreshold: gradientThreshold}, &optimize.LBFGS{})
	if result == nil || floats.HasNaN(result.X) {
		return fmt.Errorf("fit logistic regression: %w", err)
	}

	m.classes = classes
	m.weights = append([]float64(nil), result.X[:p]...)
	m.intercept = result.X[p]
	return nil
}

// Classes returns the negative and positive labels, or nil before Fit.
func (m *LogisticRegression) Classes() []domain.Label {
	return append([]domain.Label(nil), m.classes...)
}

// Coefficients returns the fitted weights and intercept.
func (m *LogisticRegression) Coefficients() ([]float64, float64) {
	return append([]float64(nil), m.weights...), m.intercept
}

// Probability returns P(positive class | values).
func (m *LogisticRegression) Probability(values []float64) float64 {
	return sigmoid(floats.Dot(m.weights, values) + m.intercept)
}

func (m *LogisticRegression) Predict(values []float64) domain.Label {
	if m.Probability(values) > 0.5 {
		return m.classes[1]
	}
	return m.classes[0]
}

// Accuracy is the fraction of rows whose predicted label equals their label.
func (m *LogisticRegression) Accuracy(table domain.FeatureTable) (float64, error) {
	if m.classes == nil {
		return 0, fmt.Errorf("%w: model is not fitted", errors.ErrEmptyTable)
	}
	if table.Len() == 0 {
		return 0, fmt.Errorf("%w: nothing to evaluate", errors.ErrEmptyTable)
	}
	if table.Width() != len(m.weights) {
		return 0, fmt.Errorf("%w: table has %d columns, model %d", errors.ErrLabelMismatch, table.Width(), len(m.weights))
	}
	hits := 0
	for _, r := range table.Rows {
		if err := checkRow(r, len(m.weights)); err != nil {
			return 0, err
		}
		if m.Predict(r.Values) == r.Label {
			hits++
		}
	}
	return float64(hits) / float64(table.Len()), nil
}

func checkRow(r domain.FeatureRow, width int) error {
	if len(r.Values) != width {
		return fmt.Errorf("%w: row %q has %d values for %d columns", errors.ErrMissingValues, r.TxnID, len(r.Values), width)
	}
	if floats.HasNaN(r.Values) {
		return fmt.Errorf("%w: row %q", errors.ErrMissingValues, r.TxnID)
	}
	return nil
}

func sigmoid(t float64) float64 {
	if t >= 0 {
		return 1 / (1 + math.Exp(-t))
	}
	e := math.Exp(t)
	return e / (1 + e)
}

// logLoss is log(1+exp(-t)) without overflow.
func logLoss(t float64) float64 {
	if t > 0 {
		return math.Log1p(math.Exp(-t))
	}
	return -t + math.Log1p(math.Exp(t))
}
