package study

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/wonny/carrycrash/pkg/logger"
)

// Regression fits ordinary least squares with Newey-West (HAC) standard
// errors. The forward return target is an overlapping H-week sum, so
// residuals are serially correlated up to lag H-1 and naive standard
// errors understate the true variance; the HAC covariance with maxlag H-1
// corrects for that.
type Regression struct {
	logger *logger.Logger
	lags   int
}

// NewRegression creates a regression engine using the given HAC lag count
// (horizon minus one for an H-week overlapping target).
func NewRegression(log *logger.Logger, lags int) *Regression {
	return &Regression{logger: log, lags: lags}
}

// Model holds one fitted specification.
type Model struct {
	Names   []string // regressor names, "const" first
	Coefs   []float64
	StdErrs []float64 // Newey-West robust standard errors
	TStats  []float64 // coefficient / robust standard error
	NObs    int
	Lags    int
}

// Fit regresses y on the given regressors plus an intercept and computes
// HAC-robust inference. Inputs must be free of missing values.
func (r *Regression) Fit(y []float64, regressors [][]float64, names []string) (Model, error) {
	n := len(y)
	k := len(regressors) + 1
	if n <= k {
		return Model{}, fmt.Errorf("regression: %d observations for %d parameters", n, k)
	}
	for i, x := range regressors {
		if len(x) != n {
			return Model{}, fmt.Errorf("regression: regressor %q has %d rows, want %d", names[i], len(x), n)
		}
	}

	// Design matrix with intercept column
	X := mat.NewDense(n, k, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1.0)
		for j, x := range regressors {
			X.Set(i, j+1, x[i])
		}
	}
	yVec := mat.NewVecDense(n, y)

	// OLS via QR
	var qr mat.QR
	qr.Factorize(X)
	beta := mat.NewVecDense(k, nil)
	if err := qr.SolveVecTo(beta, false, yVec); err != nil {
		return Model{}, fmt.Errorf("regression: solve failed: %w", err)
	}

	// Residuals
	fitted := mat.NewVecDense(n, nil)
	fitted.MulVec(X, beta)
	resid := make([]float64, n)
	for i := 0; i < n; i++ {
		resid[i] = y[i] - fitted.AtVec(i)
	}

	cov, err := hacCovariance(X, resid, r.lags)
	if err != nil {
		return Model{}, err
	}

	model := Model{
		Names:   append([]string{"const"}, names...),
		Coefs:   make([]float64, k),
		StdErrs: make([]float64, k),
		TStats:  make([]float64, k),
		NObs:    n,
		Lags:    r.lags,
	}
	for j := 0; j < k; j++ {
		model.Coefs[j] = beta.AtVec(j)
		model.StdErrs[j] = math.Sqrt(cov.At(j, j))
		model.TStats[j] = model.Coefs[j] / model.StdErrs[j]
	}

	r.logger.WithFields(map[string]interface{}{
		"n_obs": n,
		"lags":  r.lags,
	}).Debug("Fitted OLS with HAC covariance")

	return model, nil
}

// hacCovariance builds the Newey-West sandwich covariance
//
//	(X'X)^-1 S (X'X)^-1 * n/(n-k)
//
// where S is the Bartlett-weighted sum of residual-scaled outer products
// up to the given lag.
func hacCovariance(X *mat.Dense, resid []float64, lags int) (*mat.Dense, error) {
	n, k := X.Dims()

	var xtx mat.Dense
	xtx.Mul(X.T(), X)
	var bread mat.Dense
	if err := bread.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("regression: X'X is singular: %w", err)
	}

	// Lag-0 term
	meat := mat.NewDense(k, k, nil)
	row := make([]float64, k)
	lagRow := make([]float64, k)
	for t := 0; t < n; t++ {
		mat.Row(row, t, X)
		for a := 0; a < k; a++ {
			for b := 0; b < k; b++ {
				meat.Set(a, b, meat.At(a, b)+resid[t]*resid[t]*row[a]*row[b])
			}
		}
	}

	// Bartlett-weighted autocovariance terms
	for l := 1; l <= lags; l++ {
		w := 1.0 - float64(l)/float64(lags+1)
		for t := l; t < n; t++ {
			mat.Row(row, t, X)
			mat.Row(lagRow, t-l, X)
			uu := resid[t] * resid[t-l]
			for a := 0; a < k; a++ {
				for b := 0; b < k; b++ {
					// Gamma_l + Gamma_l' keeps S symmetric
					meat.Set(a, b, meat.At(a, b)+w*uu*(row[a]*lagRow[b]+lagRow[a]*row[b]))
				}
			}
		}
	}

	var half, cov mat.Dense
	half.Mul(&bread, meat)
	cov.Mul(&half, &bread)

	// Small-sample correction
	cov.Scale(float64(n)/float64(n-k), &cov)
	return &cov, nil
}
