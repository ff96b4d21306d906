package curve

import "math"

// dense is a row-major square matrix.
type dense struct {
	n    int
	data []float64
}

func newDense(n int) *dense {
	return &dense{n: n, data: make([]float64, n*n)}
}

func (m *dense) at(i, j int) float64     { return m.data[i*m.n+j] }
func (m *dense) set(i, j int, v float64) { m.data[i*m.n+j] = v }
func (m *dense) add(i, j int, v float64) { m.data[i*m.n+j] += v }

// solve returns x with A·x = b by Gaussian elimination with partial
// pivoting. A and b are overwritten. A pivot below eps·max|A| is singular.
func solve(a *dense, b []float64) ([]float64, error) {
	n := a.n
	scale := 0.0
	for _, v := range a.data {
		scale = math.Max(scale, math.Abs(v))
	}
	eps := 1e-12 * scale

	// 1) Forward elimination
	for k := 0; k < n; k++ {
		p := k
		for i := k + 1; i < n; i++ {
			if math.Abs(a.at(i, k)) > math.Abs(a.at(p, k)) {
				p = i
			}
		}
		if scale == 0 || math.Abs(a.at(p, k)) <= eps {
			return nil, ErrSingular
		}
		if p != k {
			for j := 0; j < n; j++ {
				tmp := a.at(k, j)
				a.set(k, j, a.at(p, j))
				a.set(p, j, tmp)
			}
			b[k], b[p] = b[p], b[k]
		}
		for i := k + 1; i < n; i++ {
			f := a.at(i, k) / a.at(k, k)
			for j := k; j < n; j++ {
				a.add(i, j, -f*a.at(k, j))
			}
			b[i] -= f * b[k]
		}
	}

	// 2) Back substitution
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := b[i]
		for j := i + 1; j < n; j++ {
			sum -= a.at(i, j) * x[j]
		}
		x[i] = sum / a.at(i, i)
	}
	return x, nil
}
