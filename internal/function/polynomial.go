package function

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexiusacademia/goframe/internal/numeric"
)

// Degree is the highest power carried by a segment.
const Degree = 6

// Coefficients holds c0..c6 of c0 + c1·x + ... + c6·x⁶.
type Coefficients [Degree + 1]float64

// binomial[n][k] = C(n, k) for n ≤ Degree.
var binomial = func() [Degree + 1][Degree + 1]float64 {
	var b [Degree + 1][Degree + 1]float64
	for n := 0; n <= Degree; n++ {
		b[n][0] = 1
		for k := 1; k <= n; k++ {
			b[n][k] = b[n-1][k-1]
			if k < n {
				b[n][k] += b[n-1][k]
			}
		}
	}
	return b
}()

// Eval evaluates the polynomial at x (Horner).
func (c Coefficients) Eval(x float64) float64 {
	v := c[Degree]
	for k := Degree - 1; k >= 0; k-- {
		v = v*x + c[k]
	}
	return v
}

// Translate returns the coefficients of x ↦ p(x − t).
//
// Expanding (x − t)^j binomially gives
//
//	g_k = Σ_{j=k..6} c_j · C(j,k) · (−t)^(j−k)
func (c Coefficients) Translate(t float64) Coefficients {
	if t == 0 {
		return c
	}
	var pow [Degree + 1]float64
	pow[0] = 1
	for i := 1; i <= Degree; i++ {
		pow[i] = pow[i-1] * -t
	}
	var g Coefficients
	for k := 0; k <= Degree; k++ {
		for j := k; j <= Degree; j++ {
			if c[j] == 0 {
				continue
			}
			g[k] += c[j] * binomial[j][k] * pow[j-k]
		}
	}
	return g
}

// Add returns c + o element-wise.
func (c Coefficients) Add(o Coefficients) Coefficients {
	for k := range c {
		c[k] += o[k]
	}
	return c
}

// Scale returns k·c.
func (c Coefficients) Scale(k float64) Coefficients {
	for i := range c {
		c[i] *= k
	}
	return c
}

// Equal compares all seven coefficients under the process tolerance.
func (c Coefficients) Equal(o Coefficients) bool {
	for k := range c {
		if !numeric.Equal(c[k], o[k]) {
			return false
		}
	}
	return true
}

// IsZero reports whether every coefficient is zero under tolerance.
func (c Coefficients) IsZero() bool {
	return c.Equal(Coefficients{})
}

func (c Coefficients) finite() bool {
	for _, v := range c {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Format writes the polynomial with decimals digits. c0 comes first without a
// forced sign; every other term carries an explicit sign. Terms whose magnitude
// is below 10^-decimals are omitted, and a polynomial with no term left is "0".
func (c Coefficients) Format(decimals int) string {
	threshold := math.Pow10(-decimals)
	var sb strings.Builder
	if math.Abs(c[0]) >= threshold {
		fmt.Fprintf(&sb, "%.*f", decimals, c[0])
	}
	for k := 1; k <= Degree; k++ {
		if math.Abs(c[k]) < threshold {
			continue
		}
		fmt.Fprintf(&sb, "%+.*f*x", decimals, c[k])
		if k > 1 {
			fmt.Fprintf(&sb, "^%d", k)
		}
	}
	if sb.Len() == 0 {
		return "0"
	}
	return sb.String()
}
