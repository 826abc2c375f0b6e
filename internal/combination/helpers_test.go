package combination

import "math"

var nan = math.NaN()
