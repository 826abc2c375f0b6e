package eurocode

// Partial factors for buildings, EN 1990 Table A1.2(A) (set A, equation 6.10)
const (
	GammaGSup = 1.35 // unfavourable permanent actions
	GammaGInf = 1.00 // favourable permanent actions
	GammaQ    = 1.50 // variable actions
	GammaP    = 1.00 // prestress
)

// Limit state families for which combinations can be generated.
type LimitState int

const (
	ULSFundamental LimitState = iota
	SLSCharacteristic
	SLSFrequent
	SLSQuasiPermanent
)

func (l LimitState) String() string {
	switch l {
	case ULSFundamental:
		return "ULS 6.10"
	case SLSCharacteristic:
		return "SLS characteristic"
	case SLSFrequent:
		return "SLS frequent"
	case SLSQuasiPermanent:
		return "SLS quasi-permanent"
	}
	return "unknown"
}

// ParseLimitState accepts uls, sls-char, sls-freq, sls-qp.
func ParseLimitState(s string) (LimitState, bool) {
	switch s {
	case "uls":
		return ULSFundamental, true
	case "sls-char":
		return SLSCharacteristic, true
	case "sls-freq":
		return SLSFrequent, true
	case "sls-qp":
		return SLSQuasiPermanent, true
	}
	return 0, false
}
