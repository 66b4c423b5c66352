package models

// FraudFlag is a closed set of labels the fraud gate can attach to a
// submission. Flags are informational; only duplicate_submission causes a
// hard reject.
type FraudFlag string

const (
	FlagInfluenceCapExceeded   FraudFlag = "user_influence_cap_exceeded"
	FlagSuspiciousRate         FraudFlag = "suspicious_submission_rate"
	FlagInsufficientGPSPoints  FraudFlag = "insufficient_gps_points"
	FlagNonMonotonicTimestamps FraudFlag = "non_monotonic_timestamps"
	FlagImpossibleSpeed        FraudFlag = "impossible_speed"
	FlagStationaryTrace        FraudFlag = "stationary_trace"
	FlagDuplicateSubmission    FraudFlag = "duplicate_submission"
)

// FraudResult is the fraud gate's verdict on one submission.
type FraudResult struct {
	Passed      bool        `json:"passed"`
	Flags       []FraudFlag `json:"flags"`
	TrustWeight float64     `json:"trustWeight"`
}

// HasFlag reports whether the result carries the given flag.
func (r FraudResult) HasFlag(flag FraudFlag) bool {
	for _, f := range r.Flags {
		if f == flag {
			return true
		}
	}
	return false
}
