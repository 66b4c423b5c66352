package truth

import "travony/models"

// MergeSignals collapses heterogeneous signal fragments into one canonical
// field set. Precedence, lowest to highest: screenshot extraction,
// notification parsing, explicit post-ride answers. A GPS trace only
// contributes its derived distance/duration when the trace analysis
// reports internal consistency; otherwise the values from the other
// sources stand.
func MergeSignals(raw models.RawSignals) models.SignalPatch {
	var merged models.SignalPatch

	if raw.Screenshot != nil {
		overlayPatch(&merged, raw.Screenshot.Fields)
	}
	if raw.Notification != nil {
		overlayPatch(&merged, raw.Notification.Fields)
	}
	if raw.UserAnswers != nil {
		overlayAnswers(&merged, *raw.UserAnswers)
	}
	if len(raw.GPSTrace) > 0 {
		summary := AnalyzeTrace(raw.GPSTrace)
		if summary.Consistent {
			km := summary.TotalKm
			min := summary.DurationMin
			merged.ActualDistanceKm = &km
			merged.ActualDurationMin = &min
		}
	}

	return merged
}

// overlayPatch applies every populated field of src on top of dst. Nil
// fields in src never clear values an earlier source provided.
func overlayPatch(dst *models.SignalPatch, src models.SignalPatch) {
	if src.RideAt != nil {
		dst.RideAt = src.RideAt
	}
	if src.QuotedPrice != nil {
		dst.QuotedPrice = src.QuotedPrice
	}
	if src.FinalPrice != nil {
		dst.FinalPrice = src.FinalPrice
	}
	if src.QuotedETAMinutes != nil {
		dst.QuotedETAMinutes = src.QuotedETAMinutes
	}
	if src.PickupWaitMinutes != nil {
		dst.PickupWaitMinutes = src.PickupWaitMinutes
	}
	if src.DriverCancelled != nil {
		dst.DriverCancelled = src.DriverCancelled
	}
	if src.CancellationCount != nil {
		dst.CancellationCount = src.CancellationCount
	}
	if src.ExpectedDistanceKm != nil {
		dst.ExpectedDistanceKm = src.ExpectedDistanceKm
	}
	if src.ActualDistanceKm != nil {
		dst.ActualDistanceKm = src.ActualDistanceKm
	}
	if src.ExpectedDurationMin != nil {
		dst.ExpectedDurationMin = src.ExpectedDurationMin
	}
	if src.ActualDurationMin != nil {
		dst.ActualDurationMin = src.ActualDurationMin
	}
	if src.SupportResolved != nil {
		dst.SupportResolved = src.SupportResolved
	}
	if src.SupportOutcome != "" {
		dst.SupportOutcome = src.SupportOutcome
	}
	if src.Pickup != nil {
		dst.Pickup = src.Pickup
	}
	if src.Dropoff != nil {
		dst.Dropoff = src.Dropoff
	}
}

// overlayAnswers applies the user's explicit corrections. Only answered
// fields are touched; they win over every automated source.
func overlayAnswers(dst *models.SignalPatch, answers models.PostRideAnswers) {
	if answers.CorrectedQuotedPrice != nil {
		dst.QuotedPrice = answers.CorrectedQuotedPrice
	}
	if answers.CorrectedFinalPrice != nil {
		dst.FinalPrice = answers.CorrectedFinalPrice
	}
	if answers.DriverCancelled != nil {
		dst.DriverCancelled = answers.DriverCancelled
	}
	if answers.CancellationCount != nil {
		dst.CancellationCount = answers.CancellationCount
	}
	if answers.LateArrivalMinutes != nil {
		dst.PickupWaitMinutes = answers.LateArrivalMinutes
	}
	if answers.SupportResolved != nil {
		dst.SupportResolved = answers.SupportResolved
	}
	if answers.SupportOutcome != "" {
		dst.SupportOutcome = answers.SupportOutcome
	}
}
