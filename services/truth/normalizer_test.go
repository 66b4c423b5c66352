package truth

import (
	"testing"
	"time"

	"travony/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeSignalsPrecedence(t *testing.T) {
	raw := models.RawSignals{
		Screenshot: &models.ScreenshotSignal{
			Fields: models.SignalPatch{
				QuotedPrice: floatPtr(100),
				FinalPrice:  floatPtr(120),
			},
		},
		Notification: &models.NotificationSignal{
			Fields: models.SignalPatch{
				FinalPrice:       floatPtr(125), // wins over screenshot
				QuotedETAMinutes: floatPtr(4),
			},
		},
		UserAnswers: &models.PostRideAnswers{
			CorrectedFinalPrice: floatPtr(130), // wins over everything
			LateArrivalMinutes:  floatPtr(9),
		},
	}

	merged := MergeSignals(raw)
	require.NotNil(t, merged.QuotedPrice)
	assert.Equal(t, 100.0, *merged.QuotedPrice, "screenshot value survives when nothing overrides it")
	require.NotNil(t, merged.FinalPrice)
	assert.Equal(t, 130.0, *merged.FinalPrice, "user answer outranks both automated sources")
	require.NotNil(t, merged.QuotedETAMinutes)
	assert.Equal(t, 4.0, *merged.QuotedETAMinutes)
	require.NotNil(t, merged.PickupWaitMinutes)
	assert.Equal(t, 9.0, *merged.PickupWaitMinutes)
}

func TestMergeSignalsNilFieldsNeverClear(t *testing.T) {
	raw := models.RawSignals{
		Screenshot: &models.ScreenshotSignal{
			Fields: models.SignalPatch{QuotedPrice: floatPtr(50), FinalPrice: floatPtr(55)},
		},
		Notification: &models.NotificationSignal{
			Fields: models.SignalPatch{}, // nothing parsed
		},
	}
	merged := MergeSignals(raw)
	require.NotNil(t, merged.QuotedPrice)
	assert.Equal(t, 50.0, *merged.QuotedPrice)
	require.NotNil(t, merged.FinalPrice)
	assert.Equal(t, 55.0, *merged.FinalPrice)
}

func TestMergeSignalsConsistentGPSContributesDerivedValues(t *testing.T) {
	raw := models.RawSignals{
		GPSTrace: straightTrace(10, time.Minute, 0.0045),
	}
	merged := MergeSignals(raw)
	require.NotNil(t, merged.ActualDistanceKm)
	assert.InDelta(t, 4.5, *merged.ActualDistanceKm, 0.2)
	require.NotNil(t, merged.ActualDurationMin)
	assert.InDelta(t, 9.0, *merged.ActualDurationMin, 0.01)
}

func TestMergeSignalsInconsistentGPSIsIgnored(t *testing.T) {
	raw := models.RawSignals{
		Notification: &models.NotificationSignal{
			Fields: models.SignalPatch{ActualDistanceKm: floatPtr(7)},
		},
		GPSTrace: straightTrace(10, time.Second, 0.045), // implausible speed
	}
	merged := MergeSignals(raw)
	require.NotNil(t, merged.ActualDistanceKm)
	assert.Equal(t, 7.0, *merged.ActualDistanceKm, "implausible trace must not override reported distance")
	assert.Nil(t, merged.ActualDurationMin)
}
