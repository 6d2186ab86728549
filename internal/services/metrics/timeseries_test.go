package metrics

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ann0nip/IEB-Investment-Tracker/internal/models"
)

func TestTimeSeries_ChronologicalOrder(t *testing.T) {
	states := []models.DerivedAssetState{
		state("AMZND", map[string][2]string{
			"2024-03-15": {"50", "5"},
			"2023-12-01": {"100", "10"},
			"2024-01-20": {"30", "3"},
		}),
	}

	points := TimeSeries(states, snapshotWith(nil))

	want := []string{"2023-12-01", "2024-01-20", "2024-03-15"}
	if len(points) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(points))
	}
	for i, period := range want {
		if points[i].Period != period {
			t.Errorf("points[%d].Period = %s, want %s", i, points[i].Period, period)
		}
	}
}

func TestTimeSeries_CumulativeInvested(t *testing.T) {
	states := []models.DerivedAssetState{
		state("AMZND", map[string][2]string{
			"2024-01-01": {"100", "10"},
			"2024-02-01": {"50", "5"},
		}),
		state("MSFTD", map[string][2]string{
			"2024-02-01": {"200", "2"},
		}),
	}

	points := TimeSeries(states, snapshotWith(nil))

	if !points[0].Invested.Equal(dec("100")) {
		t.Errorf("first point invested = %s, want 100", points[0].Invested)
	}
	if !points[1].Invested.Equal(dec("350")) {
		t.Errorf("second point invested = %s, want 350", points[1].Invested)
	}
}

func TestTimeSeries_MarksHoldingsAtCurrentPrice(t *testing.T) {
	// Every point marks the cumulative position at today's price, so the
	// series shows the current value of what was held at each period.
	states := []models.DerivedAssetState{
		state("AMZND", map[string][2]string{
			"2024-01-01": {"100", "10"},
			"2024-02-01": {"120", "10"},
		}),
	}
	snapshot := snapshotWith(map[string]*decimal.Decimal{"AMZND": decPtr("15")})

	points := TimeSeries(states, snapshot)

	if !points[0].MarkedValue.Equal(dec("150")) {
		t.Errorf("first point marked = %s, want 150", points[0].MarkedValue)
	}
	if !points[1].MarkedValue.Equal(dec("300")) {
		t.Errorf("second point marked = %s, want 300", points[1].MarkedValue)
	}
	if !points[1].GainLoss.Equal(dec("80")) {
		t.Errorf("second point gain = %s, want 80", points[1].GainLoss)
	}
}

func TestTimeSeries_FixedUnitCarriedAtCost(t *testing.T) {
	states := []models.DerivedAssetState{
		state("GD30D", map[string][2]string{"2024-01-01": {"1000", "1"}}),
	}
	snapshot := snapshotWith(map[string]*decimal.Decimal{"GD30D": decPtr("99")})

	points := TimeSeries(states, snapshot)

	if !points[0].MarkedValue.Equal(dec("1000")) {
		t.Errorf("bond marked = %s, want 1000 (cost)", points[0].MarkedValue)
	}
	if !points[0].GainLoss.IsZero() {
		t.Errorf("bond gain = %s, want 0", points[0].GainLoss)
	}
}

func TestTimeSeries_Empty(t *testing.T) {
	points := TimeSeries(nil, snapshotWith(nil))
	if len(points) != 0 {
		t.Errorf("expected no points for empty state, got %d", len(points))
	}
}
