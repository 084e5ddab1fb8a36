package metrics

import (
	"testing"

	"github.com/magarciasopo/nagios-plugins/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func TestReduce_LatestValueSortedByKey(t *testing.T) {
	keyed := []domain.KeyedSeries{
		{Key: "write_ios_disk2", Series: series("write_ios", strPtr("disk2"), 5, 30)},
		{Key: "dfs_capacity", Series: domain.MetricSeries{
			Name:    "dfs_capacity",
			Unit:    strPtr("bytes"),
			Samples: []domain.Sample{{Value: floatPtr(400)}, {Value: floatPtr(500)}},
		}},
		{Key: "write_ios_disk1", Series: series("write_ios", strPtr("disk1"), 10)},
	}

	got := Reduce(keyed, quietLogger())
	want := []domain.MetricResult{
		{Key: "dfs_capacity", Name: "dfs_capacity", Value: 500, Unit: "B"},
		{Key: "write_ios_disk1", Name: "write_ios", Value: 10},
		{Key: "write_ios_disk2", Name: "write_ios", Value: 30},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_SkipsMissingValues(t *testing.T) {
	keyed := []domain.KeyedSeries{
		{Key: "cpu_user", Series: domain.MetricSeries{
			Name:    "cpu_user",
			Samples: []domain.Sample{{Value: floatPtr(1)}, {Timestamp: "t2"}},
		}},
		{Key: "empty", Series: domain.MetricSeries{Name: "empty"}},
	}
	if got := Reduce(keyed, quietLogger()); len(got) != 0 {
		t.Errorf("expected no results, got %+v", got)
	}
}

func TestReduce_UnrecognisedUnitIsOmitted(t *testing.T) {
	keyed := []domain.KeyedSeries{
		{Key: "bytes_read_rate", Series: domain.MetricSeries{
			Name:    "bytes_read_rate",
			Unit:    strPtr("bytes_per_second"),
			Samples: []domain.Sample{{Value: floatPtr(12.5)}},
		}},
	}
	got := Reduce(keyed, quietLogger())
	want := []domain.MetricResult{{Key: "bytes_read_rate", Name: "bytes_read_rate", Value: 12.5}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results mismatch (-want +got):\n%s", diff)
	}
}

func TestReduce_LastKeyWins(t *testing.T) {
	keyed := []domain.KeyedSeries{
		{Key: "cpu_user", Series: series("cpu_user", nil, 1)},
		{Key: "cpu_user", Series: series("cpu_user", nil, 2)},
	}
	got := Reduce(keyed, quietLogger())
	if len(got) != 1 || got[0].Value != 2 {
		t.Errorf("expected single result with value 2, got %+v", got)
	}
}
