package metrics

import (
	"math/rand"
	"testing"

	"github.com/magarciasopo/nagios-plugins/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func TestReport_String(t *testing.T) {
	tests := []struct {
		name   string
		report Report
		want   string
	}{
		{
			name: "single metric",
			report: Report{Results: []domain.MetricResult{
				{Key: "dfs_capacity", Name: "dfs_capacity", Value: 500},
			}},
			want: "dfs_capacity=500 | dfs_capacity=500",
		},
		{
			name: "units and decimals",
			report: Report{Results: []domain.MetricResult{
				{Key: "cpu_percent", Name: "cpu_percent", Value: 12.25, Unit: "%"},
				{Key: "dfs_capacity", Name: "dfs_capacity", Value: 1e12, Unit: "B"},
			}},
			want: "cpu_percent=12.25% dfs_capacity=1000000000000B | cpu_percent=12.25% dfs_capacity=1000000000000B",
		},
		{
			name: "not found prefix",
			report: Report{
				Results:  []domain.MetricResult{{Key: "cpu_user", Name: "cpu_user", Value: 3}},
				NotFound: []string{"bogus", "missing"},
			},
			want: "Metrics not found: bogus,missing. cpu_user=3 | cpu_user=3",
		},
		{
			name:   "nothing found",
			report: Report{NotFound: []string{"bogus"}},
			want:   "Metrics not found: bogus.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.report.String(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestMissingMetrics(t *testing.T) {
	results := []domain.MetricResult{
		{Key: "write_ios_disk1", Name: "write_ios", Value: 1},
		{Key: "cpu_user", Name: "cpu_user", Value: 2},
	}

	req := domain.RequestedMetrics{Names: []string{"CPU_USER", "cpu_user", "dfs_capacity", "write_ios"}}
	if diff := cmp.Diff([]string{"CPU_USER", "dfs_capacity"}, MissingMetrics(req, results)); diff != "" {
		t.Errorf("missing mismatch (-want +got):\n%s", diff)
	}

	if got := MissingMetrics(domain.RequestedMetrics{All: true}, nil); got != nil {
		t.Errorf("expected nothing missing in all-metrics mode, got %v", got)
	}
}

func TestPipeline_OutputIndependentOfItemOrder(t *testing.T) {
	items := []domain.MetricSeries{
		series("write_ios", strPtr("c1:hdfs:sdc"), 3),
		series("write_ios", strPtr("c1:hdfs:sda"), 1),
		series("cpu_user", strPtr("c1:hdfs"), 7),
		series("write_ios", strPtr("c1:hdfs:sdb"), 2),
		series("dfs_capacity", strPtr("c1:hdfs"), 500),
	}
	req := domain.RequestedMetrics{Names: []string{"cpu_user", "dfs_capacity", "write_ios"}}
	active := []string{"c1", "hdfs"}

	render := func(in []domain.MetricSeries) string {
		keyed, err := Disambiguate(in, active)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return NewReport(req, Reduce(keyed, quietLogger())).String()
	}

	want := "cpu_user=7 dfs_capacity=500 write_ios_sda=1 write_ios_sdb=2 write_ios_sdc=3 | " +
		"cpu_user=7 dfs_capacity=500 write_ios_sda=1 write_ios_sdb=2 write_ios_sdc=3"
	if got := render(items); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffled := append([]domain.MetricSeries(nil), items...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		if got := render(shuffled); got != want {
			t.Errorf("shuffle %d: expected %q, got %q", i, want, got)
		}
	}
}
