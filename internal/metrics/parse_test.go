package metrics

import (
	"errors"
	"strings"
	"testing"

	"github.com/magarciasopo/nagios-plugins/internal/cmapi"
	"github.com/magarciasopo/nagios-plugins/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func okResponse(body string) *cmapi.Response {
	return &cmapi.Response{StatusCode: 200, StatusText: "OK", Body: []byte(body)}
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func TestCheckResponse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		resp    *cmapi.Response
		wantErr error
		wantMsg []string
	}{
		{
			name:    "unauthorized with server message",
			resp:    &cmapi.Response{StatusCode: 401, StatusText: "Unauthorized", Body: []byte(`{ "message" : "Bad credentials" }`)},
			wantErr: domain.ErrTransport,
			wantMsg: []string{"401", "Unauthorized", "Bad credentials"},
		},
		{
			name:    "not found without message",
			resp:    &cmapi.Response{StatusCode: 404, StatusText: "Not Found", Body: []byte(`<html>nope</html>`)},
			wantErr: domain.ErrTransport,
			wantMsg: []string{"404 Not Found"},
		},
		{
			name:    "certificate failure hint",
			resp:    &cmapi.Response{StatusCode: 500, StatusText: "Can't connect (certificate verify failed)"},
			wantErr: domain.ErrTransport,
			wantMsg: []string{"--ssl-noverify"},
		},
		{
			name:    "empty body",
			resp:    okResponse("  \n"),
			wantErr: domain.ErrEmptyResponse,
		},
		{
			name:    "binary garbage",
			resp:    okResponse("\x15\x03\x01\x00\x02\x02\x0a"),
			wantErr: domain.ErrMalformedJSON,
			wantMsg: []string{"--ssl"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckResponse(tt.resp)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			for _, msg := range tt.wantMsg {
				if !strings.Contains(err.Error(), msg) {
					t.Errorf("expected error containing %q, got %q", msg, err.Error())
				}
			}
		})
	}
}

func TestCheckResponse_PlausibleBodies(t *testing.T) {
	for _, body := range []string{`{}`, `<html>...</html>`, `not json`} {
		if err := CheckResponse(okResponse(body)); err != nil {
			t.Errorf("CheckResponse(%q): unexpected error: %v", body, err)
		}
	}
}

func TestParseMetrics_HTMLIsDecodeError(t *testing.T) {
	_, err := ParseMetrics(okResponse(`<html><body>Cloudera Manager</body></html>`))
	if !errors.Is(err, domain.ErrJSONDecode) {
		t.Fatalf("expected json decode error, got %v", err)
	}
	if !strings.Contains(err.Error(), "invalid JSON") {
		t.Errorf("expected decode failure message, got %q", err.Error())
	}
}

func TestParseMetrics_HappyPath(t *testing.T) {
	body := `{
		"items": [
			{
				"name": "write_ios",
				"context": "c1:hdfs:disk1",
				"unit": "ios",
				"data": [
					{"timestamp": "2014-01-01T00:00:00.000Z", "value": 1},
					{"timestamp": "2014-01-01T00:01:00.000Z", "value": 10}
				]
			},
			{
				"name": "dfs_capacity",
				"data": []
			},
			{
				"name": "cpu_user",
				"data": [{"timestamp": 1388534400000}]
			}
		]
	}`

	got, err := ParseMetrics(okResponse(body))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []domain.MetricSeries{
		{
			Name:    "write_ios",
			Context: strPtr("c1:hdfs:disk1"),
			Unit:    strPtr("ios"),
			Samples: []domain.Sample{
				{Timestamp: "2014-01-01T00:00:00.000Z", Value: floatPtr(1)},
				{Timestamp: "2014-01-01T00:01:00.000Z", Value: floatPtr(10)},
			},
		},
		{Name: "dfs_capacity", Samples: []domain.Sample{}},
		{Name: "cpu_user", Samples: []domain.Sample{{Timestamp: "1388534400000"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMetrics_ShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"no items field", `{"foo": []}`, domain.ErrMalformedResponse},
		{"empty items", `{"items": []}`, domain.ErrNoData},
		{"item without name", `{"items": [{"data": []}]}`, domain.ErrMalformedResponse},
		{"item without data", `{"items": [{"name": "cpu_user"}]}`, domain.ErrMalformedResponse},
		{"null data", `{"items": [{"name": "cpu_user", "data": null}]}`, domain.ErrMalformedResponse},
		{"truncated", `{"items": [`, domain.ErrJSONDecode},
		{"non-numeric value", `{"items": [{"name": "a", "data": [{"value": "x"}]}]}`, domain.ErrJSONDecode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMetrics(okResponse(tt.body))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseRoles(t *testing.T) {
	got, err := ParseRoles(okResponse(`{"items": [{"name": "role-B", "type": "DATANODE"}, {"name": "role-A"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"role-B", "role-A"}, got); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}

	_, err = ParseRoles(okResponse(`{"items": [{"name": "role-A"}, {"type": "DATANODE"}]}`))
	if !errors.Is(err, domain.ErrInternal) {
		t.Errorf("expected internal error for nameless role, got %v", err)
	}

	_, err = ParseRoles(&cmapi.Response{StatusCode: 403, StatusText: "Forbidden"})
	if !errors.Is(err, domain.ErrTransport) {
		t.Errorf("expected transport error, got %v", err)
	}
}
