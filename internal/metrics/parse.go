package metrics

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/magarciasopo/nagios-plugins/internal/cmapi"
	"github.com/magarciasopo/nagios-plugins/internal/domain"
)

// serverMessage extracts the "message" field Cloudera Manager puts in
// error bodies. It is matched textually since error bodies are not
// always valid JSON.
var serverMessage = regexp.MustCompile(`"message"\s*:\s*"((?:[^"\\]|\\.)*)"`)

// --- API response types ---

type itemsDocument[T any] struct {
	Items *[]T `json:"items"`
}

type apiMetric struct {
	Name    *string      `json:"name"`
	Context *string      `json:"context"`
	Unit    *string      `json:"unit"`
	Data    *[]apiSample `json:"data"`
}

type apiSample struct {
	Timestamp json.RawMessage `json:"timestamp"`
	Value     *float64        `json:"value"`
}

type apiRole struct {
	Name *string `json:"name"`
}

// CheckResponse validates the transport-level outcome of resp: status,
// emptiness and whether the body could plausibly be JSON. The
// plausibility check runs before decoding so a plaintext request to a
// TLS port yields an actionable message.
func CheckResponse(resp *cmapi.Response) error {
	if !resp.OK() {
		msg := fmt.Sprintf("%d %s", resp.StatusCode, resp.StatusText)
		if m := serverMessage.FindSubmatch(resp.Body); m != nil {
			msg += ". Message returned by Cloudera Manager: " + unescape(m[1])
		}
		if cmapi.LooksLikeCertificateFailure(resp.StatusText) {
			msg += cmapi.CertificateHint
		}
		return fmt.Errorf("%w: %s", domain.ErrTransport, msg)
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return fmt.Errorf("%w: Cloudera Manager returned no content", domain.ErrEmptyResponse)
	}
	if !bytes.ContainsRune(body, '{') && !containsLetter(body) {
		return fmt.Errorf("%w: body is not JSON, are you connecting without --ssl to a TLS port?", domain.ErrMalformedJSON)
	}
	return nil
}

// ParseMetrics decodes a metric query response into series.
func ParseMetrics(resp *cmapi.Response) ([]domain.MetricSeries, error) {
	if err := CheckResponse(resp); err != nil {
		return nil, err
	}

	var doc itemsDocument[apiMetric]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON returned by Cloudera Manager: %v", domain.ErrJSONDecode, err)
	}
	if doc.Items == nil {
		return nil, fmt.Errorf("%w: 'items' field not found in response", domain.ErrMalformedResponse)
	}
	if len(*doc.Items) == 0 {
		return nil, fmt.Errorf("%w: no matching metrics returned by Cloudera Manager", domain.ErrNoData)
	}

	series := make([]domain.MetricSeries, 0, len(*doc.Items))
	for i, item := range *doc.Items {
		if item.Name == nil {
			return nil, fmt.Errorf("%w: 'name' field not found in item %d", domain.ErrMalformedResponse, i)
		}
		if item.Data == nil {
			return nil, fmt.Errorf("%w: 'data' field not found for metric %q", domain.ErrMalformedResponse, *item.Name)
		}

		samples := make([]domain.Sample, 0, len(*item.Data))
		for _, s := range *item.Data {
			samples = append(samples, domain.Sample{
				Timestamp: rawString(s.Timestamp),
				Value:     s.Value,
			})
		}
		series = append(series, domain.MetricSeries{
			Name:    *item.Name,
			Context: item.Context,
			Unit:    item.Unit,
			Samples: samples,
		})
	}
	return series, nil
}

// ParseRoles decodes a role listing response into role ids, in the
// order returned.
func ParseRoles(resp *cmapi.Response) ([]string, error) {
	if err := CheckResponse(resp); err != nil {
		return nil, err
	}

	var doc itemsDocument[apiRole]
	if err := json.Unmarshal(resp.Body, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON returned by Cloudera Manager: %v", domain.ErrJSONDecode, err)
	}
	if doc.Items == nil {
		return nil, fmt.Errorf("%w: 'items' field not found in role listing", domain.ErrMalformedResponse)
	}

	roles := make([]string, 0, len(*doc.Items))
	for i, item := range *doc.Items {
		if item.Name == nil {
			return nil, fmt.Errorf("%w: role item %d has no 'name' field", domain.ErrInternal, i)
		}
		roles = append(roles, *item.Name)
	}
	return roles, nil
}

func containsLetter(b []byte) bool {
	for _, c := range b {
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

// rawString renders a JSON scalar without quotes.
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func unescape(b []byte) string {
	var s string
	if err := json.Unmarshal(append(append([]byte{'"'}, b...), '"'), &s); err == nil {
		return s
	}
	return string(b)
}
