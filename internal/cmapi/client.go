// Package cmapi is a minimal Cloudera Manager REST API client. It only
// performs authenticated GETs and hands the raw response back; decoding
// is left to the caller.
package cmapi

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/magarciasopo/nagios-plugins/internal/domain"

	"github.com/sirupsen/logrus"
)

const (
	// APIVersion is the API path prefix used for every request.
	APIVersion = "v1"

	// DefaultPort is the plaintext Cloudera Manager port.
	DefaultPort = 7180
	// DefaultTLSPort is the port used when TLS is enabled and no port was given.
	DefaultTLSPort = 7183

	// CertificateHint is appended to errors caused by an untrusted certificate.
	CertificateHint = " (try --ssl-CA-path or --ssl-noverify if using a self-signed certificate)"

	// maxBodyBytes bounds how much of a response is read.
	maxBodyBytes = 32 << 20
)

// Options configures a Client.
type Options struct {
	Host     string
	Port     int
	User     string
	Password string

	TLS         bool
	CAPath      string
	TLSNoVerify bool

	// Timeout bounds each HTTP request. The check's overall deadline is
	// carried by the request context.
	Timeout time.Duration
}

// Response is the raw outcome of a request.
type Response struct {
	StatusCode int
	// StatusText is the reason phrase, e.g. "Unauthorized".
	StatusText string
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client performs authenticated GET requests against the API.
type Client struct {
	baseURL  string
	user     string
	password string
	client   *http.Client
	log      logrus.FieldLogger
}

// NewClient builds a Client, loading the CA directory when one is set.
func NewClient(opts Options, log logrus.FieldLogger) (*Client, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	scheme := "http"
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.TLS {
		scheme = "https"
		tlsConfig, err := newTLSConfig(opts.CAPath, opts.TLSNoVerify)
		if err != nil {
			return nil, err
		}
		transport.TLSClientConfig = tlsConfig
	}

	host := opts.Host
	if strings.Contains(host, ":") && !strings.HasPrefix(host, "[") {
		host = "[" + host + "]"
	}

	return &Client{
		baseURL:  fmt.Sprintf("%s://%s:%d/api/%s", scheme, host, opts.Port, APIVersion),
		user:     opts.User,
		password: opts.Password,
		client:   &http.Client{Timeout: opts.Timeout, Transport: transport},
		log:      log,
	}, nil
}

// BaseURL returns the API root, e.g. http://cm:7180/api/v1.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get fetches resource (relative to the API root) with the given query.
// A non-2xx status is not an error here; callers inspect the Response.
func (c *Client) Get(ctx context.Context, resource string, query url.Values) (*Response, error) {
	target := c.baseURL + "/" + strings.TrimPrefix(resource, "/")
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build request: %v", domain.ErrTransport, err)
	}
	req.SetBasicAuth(c.user, c.password)
	req.Header.Set("Accept", "application/json")

	c.log.WithFields(logrus.Fields{"url": target, "user": c.user}).Info("querying Cloudera Manager")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyRequestError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classifyRequestError(ctx, err)
	}

	c.log.WithFields(logrus.Fields{
		"status":  resp.StatusCode,
		"bytes":   len(body),
		"elapsed": time.Since(start).String(),
	}).Debug("received response")
	c.log.WithField("body", string(body)).Trace("response body")

	return &Response{
		StatusCode: resp.StatusCode,
		StatusText: reasonPhrase(resp),
		Body:       body,
	}, nil
}

// reasonPhrase strips the numeric code from resp.Status, falling back to
// the standard text for the code.
func reasonPhrase(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func classifyRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	if IsCertificateError(err) {
		return fmt.Errorf("%w: %v%s", domain.ErrTransport, err, CertificateHint)
	}
	return fmt.Errorf("%w: %v", domain.ErrTransport, err)
}

// IsCertificateError reports whether err stems from a certificate the
// client could not verify.
func IsCertificateError(err error) bool {
	if err == nil {
		return false
	}
	var unknownAuthority x509.UnknownAuthorityError
	var invalid x509.CertificateInvalidError
	var hostname x509.HostnameError
	var verification *tls.CertificateVerificationError
	if errors.As(err, &unknownAuthority) || errors.As(err, &invalid) ||
		errors.As(err, &hostname) || errors.As(err, &verification) {
		return true
	}
	return LooksLikeCertificateFailure(err.Error())
}

// LooksLikeCertificateFailure matches status or error text that reports
// an untrusted certificate.
func LooksLikeCertificateFailure(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "certificate verify failed") ||
		strings.Contains(msg, "certificate signed by unknown authority") ||
		strings.Contains(msg, "x509:")
}
