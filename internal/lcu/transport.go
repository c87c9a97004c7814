package lcu

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Transport is the generic authenticated-request primitive of §4.2: it
// attaches Basic auth derived from the current credential, accepts
// self-signed TLS on loopback, and retries exactly once on 401/403 after
// forcing a credential refresh.
//
// Grounded on gitprovider.doJSON's single-helper shape (build request, set
// auth header, marshal/unmarshal, switch on status code), extended with
// the refresh-and-retry-once behavior that provider has no need for.
type Transport struct {
	discovery *CredentialDiscovery

	control *http.Client
	probe   *http.Client
	public  *http.Client
}

// NewTransport builds a Transport with the three purpose-scoped HTTP
// clients constructed once at startup (§5's "shared singletons").
func NewTransport(discovery *CredentialDiscovery) *Transport {
	newClient := func(timeout time.Duration) *http.Client {
		return &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, //nolint:gosec // loopback control endpoint uses a self-signed cert by design
			},
		}
	}
	return &Transport{
		discovery: discovery,
		control:   newClient(30 * time.Second),
		probe:     newClient(5 * time.Second),
		public:    newClient(10 * time.Second),
	}
}

// Call issues an authenticated JSON request against the control endpoint
// and decodes the response into respBody (which may be nil).
func (t *Transport) Call(ctx context.Context, method, path string, reqBody, respBody any) error {
	return t.callControl(ctx, t.control, method, path, reqBody, respBody)
}

// Probe is Call with the shorter probe timeout, used by the Connection
// Monitor.
func (t *Transport) Probe(ctx context.Context, method, path string, respBody any) error {
	return t.callControl(ctx, t.probe, method, path, nil, respBody)
}

// SetProbeTimeout overrides the probe client's timeout, letting the CLI's
// --probe-timeout flag tune how quickly the Connection Monitor gives up on
// a single probe.
func (t *Transport) SetProbeTimeout(timeout time.Duration) {
	t.probe.Timeout = timeout
}

// CallRaw returns the raw response body for binary or non-JSON assets.
func (t *Transport) CallRaw(ctx context.Context, method, path string) ([]byte, error) {
	cred, err := t.discovery.Current(ctx)
	if err != nil {
		return nil, err
	}
	url := controlURL(cred.AppPort, path)
	status, body, err := t.doOnce(ctx, t.control, method, url, nil, cred.RemotingToken)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, NewHTTPStatusError(status, string(body))
	}
	return body, nil
}

// CallPublic issues an unauthenticated request to the in-game endpoint on
// the given port (§6's live-client-data paths).
func (t *Transport) CallPublic(ctx context.Context, port int, method, path string, respBody any) error {
	url := fmt.Sprintf("https://127.0.0.1:%d%s", port, path)
	status, body, err := t.doOnce(ctx, t.public, method, url, nil, "")
	if err != nil {
		return err
	}
	return decodeResponse(status, body, respBody)
}

func (t *Transport) callControl(ctx context.Context, client *http.Client, method, path string, reqBody, respBody any) error {
	cred, err := t.discovery.Current(ctx)
	if err != nil {
		return err
	}

	status, body, err := t.doOnce(ctx, client, method, controlURL(cred.AppPort, path), reqBody, cred.RemotingToken)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		cred, err = t.discovery.Refresh(ctx)
		if err != nil {
			return err
		}
		status, body, err = t.doOnce(ctx, client, method, controlURL(cred.AppPort, path), reqBody, cred.RemotingToken)
		if err != nil {
			return err
		}
		if status == http.StatusUnauthorized || status == http.StatusForbidden {
			return &Error{Kind: KindUnauthorized, Message: "still unauthorized after credential refresh"}
		}
	}

	return decodeResponse(status, body, respBody)
}

func (t *Transport) doOnce(ctx context.Context, client *http.Client, method, url string, reqBody any, token string) (int, []byte, error) {
	var reader io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return 0, nil, NewError(KindParse, err, "marshal request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return 0, nil, NewError(KindTransport, err, "build request")
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.SetBasicAuth("riot", token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, NewError(KindTransport, err, "%s %s", method, url)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, NewError(KindTransport, err, "read response body")
	}
	return resp.StatusCode, data, nil
}

func decodeResponse(status int, body []byte, respBody any) error {
	if status == http.StatusNoContent {
		return nil
	}
	if status < 200 || status >= 300 {
		return NewHTTPStatusError(status, string(body))
	}
	if respBody != nil && len(body) > 0 {
		if err := json.Unmarshal(body, respBody); err != nil {
			return NewError(KindParse, err, "decode response")
		}
	}
	return nil
}

func controlURL(port int, path string) string {
	return fmt.Sprintf("https://127.0.0.1:%d%s", port, path)
}
