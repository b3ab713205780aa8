package ups

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"text/template"
	"time"

	"github.com/google/uuid"
	"github.com/tournevent/rating/pkg/rating"
)

// Production and testing endpoints for the UPS web services.
const (
	productionBaseURL = "https://onlinetools.ups.com/webservices/"
	sandboxBaseURL    = "https://wwwcie.ups.com/webservices/"

	rateOperation = "Rate"
)

// SOAPTransport is the production implementation of RateTransport.
type SOAPTransport struct {
	baseURL    string
	creds      rating.Credentials
	httpClient *http.Client
	observer   rating.PayloadObserver
}

// SOAPTransportConfig holds configuration for the SOAP transport.
type SOAPTransportConfig struct {
	Credentials rating.Credentials
	Timeout     time.Duration
	// BaseURL overrides the endpoint selected from the credentials.
	BaseURL string
	// Observer, when set, receives every outbound and inbound envelope.
	Observer rating.PayloadObserver
}

// NewSOAPTransport creates a SOAP transport for production use. The
// environment flag on the credentials selects the production or sandbox
// endpoint.
func NewSOAPTransport(cfg SOAPTransportConfig) *SOAPTransport {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	baseURL := sandboxBaseURL
	if cfg.Credentials.Production {
		baseURL = productionBaseURL
	}
	if cfg.BaseURL != "" {
		baseURL = cfg.BaseURL
	}

	return &SOAPTransport{
		baseURL: baseURL,
		creds:   cfg.Credentials,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		observer: cfg.Observer,
	}
}

// ProcessRate submits a rating request to the UPS RateWS endpoint.
func (t *SOAPTransport) ProcessRate(ctx context.Context, req *RateRequest) (*RateResponse, error) {
	envelope, err := t.buildEnvelope(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if t.observer != nil {
		t.observer.ObservePayload(rating.PayloadEgress, rateOperation, envelope)
	}

	endpoint := t.baseURL + rateOperation
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(envelope))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.Header.Set("SOAPAction", "http://onlinetools.ups.com/webservices/RateBinding/v1.1/ProcessRate")

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling rate endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading rate response: %w", err)
	}

	if t.observer != nil {
		t.observer.ObservePayload(rating.PayloadIngress, rateOperation, body)
	}

	var env soapEnvelope
	if err := xml.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("rate endpoint returned HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if env.Body.Fault != nil {
		return nil, faultToAPIError(env.Body.Fault)
	}
	if env.Body.RateResponse == nil {
		return nil, fmt.Errorf("no rate data in response (HTTP %d)", resp.StatusCode)
	}
	return env.Body.RateResponse, nil
}

// ============================================================================
// SOAP Envelope
// ============================================================================

const soapEnvelopeTemplate = `<?xml version="1.0" encoding="utf-8"?>
<soapenv:Envelope xmlns:soapenv="http://schemas.xmlsoap.org/soap/envelope/">
  <soapenv:Header>
    <upss:UPSSecurity xmlns:upss="http://www.ups.com/XMLSchema/XOLTWS/UPSS/v1.0">
      <upss:UsernameToken>
        <upss:Username>{{.Username}}</upss:Username>
        <upss:Password>{{.Password}}</upss:Password>
      </upss:UsernameToken>
      <upss:ServiceAccessToken>
        <upss:AccessLicenseNumber>{{.AccessLicenseNumber}}</upss:AccessLicenseNumber>
      </upss:ServiceAccessToken>
    </upss:UPSSecurity>
    <common:TransactionReference xmlns:common="http://www.ups.com/XMLSchema/XOLTWS/Common/v1.0">
      <common:CustomerContext>{{.RequestRef}}</common:CustomerContext>
    </common:TransactionReference>
  </soapenv:Header>
  <soapenv:Body>
    {{.Body}}
  </soapenv:Body>
</soapenv:Envelope>`

var envelopeTmpl = template.Must(template.New("envelope").Parse(soapEnvelopeTemplate))

func (t *SOAPTransport) buildEnvelope(req *RateRequest) ([]byte, error) {
	body, err := xml.MarshalIndent(req, "    ", "  ")
	if err != nil {
		return nil, err
	}

	data := struct {
		Username            string
		Password            string
		AccessLicenseNumber string
		RequestRef          string
		Body                string
	}{
		Username:            t.creds.Username,
		Password:            t.creds.Password,
		AccessLicenseNumber: t.creds.AccessLicenseNumber,
		RequestRef:          "req-" + uuid.New().String(),
		Body:                string(body),
	}

	var buf bytes.Buffer
	if err := envelopeTmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ============================================================================
// SOAP Response Envelope Types
// ============================================================================

type soapEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    soapBody `xml:"Body"`
}

type soapBody struct {
	Fault        *soapFault    `xml:"Fault,omitempty"`
	RateResponse *RateResponse `xml:"RateResponse,omitempty"`
}

type soapFault struct {
	Code   string      `xml:"faultcode"`
	String string      `xml:"faultstring"`
	Detail faultDetail `xml:"detail"`
}

type faultDetail struct {
	PrimaryErrorCode *CodeDescription `xml:"Errors>ErrorDetail>PrimaryErrorCode"`
}

func faultToAPIError(fault *soapFault) *APIError {
	if fault.Detail.PrimaryErrorCode != nil {
		return &APIError{
			Code:        fault.Detail.PrimaryErrorCode.Code,
			Description: fault.Detail.PrimaryErrorCode.Description,
		}
	}
	return &APIError{
		Code:        fault.Code,
		Description: fault.String,
	}
}

var _ RateTransport = (*SOAPTransport)(nil)
