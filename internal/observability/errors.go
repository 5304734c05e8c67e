package observability

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"net"
	"strings"

	"github.com/baxromumarov/seo-auditor/internal/httpx"
)

const (
	ErrorTimeout     = "TIMEOUT"
	ErrorDNS         = "DNS"
	ErrorRefused     = "CONNECTION_REFUSED"
	ErrorTLS         = "TLS"
	ErrorStatus      = "STATUS"
	ErrorContentType = "CONTENT_TYPE"
	ErrorTooLarge    = "TOO_LARGE"
	ErrorInvalidURL  = "INVALID_URL"
	ErrorNetwork     = "NETWORK"
	ErrorFailed      = "FAILED"
)

// ClassifyFetchError maps a fetch failure to a stable error code.
func ClassifyFetchError(err error) string {
	if err == nil {
		return ErrorFailed
	}
	if errors.Is(err, httpx.ErrNotHTML) {
		return ErrorContentType
	}
	if errors.Is(err, httpx.ErrBodyTooLarge) {
		return ErrorTooLarge
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		if dnsErr.IsTimeout {
			return ErrorTimeout
		}
		return ErrorDNS
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorTimeout
	}
	if isTLSError(err) {
		return ErrorTLS
	}
	var fe *httpx.FetchError
	if errors.As(err, &fe) && fe.Status >= 400 {
		return ErrorStatus
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline exceeded"):
		return ErrorTimeout
	case strings.Contains(msg, "no such host"):
		return ErrorDNS
	case strings.Contains(msg, "connection refused"):
		return ErrorRefused
	case strings.Contains(msg, "certificate") || strings.Contains(msg, "tls"):
		return ErrorTLS
	case strings.Contains(msg, "empty url") || strings.Contains(msg, "unsupported scheme") || strings.Contains(msg, "no host"):
		return ErrorInvalidURL
	case errors.As(err, &fe):
		return ErrorNetwork
	}
	return ErrorFailed
}

func isTLSError(err error) bool {
	var unknownAuth x509.UnknownAuthorityError
	var invalid x509.CertificateInvalidError
	var hostname x509.HostnameError
	var record tls.RecordHeaderError
	var verify *tls.CertificateVerificationError
	return errors.As(err, &unknownAuth) ||
		errors.As(err, &invalid) ||
		errors.As(err, &hostname) ||
		errors.As(err, &record) ||
		errors.As(err, &verify)
}

// FriendlyMessage turns an error code into text suitable for end users.
func FriendlyMessage(code string) string {
	switch code {
	case ErrorTimeout:
		return "Audit timed out. Please try again."
	case ErrorDNS:
		return "We couldn't resolve this domain (DNS). Please double-check the URL and try again."
	case ErrorRefused:
		return "The server refused the connection. Please check the site is up and try again."
	case ErrorTLS:
		return "TLS/SSL handshake failed for this URL. Please confirm the site supports HTTPS and try again."
	case ErrorStatus:
		return "The page answered with an error status, so it could not be audited."
	case ErrorContentType:
		return "The URL did not return an HTML page."
	case ErrorTooLarge:
		return "The page is too large to audit."
	case ErrorInvalidURL:
		return "The URL is not valid. Use a full address like https://example.com."
	case ErrorNetwork:
		return "Network error while auditing this page. Please try again in a moment."
	default:
		return "Audit failed. Please try again in a moment."
	}
}
