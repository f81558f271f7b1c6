// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is the shared client for outbound calls (ledger API client,
// roster sync).
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
}
