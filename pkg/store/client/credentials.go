package client

import (
	"encoding/base64"

	"github.com/de-tools/posture-report/pkg/models/domain"
)

// BasicAuthorization encodes the credentials into the value of an HTTP
// Authorization header.
func BasicAuthorization(c domain.Credentials) string {
	raw := c.Username + ":" + c.Password
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}
