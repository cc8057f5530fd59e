package chains

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// parsePaymentURI extracts the address of a BIP21-style payment URI
// (scheme:address?params) whose scheme is one of schemes.
func parsePaymentURI(raw string, schemes []string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Opaque == "" {
		return "", false
	}
	if !lo.Contains(schemes, u.Scheme) {
		return "", false
	}

	params, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return "", false
	}
	for key, values := range params {
		// Unknown required parameters make the URI unusable.
		if strings.HasPrefix(key, "req-") {
			return "", false
		}
		if key == "amount" {
			for _, v := range values {
				amount, err := strconv.ParseFloat(v, 64)
				if err != nil || amount < 0 {
					return "", false
				}
			}
		}
	}
	return u.Opaque, true
}
