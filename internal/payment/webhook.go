package payment

// WebhookPayload is the body posted by the gateway when a payment settles.
// Data is kept as a raw map: the signature covers the exact key/value set
// the gateway sent, so decoding into a struct before verification would
// lose unknown fields and break the digest.
type WebhookPayload struct {
	Code      string                 `json:"code"`
	Desc      string                 `json:"desc"`
	Success   bool                   `json:"success"`
	Data      map[string]interface{} `json:"data"`
	Signature string                 `json:"signature"`
}

// Verifier checks webhook payload signatures against the shared checksum key.
type Verifier struct {
	checksumKey string
}

// NewVerifier creates a webhook verifier.
func NewVerifier(checksumKey string) *Verifier {
	return &Verifier{checksumKey: checksumKey}
}

// Verify reports whether the payload's signature matches the HMAC-SHA256 of
// its canonicalized data section.
func (v *Verifier) Verify(p WebhookPayload) bool {
	if p.Data == nil || p.Signature == "" {
		return false
	}
	return Verify(p.Data, v.checksumKey, p.Signature)
}
