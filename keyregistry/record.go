package keyregistry

import "github.com/shopsentry/agentgate/httpsig"

// KeyRecord is the JSON shape returned by the key registry's
// GET /keys/<key_id> endpoint.
type KeyRecord struct {
	KeyID       string            `json:"key_id"`
	Algorithm   httpsig.Algorithm `json:"algorithm"`
	IsActive    string            `json:"is_active"`
	PublicKey   string            `json:"public_key"`
	Description string            `json:"description"`
	AgentID     int               `json:"agent_id"`
	AgentName   string            `json:"agent_name"`
	AgentDomain string            `json:"agent_domain"`
}

// Active reports whether the record's IsActive field is the literal string
// "true". Any other value, including absence, is treated as inactive.
func (k KeyRecord) Active() bool {
	return k.IsActive == "true"
}
