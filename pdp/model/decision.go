package model

const (
	EffectAllow = "allow"
	EffectDeny  = "deny"
)

// AccessDecision is the answer to an AccessRequest. It is computed per call
// and never stored.
type AccessDecision struct {
	Allowed bool   `json:"allowed"`
	Effect  string `json:"effect"`
	Reason  string `json:"reason,omitempty"`
}

func Allow(reason string) AccessDecision {
	return AccessDecision{Allowed: true, Effect: EffectAllow, Reason: reason}
}

func Deny(reason string) AccessDecision {
	return AccessDecision{Allowed: false, Effect: EffectDeny, Reason: reason}
}
