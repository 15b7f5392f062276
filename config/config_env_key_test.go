package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"gate": map[string]any{
			"turnstileSecret": "",
			"rescueInterval":  "400ms",
		},
		"firestore": map[string]any{
			"profileDocId": "main",
		},
		"auth": map[string]any{
			"adminUid": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "GATE_TURNSTILESECRET", want: "gate.turnstileSecret"},
		{envKey: "GATE_RESCUEINTERVAL", want: "gate.rescueInterval"},
		{envKey: "FIRESTORE_PROFILEDOCID", want: "firestore.profileDocId"},
		{envKey: "AUTH_ADMINUID", want: "auth.adminUid"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}
