package services

import "testing"

func TestParseVerdictWellFormed(t *testing.T) {
	v, err := parseVerdict(`{"approved": true, "confidence": 87, "reason": "racks and dumbbells visible"}`)
	if err != nil {
		t.Fatalf("parseVerdict returned error: %v", err)
	}
	if !v.Approved {
		t.Error("Approved = false, want true")
	}
	if v.Confidence != 87 {
		t.Errorf("Confidence = %d, want 87", v.Confidence)
	}
	if v.Reason != "racks and dumbbells visible" {
		t.Errorf("Reason = %q, want the gateway's explanation", v.Reason)
	}
}

func TestParseVerdictEmbeddedInProse(t *testing.T) {
	content := "Sure, here is my assessment.\n" +
		`{"approved": false, "confidence": 40, "reason": "looks like a living room"}` +
		"\nLet me know if you need anything else."

	v, err := parseVerdict(content)
	if err != nil {
		t.Fatalf("parseVerdict returned error: %v", err)
	}
	if v.Approved {
		t.Error("Approved = true, want false")
	}
	if v.Confidence != 40 {
		t.Errorf("Confidence = %d, want 40", v.Confidence)
	}
}

func TestParseVerdictRejectsPartialVerdicts(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"missing approved", `{"confidence": 80, "reason": "gym floor"}`},
		{"missing confidence", `{"approved": true, "reason": "gym floor"}`},
		{"missing reason", `{"approved": true, "confidence": 80}`},
		{"empty object", `{}`},
	}

	for _, tc := range cases {
		if _, err := parseVerdict(tc.content); err == nil {
			t.Errorf("%s: parseVerdict accepted a partial verdict", tc.name)
		}
	}
}

func TestParseVerdictRejectsConfidenceOutOfRange(t *testing.T) {
	for _, confidence := range []string{"-1", "101", "500"} {
		content := `{"approved": true, "confidence": ` + confidence + `, "reason": "gym"}`
		if _, err := parseVerdict(content); err == nil {
			t.Errorf("parseVerdict accepted confidence %s", confidence)
		}
	}
}

func TestParseVerdictRejectsNonJSONContent(t *testing.T) {
	for _, content := range []string{
		"I cannot determine whether this is a gym.",
		"",
		`{"approved": yes, "confidence": 80, "reason": "gym"}`,
	} {
		if _, err := parseVerdict(content); err == nil {
			t.Errorf("parseVerdict accepted %q", content)
		}
	}
}
