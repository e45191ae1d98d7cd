package mail

import "testing"

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage("relay@example.org", "ops@example.org", "✅ Tor Relay Report: OnionPie", "report body")
	if err != nil {
		t.Fatalf("buildMessage returned error: %v", err)
	}
	if msg == nil {
		t.Fatal("buildMessage returned nil message")
	}
}

func TestBuildMessageRejectsBadAddresses(t *testing.T) {
	if _, err := buildMessage("not-an-address", "ops@example.org", "s", "b"); err == nil {
		t.Error("invalid from address should fail")
	}
	if _, err := buildMessage("relay@example.org", "not-an-address", "s", "b"); err == nil {
		t.Error("invalid to address should fail")
	}
}
