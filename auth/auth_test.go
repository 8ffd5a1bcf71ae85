// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"12 bytes", 12, 24},
		{"16 bytes", 16, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestSessionIDs(t *testing.T) {
	id := NewSessionID()
	if len(id) != 36 {
		t.Errorf("NewSessionID() length = %d, want 36", len(id))
	}
	if NewSessionID() == id {
		t.Error("NewSessionID() produced duplicate IDs")
	}

	parsed, err := ParseSessionID(strings.ToUpper(id))
	if err != nil {
		t.Fatalf("ParseSessionID() error = %v", err)
	}
	if parsed != id {
		t.Errorf("ParseSessionID() = %s, want %s", parsed, id)
	}

	for _, bad := range []string{"", "abc", "'; DROP TABLE ui_session; --"} {
		if _, err := ParseSessionID(bad); !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("ParseSessionID(%q) error = %v, want ErrInvalidSessionID", bad, err)
		}
	}
}

func TestGenerateSessionKey(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		salt      string
	}{
		{"standard", "session123", "secret-salt"},
		{"empty session id", "", "salt"},
		{"empty salt", "session456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateSessionKey(tt.sessionID, tt.salt)

			if key == "" {
				t.Error("GenerateSessionKey() returned empty string")
			}

			if key != GenerateSessionKey(tt.sessionID, tt.salt) {
				t.Error("GenerateSessionKey() is not deterministic")
			}

			if tt.sessionID != "" && tt.salt != "" {
				if key == GenerateSessionKey(tt.sessionID+"x", tt.salt) {
					t.Error("GenerateSessionKey() produced same key for different sessions")
				}
			}

			if strings.Contains(key, "=") {
				t.Error("GenerateSessionKey() contains padding characters")
			}
		})
	}
}

func TestValidateSessionKey(t *testing.T) {
	sessionID := "test-session-123"
	salt := "test-salt"
	validKey := GenerateSessionKey(sessionID, salt)

	tests := []struct {
		name      string
		sessionID string
		key       string
		salt      string
		wantErr   bool
	}{
		{"valid key", sessionID, validKey, salt, false},
		{"wrong key", sessionID, "wrong-key", salt, true},
		{"wrong session id", "different-session", validKey, salt, true},
		{"wrong salt", sessionID, validKey, "different-salt", true},
		{"empty key", sessionID, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSessionKey(tt.sessionID, tt.key, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSessionKey() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && err != ErrInvalidSessionKey {
				t.Errorf("ValidateSessionKey() error = %v, want %v", err, ErrInvalidSessionKey)
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"IPv4", "192.168.1.1", "ip-salt"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334", "ip-salt"},
		{"localhost", "127.0.0.1", "ip-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}

			for _, c := range hash {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("HashIP() contains invalid hex char: %c", c)
				}
			}

			if hash != HashIP(tt.ip, tt.salt) {
				t.Error("HashIP() is not deterministic")
			}
		})
	}

	if HashIP("192.168.1.1", "salt") == HashIP("192.168.1.2", "salt") {
		t.Error("HashIP() produced same hash for different IPs")
	}
	if HashIP("192.168.1.1", "salt1") == HashIP("192.168.1.1", "salt2") {
		t.Error("HashIP() produced same hash for different salts")
	}
}

func BenchmarkGenerateSessionKey(b *testing.B) {
	sessionID := NewSessionID()
	salt := "test-salt"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GenerateSessionKey(sessionID, salt)
	}
}
