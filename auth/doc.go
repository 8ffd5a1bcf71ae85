// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session identifiers and keys.

# Session IDs

Every UI session is identified by a random UUID:

	id := auth.NewSessionID()
	id, err := auth.ParseSessionID(r.PathValue("id"))

ParseSessionID rejects anything that is not a UUID, which keeps junk out of
database lookups.

# Session Keys

Session keys use HMAC-SHA256 to create deterministic, verifiable keys:

	key := auth.GenerateSessionKey(sessionID, salt)
	err := auth.ValidateSessionKey(sessionID, key, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same session ID and salt always produce the same key. This allows
validation without storing the key in the database. Clients send it in the
X-Session-Key header.

# ID Generation

Random hex IDs for uploaded file references:

	id, err := auth.GenerateID(12)  // 24 hex characters

# IP Hashing

Sessions keep a salted hash of the creating client's address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
