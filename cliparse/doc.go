// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

main loads a .env file first, so its values arrive through the environment.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: Connection string (default meeting-intel.db for sqlite)
  - SessionKeySalt: Secret for session key HMAC (required)
  - UploadDir: Where uploaded files are kept (default: uploads)
  - MaxUploadBytes: Hard request size cap, 0 disables it (default: 0)
  - LogFormat: text (default) or json
  - Policy: Interaction constants, see below

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type
	-session-salt  Session key salt
	-upload-dir    Upload directory
	-max-upload    Hard upload cap in bytes
	-policy        YAML policy file
	-log-format    Log format

# Environment Variables

Flags fall back to environment variables:

	PORT             → -p
	DATABASE_URL     → -d
	DATABASE_TYPE    → -t
	SESSION_KEY_SALT → -session-salt
	UPLOAD_DIR       → -upload-dir
	MAX_UPLOAD_BYTES → -max-upload
	POLICY_FILE      → -policy
	LOG_FORMAT       → -log-format

CLI flags take precedence over environment variables.

# Policy File

Gesture thresholds, the back-to-top offset, the trial quota and the advertised
upload constraints are read from YAML on top of the defaults:

	dismiss_threshold_px: 80
	swipe_open_threshold_px: 50
	back_to_top_px: 200
	trial_quota: 5h
	accepted_extensions: [".txt", ".vtt", ".pdf", ".mp3", ".wav"]
	advertised_max_bytes: 1000000000
*/
package cliparse
