// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package upload is the transcript upload intake: one file slot, a drop-target
highlight and an Upload button that stays disabled until a file is picked.

# Single Slot

Select always replaces the held file and hands back the old reference so
its blob can be removed:

	in, replaced := upload.Select(in, ref)

# Constraints

The accepted extensions and the 1 GB limit are advertised text. Advise turns
a mismatch into a note on the file line but the file is still accepted.

# Storage

DiskStore streams content into a directory using uuid file names.
*/
package upload
