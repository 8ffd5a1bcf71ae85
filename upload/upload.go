// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upload

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

var (
	ErrNoFile           = errors.New("no file selected")
	ErrUnknownDragEvent = errors.New("unknown drag event")
)

// Source records how the file was picked.
type Source string

const (
	SourceClick Source = "click"
	SourceDrop  Source = "drop"
)

func ParseSource(s string) Source {
	if Source(s) == SourceDrop {
		return SourceDrop
	}
	return SourceClick
}

type DragEvent string

const (
	DragEnter DragEvent = "enter"
	DragOver  DragEvent = "over"
	DragLeave DragEvent = "leave"
	DragDrop  DragEvent = "drop"
)

func ParseDragEvent(s string) (DragEvent, error) {
	switch ev := DragEvent(s); ev {
	case DragEnter, DragOver, DragLeave, DragDrop:
		return ev, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDragEvent, s)
	}
}

// FileRef is the opaque handle to the selected file.
type FileRef struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	StoredPath  string    `json:"-"`
	Source      Source    `json:"source"`
	SelectedAt  time.Time `json:"selected_at"`
}

// Intake is the single-slot upload form.
type Intake struct {
	File        *FileRef
	DropActive  bool
	SubmittedAt *time.Time
}

// Select puts f into the slot and returns whatever it displaced.
func Select(in Intake, f FileRef) (Intake, *FileRef) {
	replaced := in.File
	in.File = &f
	in.DropActive = false
	in.SubmittedAt = nil
	return in, replaced
}

// Drag toggles the drop-target highlight.
func Drag(in Intake, ev DragEvent) Intake {
	switch ev {
	case DragEnter, DragOver:
		in.DropActive = true
	case DragLeave, DragDrop:
		in.DropActive = false
	}
	return in
}

func CanSubmit(in Intake) bool {
	return in.File != nil
}

// Submit marks the selected file as handed off. Nothing is transferred.
func Submit(in Intake, now time.Time) (Intake, error) {
	if !CanSubmit(in) {
		return in, ErrNoFile
	}
	in.SubmittedAt = &now
	return in, nil
}

// Policy is the advertised constraint text. It is informational only.
type Policy struct {
	AcceptedExtensions []string
	AdvertisedMaxBytes uint64
}

func DefaultPolicy() Policy {
	return Policy{
		AcceptedExtensions: []string{
			".txt", ".vtt", ".doc", ".docx", ".pdf", ".mp3",
			".m4a", ".wav", ".aac", ".avi", ".mov", ".mp4",
		},
		AdvertisedMaxBytes: 1_000_000_000,
	}
}

func (p Policy) accepts(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range p.AcceptedExtensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

// Advise lists the advertised constraints a file does not meet. The file is
// kept either way.
func Advise(p Policy, name string, size int64) []string {
	notes := []string{}
	if len(p.AcceptedExtensions) > 0 && !p.accepts(name) {
		notes = append(notes, fmt.Sprintf("%s is not a listed file type", filepath.Ext(name)))
	}
	if p.AdvertisedMaxBytes > 0 && size > 0 && uint64(size) > p.AdvertisedMaxBytes {
		notes = append(notes, fmt.Sprintf("file is larger than %s", humanize.Bytes(p.AdvertisedMaxBytes)))
	}
	return notes
}
