// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package upload

import (
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type Tone string

const (
	ToneHighlighted Tone = "highlighted"
	ToneIdle        Tone = "idle"
	ToneDisabled    Tone = "disabled"
	TonePrimary     Tone = "primary"
)

type FileLine struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	SizeText string    `json:"size_text"`
	Source   Source    `json:"source"`
	Selected time.Time `json:"selected_at"`
	Notes    []string  `json:"notes"`
}

type Button struct {
	Label   string `json:"label"`
	Enabled bool   `json:"enabled"`
	Tone    Tone   `json:"tone"`
}

type Descriptor struct {
	DropActive   bool       `json:"drop_active"`
	DropTone     Tone       `json:"drop_tone"`
	Prompt       string     `json:"prompt"`
	AcceptedText string     `json:"accepted_text"`
	MaxSizeText  string     `json:"max_size_text"`
	QualityHint  string     `json:"quality_hint"`
	File         *FileLine  `json:"file,omitempty"`
	Upload       Button     `json:"upload"`
	SubmittedAt  *time.Time `json:"submitted_at,omitempty"`
}

func Render(in Intake, p Policy) Descriptor {
	d := Descriptor{
		DropActive:   in.DropActive,
		DropTone:     ToneIdle,
		Prompt:       "Click to upload or drag and drop",
		AcceptedText: "Supported: " + strings.Join(p.AcceptedExtensions, ", "),
		QualityHint:  "Quality affects summary, follow-up and coaching",
		Upload:       Button{Label: "Upload", Tone: ToneDisabled},
		SubmittedAt:  in.SubmittedAt,
	}
	if in.DropActive {
		d.DropTone = ToneHighlighted
	}
	if p.AdvertisedMaxBytes > 0 {
		d.MaxSizeText = "Maximum file size: " + humanize.Bytes(p.AdvertisedMaxBytes)
	}
	if f := in.File; f != nil {
		d.File = &FileLine{
			ID:       f.ID,
			Name:     f.Name,
			Size:     f.Size,
			SizeText: humanize.Bytes(uint64(max(f.Size, 0))),
			Source:   f.Source,
			Selected: f.SelectedAt,
			Notes:    Advise(p, f.Name, f.Size),
		}
	}
	if CanSubmit(in) {
		d.Upload.Enabled = true
		d.Upload.Tone = TonePrimary
	}
	return d
}
