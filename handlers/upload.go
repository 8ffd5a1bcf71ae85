// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/meeting-intel/auth"
	"github.com/danielhkuo/meeting-intel/cliparse"
	"github.com/danielhkuo/meeting-intel/metrics"
	"github.com/danielhkuo/meeting-intel/middleware"
	"github.com/danielhkuo/meeting-intel/models"
	"github.com/danielhkuo/meeting-intel/upload"
)

// maxFieldBytes bounds the non-file multipart fields
const maxFieldBytes = 64

var errMultipleFiles = errors.New("only one file may be uploaded")

type UploadHandler struct {
	base
	store *upload.DiskStore
}

func NewUploadHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *UploadHandler {
	return &UploadHandler{
		base:  newBase(db, cfg, m),
		store: upload.NewDiskStore(cfg.UploadDir),
	}
}

// GetUpload handles GET /sessions/{id}/upload
func (h *UploadHandler) GetUpload(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

	in, err := loadUpload(r.Context(), h.db, sessionID)
	if err != nil {
		storageError(w, sessionID, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UploadResponse{
		Upload: upload.Render(in, h.uploadPolicy()),
	})
}

// Drag handles POST /sessions/{id}/upload/drag
func (h *UploadHandler) Drag(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var req models.UploadDragRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ev, err := upload.ParseDragEvent(req.Event)
	if err != nil {
		h.metrics.Reject("upload", "drag")
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	h.apply(w, r, sessionID, "drag_"+string(ev), func(in upload.Intake, _ time.Time) (upload.Intake, error) {
		return upload.Drag(in, ev), nil
	})
}

// Submit handles POST /sessions/{id}/upload/submit
func (h *UploadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	h.apply(w, r, sessionID, "submit", func(in upload.Intake, now time.Time) (upload.Intake, error) {
		return upload.Submit(in, now)
	})
}

// SelectFile handles POST /sessions/{id}/upload/file
// The body is multipart with a "file" part and an optional "source" field
// (click or drop). The file is streamed to disk before the session is
// locked. A file already in the slot is replaced.
func (h *UploadHandler) SelectFile(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	if h.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
	}

	mr, err := r.MultipartReader()
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Expected multipart/form-data")
		return
	}

	ref, err := h.receive(mr)
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
				"Upload exceeds "+humanize.Bytes(uint64(maxErr.Limit)))
		case errors.Is(err, upload.ErrNoFile):
			middleware.ErrorResponse(w, http.StatusBadRequest, "file is required")
		case errors.Is(err, errMultipleFiles):
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		default:
			slog.Error("failed to store upload", "session_id", sessionID, "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store upload")
		}
		return
	}
	ref.SelectedAt = h.now()

	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

	var (
		in       upload.Intake
		replaced *upload.FileRef
	)
	err = h.withTx(r.Context(), func(tx *sql.Tx) error {
		current, err := loadUpload(r.Context(), tx, sessionID)
		if err != nil {
			return err
		}
		in, replaced = upload.Select(current, ref)
		return saveUpload(r.Context(), tx, sessionID, in)
	})
	if err != nil {
		h.discard(ref.StoredPath)
		storageError(w, sessionID, err)
		return
	}

	if replaced != nil {
		h.discard(replaced.StoredPath)
	}

	h.metrics.Transition("upload", "select")
	h.metrics.ObserveUpload(ref.Size)
	slog.Info("file selected",
		"session_id", sessionID,
		"file_id", ref.ID,
		"size", humanize.Bytes(uint64(ref.Size)),
		"source", ref.Source,
		"replaced", replaced != nil,
	)

	middleware.JSONResponse(w, http.StatusOK, models.UploadResponse{
		Upload:   upload.Render(in, h.uploadPolicy()),
		Replaced: replaced != nil,
	})
}

// receive streams the multipart body and stores the file part
func (h *UploadHandler) receive(mr *multipart.Reader) (upload.FileRef, error) {
	var ref upload.FileRef
	source := upload.SourceClick

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			h.discard(ref.StoredPath)
			return upload.FileRef{}, err
		}

		switch part.FormName() {
		case "file":
			if ref.StoredPath != "" {
				part.Close()
				h.discard(ref.StoredPath)
				return upload.FileRef{}, errMultipleFiles
			}
			fileID, err := auth.GenerateID(12)
			if err != nil {
				part.Close()
				return upload.FileRef{}, err
			}
			path, size, err := h.store.Save(part, part.FileName())
			part.Close()
			if err != nil {
				return upload.FileRef{}, err
			}
			ctype := part.Header.Get("Content-Type")
			if ctype == "" {
				ctype = "application/octet-stream"
			}
			ref = upload.FileRef{
				ID:          fileID,
				Name:        part.FileName(),
				Size:        size,
				ContentType: ctype,
				StoredPath:  path,
			}
		case "source":
			b, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			part.Close()
			if err != nil {
				h.discard(ref.StoredPath)
				return upload.FileRef{}, err
			}
			source = upload.ParseSource(strings.TrimSpace(string(b)))
		default:
			part.Close()
		}
	}

	if ref.StoredPath == "" {
		return upload.FileRef{}, upload.ErrNoFile
	}
	ref.Source = source
	return ref, nil
}

func (h *UploadHandler) discard(path string) {
	if err := h.store.Remove(path); err != nil {
		slog.Warn("failed to remove upload", "path", path, "error", err)
	}
}

// apply runs one intake transition under the session lock
func (h *UploadHandler) apply(w http.ResponseWriter, r *http.Request, sessionID, event string, fn func(upload.Intake, time.Time) (upload.Intake, error)) {
	unlock := sessionLocks.Lock(sessionID)
	defer unlock()

	ctx := r.Context()
	in, err := loadUpload(ctx, h.db, sessionID)
	if err != nil {
		storageError(w, sessionID, err)
		return
	}

	in, err = fn(in, h.now())
	if errors.Is(err, upload.ErrNoFile) {
		h.metrics.Reject("upload", event)
		middleware.ErrorResponse(w, http.StatusConflict, "Select a file before uploading")
		return
	}
	if err != nil {
		slog.Error("upload transition failed", "session_id", sessionID, "event", event, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Upload error")
		return
	}

	if err := saveUpload(ctx, h.db, sessionID, in); err != nil {
		storageError(w, sessionID, err)
		return
	}

	h.metrics.Transition("upload", event)

	middleware.JSONResponse(w, http.StatusOK, models.UploadResponse{
		Upload: upload.Render(in, h.uploadPolicy()),
	})
}
