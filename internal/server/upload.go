package server

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/logging"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/metrics"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/utils"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/wordcount"
)

// UploadHandler stores an uploaded text file and answers with its word
// counts. Identical content is served from the cache.
type UploadHandler struct {
	uploadDir string
	maxBytes  int64
	counter   wordcount.WordCounter
	cache     *wordcount.ResultCache
}

// NewUploadHandler creates an UploadHandler. cache may be nil.
func NewUploadHandler(uploadDir string, maxBytes int64, counter wordcount.WordCounter, cache *wordcount.ResultCache) *UploadHandler {
	return &UploadHandler{
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
		counter:   counter,
		cache:     cache,
	}
}

func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("Upload rejected", "reason", "too large", "limit", tooLarge.Limit)
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgFileTooLarge)
			return
		}
		log.Warn("Invalid upload form", "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgFileError)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(FormFieldFile)
	if err != nil {
		log.Warn("Missing upload file", "field", FormFieldFile, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgFileError)
		return
	}
	defer file.Close()

	target := r.FormValue(FormFieldTarget)

	path, digest, err := h.save(file, header.Filename)
	if err != nil {
		log.Error("Failed to save upload", "file", header.Filename, "error", err)
		respondError(w, http.StatusInternalServerError, ErrMsgSaveError)
		return
	}
	name := filepath.Base(path)

	key := digest + "|" + wordcount.TargetKey(target)
	if res, ok := h.cache.Get(key); ok {
		log.Debug("Upload served from cache", "file", name)
		metrics.RecordCount(res, nil)
		respondJSON(w, http.StatusOK, newUploadResponse(name, res))
		return
	}

	res, err := h.counter.CountWords(path, target)
	metrics.RecordCount(res, err)
	if err != nil {
		log.Error("Failed to count upload", "file", name, "error", err)
		if errors.Is(err, wordcount.ErrNotFound) {
			respondError(w, http.StatusNotFound, ErrMsgNotFound)
			return
		}
		respondError(w, http.StatusInternalServerError, ErrMsgReadError)
		return
	}
	h.cache.Add(key, res)

	log.Info("Upload counted",
		"file", name,
		"total_words", res.TotalWords,
		"match_count", res.MatchCount)
	respondJSON(w, http.StatusOK, newUploadResponse(name, res))
}

// save copies src into a new file under uploadDir and returns its path along
// with the hex SHA-256 of the content.
func (h *UploadHandler) save(src io.Reader, clientName string) (string, string, error) {
	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create upload directory: %w", err)
	}
	dst, err := os.CreateTemp(h.uploadDir, "*-"+utils.SafeFileName(clientName, FallbackUploadName))
	if err != nil {
		return "", "", fmt.Errorf("failed to create upload file: %w", err)
	}

	hasher := sha256.New()
	_, copyErr := io.Copy(io.MultiWriter(dst, hasher), src)
	closeErr := dst.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(dst.Name())
		return "", "", fmt.Errorf("failed to write upload file: %w", err)
	}
	return dst.Name(), hex.EncodeToString(hasher.Sum(nil)), nil
}

func newUploadResponse(name string, res wordcount.Result) UploadResponse {
	return UploadResponse{FileName: name, Result: res}
}
