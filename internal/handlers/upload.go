package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnshRaj112/vidtube-backend/pkg/apierror"
	"github.com/google/uuid"
)

// uploadStager copies multipart files to a local directory so the media host
// can upload them from disk. Every staged file is removed once the request
// is done with it.
type uploadStager struct {
	dir      string
	maxBytes int64
}

// parse reads a multipart body. It reports false, without error, when the
// request is not multipart at all.
func (s uploadStager) parse(w http.ResponseWriter, r *http.Request) (bool, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return false, nil
		}
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return false, apierror.Validation(fmt.Sprintf("Upload exceeds %d MB", s.maxBytes>>20))
		}
		return false, apierror.Validation("Invalid multipart form")
	}
	return true, nil
}

// stage writes the file in field to the staging directory and returns its
// path, or "" when the field is absent.
func (s uploadStager) stage(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", apierror.Validation("Invalid " + field + " file")
	}
	defer file.Close()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", apierror.Internal("Failed to prepare upload directory", err)
	}
	path := filepath.Join(s.dir, uuid.NewString()+safeExt(header))
	if err := writeFile(path, file); err != nil {
		os.Remove(path)
		return "", apierror.Internal("Failed to store upload", err)
	}
	return path, nil
}

func writeFile(path string, src multipart.File) error {
	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

// safeExt keeps the client's extension, which media hosts use to detect the
// type, but nothing else from its filename.
func safeExt(header *multipart.FileHeader) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(header.Filename)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}

func removeStaged(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("ERROR [handlers.removeStaged] %s: %v", p, err)
		}
	}
}
