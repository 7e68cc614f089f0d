// Package handlers implements spec §4.5 (GET) and §4.6 (POST), the two
// request handlers the connection driver dispatches to once the host guard
// has already cleared a request. Grounded on shockwave's Handler func shape
// (pkg/shockwave/http11/handler.go: a plain func(req, responseWriter) error)
// but rebuilt around this server's own document-root-file and JSON-upload
// semantics rather than a generic byte-stream handler.
package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	goccyjson "github.com/goccy/go-json"

	"github.com/yourusername/multihttpd/internal/clock"
	"github.com/yourusername/multihttpd/internal/httpwire"
	"github.com/yourusername/multihttpd/internal/logging"
	"github.com/yourusername/multihttpd/internal/pathguard"
	"github.com/yourusername/multihttpd/internal/storage"
)

// .html renders inline as HTML; downloadExtensions are served as an
// attachment. Everything else is an unsupported media type (spec §4.5).
var downloadExtensions = map[string]bool{
	".txt":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Handlers holds the collaborators GET and POST need: the static document
// root, the upload subdirectory (both relative to the same root), and the
// storage boundary spec §1 calls out.
type Handlers struct {
	documentRoot string
	uploadSubdir string
	store        storage.Store
	logger       *logging.Logger
}

// New constructs a Handlers bound to a document root, an upload subdirectory
// name (e.g. "uploads", resolved under documentRoot), a storage backend, and
// a logger for security events.
func New(documentRoot, uploadSubdir string, store storage.Store, logger *logging.Logger) *Handlers {
	return &Handlers{
		documentRoot: documentRoot,
		uploadSubdir: uploadSubdir,
		store:        store,
		logger:       logger,
	}
}

// Get implements spec §4.5: resolve the request target under the document
// root, reject traversal attempts, 404 on anything missing, and dispatch on
// file extension.
func (h *Handlers) Get(req *httpwire.Request) *httpwire.Response {
	result := pathguard.Resolve(req.Target, h.documentRoot)
	switch result.Reason {
	case pathguard.ReasonForbidden:
		h.logger.PathTraversal(req.Target)
		return httpwire.NewResponse(403)
	case pathguard.ReasonNotFound:
		return httpwire.NewResponse(404)
	}

	ext := strings.ToLower(filepath.Ext(result.Path))
	if ext != ".html" && !downloadExtensions[ext] {
		return httpwire.NewResponse(415)
	}

	data, err := h.store.Read(result.Path)
	if err != nil {
		return httpwire.NewResponse(404)
	}

	resp := httpwire.NewResponse(200)
	if ext == ".html" {
		resp.Header.Set("content-type", "text/html; charset=utf-8")
	} else {
		resp.Header.Set("content-type", "application/octet-stream")
		resp.Header.Set("content-disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(result.Path)))
	}
	resp.Body = data
	return resp
}

// uploadResponse is the fixed JSON body spec §4.6 defines for a successful
// upload.
type uploadResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filepath string `json:"filepath"`
}

// Post implements spec §4.6: accept only application/json bodies, reject
// malformed JSON, write the pretty-printed payload to a freshly named file
// under the upload subdirectory, and report where it landed.
func (h *Handlers) Post(req *httpwire.Request) *httpwire.Response {
	contentType := strings.ToLower(req.Header.Get("content-type"))
	if !strings.Contains(contentType, "application/json") {
		return httpwire.NewResponse(415)
	}

	var payload any
	if err := goccyjson.Unmarshal(req.Body, &payload); err != nil {
		return httpwire.NewResponse(400)
	}

	pretty, err := goccyjson.MarshalIndent(payload, "", "  ")
	if err != nil {
		return httpwire.NewResponse(400)
	}

	filename := fmt.Sprintf("upload_%s_%s.json", clock.UploadStamp(), clock.Token4())
	relPath := filepath.Join(h.uploadSubdir, filename)
	fullPath := filepath.Join(h.documentRoot, relPath)

	if err := h.store.Write(fullPath, pretty); err != nil {
		return httpwire.NewResponse(500)
	}

	body, err := goccyjson.Marshal(uploadResponse{
		Status:   "success",
		Message:  "File created successfully",
		Filepath: "/" + filepath.ToSlash(relPath),
	})
	if err != nil {
		return httpwire.NewResponse(500)
	}

	resp := httpwire.NewResponse(201)
	resp.Header.Set("content-type", "application/json")
	resp.Body = body
	return resp
}
