// SPDX-License-Identifier: Apache-2.0

package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/kispace/kispace-server/internal/utils"
)

// serveSPA serves the bundled single-page frontend from the configured
// static directory.
//
// A path that maps to an existing file is served directly; anything else
// falls back to index.html so that client-side routing works on deep links.
// API paths never fall back: an unmatched /api/ request is a JSON 404.
func (h *Handler) serveSPA(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		utils.WriteError(w, "not found", http.StatusNotFound)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	// Clean the path against traversal before touching the filesystem.
	relative := filepath.Clean("/" + r.URL.Path)
	candidate := filepath.Join(h.staticDir, relative)

	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		http.ServeFile(w, r, candidate)
		return
	}

	index := filepath.Join(h.staticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, index)
}
