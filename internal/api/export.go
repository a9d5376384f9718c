package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/amistack/amistack/internal/core"
)

// GET /api/export
// Streams the tenant's CRM data as zstd-compressed JSON.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	user := getUserFromContext(r.Context())

	filename := fmt.Sprintf("amistack-export-%s.json.zst", time.Now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/zstd")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	if err := core.WriteTenantExport(s.Store, user.ID, w); err != nil {
		// Headers are out; all we can do is log and cut the stream
		s.Store.LogError(err)
	}
}
