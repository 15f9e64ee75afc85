package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/OliveiraNt/kafka-admin-api/internal/application"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

// admin resolves the {clusterName} route parameter, writing a 404 when it is unknown.
func (s *Server) admin(w http.ResponseWriter, r *http.Request) (*application.AdminService, bool) {
	name := chi.URLParam(r, "clusterName")
	svc, err := s.clusterService.Admin(name)
	if err != nil {
		utils.Logger.Warn("api cluster not found", "cluster", name, "path", r.URL.Path)
		writeError(w, err)
		return nil, false
	}
	return svc, true
}

func (s *Server) apiListClusters(w http.ResponseWriter, _ *http.Request) {
	clusters := s.clusterService.ListClusters()
	utils.Logger.Debug("api list clusters", "count", len(clusters))
	writeJSON(w, http.StatusOK, clusters)
}

func (s *Server) apiDescribeCluster(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	snap, err := svc.DescribeCluster(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
