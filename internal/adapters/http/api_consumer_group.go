package httpserver

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

func (s *Server) apiListConsumerGroups(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	groups, err := svc.ListConsumerGroups(r.Context())
	if err != nil {
		utils.Logger.Error("api list consumer groups failed", "cluster", svc.Cluster(), "err", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) apiDescribeConsumerGroup(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "groupId"))
	groups, err := svc.DescribeConsumerGroups(r.Context(), []string{id})
	if err != nil {
		writeError(w, err)
		return
	}
	group, found := groups[id]
	if !found {
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("Consumer group '%s' not found.", id))
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) apiConsumerGroupLag(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "groupId"))
	lags, err := svc.ConsumerGroupLag(r.Context(), []string{id})
	if err != nil {
		writeError(w, err)
		return
	}
	lag, found := lags[id]
	if !found {
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("Consumer group '%s' not found.", id))
		return
	}
	writeJSON(w, http.StatusOK, lag)
}
