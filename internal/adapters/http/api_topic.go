package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/OliveiraNt/kafka-admin-api/internal/domain"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

type link struct {
	Href string `json:"href"`
}

type topicItem struct {
	Name    string          `json:"name"`
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Links   map[string]link `json:"_links"`
}

type topicCollection struct {
	Topics []topicItem     `json:"topics"`
	Links  map[string]link `json:"_links"`
}

// topicView renders a described topic with its derived settings.
type topicView struct {
	domain.Topic
	PartitionCount    int `json:"partition_count"`
	ReplicationFactor int `json:"replication_factor"`
}

func newTopicView(t domain.Topic) topicView {
	return topicView{Topic: t, PartitionCount: t.PartitionCount(), ReplicationFactor: t.ReplicationFactor()}
}

type createTopicRequest struct {
	TopicName         string `json:"topicName"`
	NumPartitions     *int32 `json:"numPartitions,omitempty"`
	ReplicationFactor *int16 `json:"replicationFactor,omitempty"`
}

func topicsPath(cluster string) string {
	return "/api/clusters/" + url.PathEscape(cluster) + "/topics"
}

func (s *Server) apiListTopics(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	names, err := svc.ListTopics(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	base := topicsPath(svc.Cluster())
	out := topicCollection{
		Topics: make([]topicItem, 0, len(names)),
		Links:  map[string]link{"self": {Href: base}},
	}
	for _, name := range names {
		self := base + "/" + url.PathEscape(name)
		out.Topics = append(out.Topics, topicItem{
			Name:    name,
			Status:  "available",
			Message: "Kafka topic resource",
			Links: map[string]link{
				"self":   {Href: self},
				"delete": {Href: self},
			},
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) apiCreateTopic(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	var req createTopicRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	err := svc.CreateTopic(r.Context(), req.TopicName, req.NumPartitions, req.ReplicationFactor)
	if err != nil {
		status := mapErrorToHTTPStatus(err)
		switch status {
		case http.StatusConflict:
			writeMessage(w, status, fmt.Sprintf("Topic '%s' already exists.", req.TopicName))
		case http.StatusInternalServerError:
			writeMessage(w, status, "Error creating topic: "+err.Error())
		default:
			writeError(w, err)
		}
		return
	}
	writeMessage(w, http.StatusCreated, fmt.Sprintf("Topic '%s' created successfully.", req.TopicName))
}

func (s *Server) apiDescribeTopic(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(chi.URLParam(r, "topicName"))
	topics, err := svc.DescribeTopics(r.Context(), []string{name})
	if err != nil {
		writeError(w, err)
		return
	}
	topic, found := topics[name]
	if !found {
		writeMessage(w, http.StatusNotFound, fmt.Sprintf("Topic '%s' not found.", name))
		return
	}
	writeJSON(w, http.StatusOK, newTopicView(topic))
}

func (s *Server) apiDescribeTopics(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	topics, err := svc.DescribeTopics(r.Context(), r.URL.Query()["name"])
	if err != nil {
		writeError(w, err)
		return
	}
	out := make(map[string]topicView, len(topics))
	for name, t := range topics {
		out[name] = newTopicView(t)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) apiDeleteTopic(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	name := strings.TrimSpace(chi.URLParam(r, "topicName"))
	if err := svc.DeleteTopic(r.Context(), name); err != nil {
		if mapErrorToHTTPStatus(err) == http.StatusNotFound {
			writeMessage(w, http.StatusNotFound, fmt.Sprintf("Topic '%s' not found.", name))
			return
		}
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, fmt.Sprintf("Topic %s deleted successfully.", name))
}

func (s *Server) apiUnderReplicated(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	out, err := svc.FindUnderReplicatedPartitions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.Logger.Debug("api under-replicated scan", "cluster", svc.Cluster(), "topics", len(out))
	writeJSON(w, http.StatusOK, out)
}

