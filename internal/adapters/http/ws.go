package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/OliveiraNt/kafka-admin-api/internal/application"
	"github.com/OliveiraNt/kafka-admin-api/internal/utils"
)

const wsWriteTimeout = 5 * time.Second

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// underReplicatedFrame is one message of the websocket feed.
type underReplicatedFrame struct {
	Cluster    string             `json:"cluster"`
	Topics     map[string][]int32 `json:"topics"`
	Partitions int                `json:"partitions"`
	Error      string             `json:"error,omitempty"`
}

func newUnderReplicatedFrame(cluster string, topics map[string][]int32, err error) underReplicatedFrame {
	f := underReplicatedFrame{Cluster: cluster, Topics: topics}
	if f.Topics == nil {
		f.Topics = map[string][]int32{}
	}
	for _, parts := range f.Topics {
		f.Partitions += len(parts)
	}
	if err != nil {
		f.Error = err.Error()
	}
	return f
}

// wsUnderReplicated upgrades to WebSocket and pushes an under-replication scan
// right away and then on every feed interval until the client goes away.
func (s *Server) wsUnderReplicated(w http.ResponseWriter, r *http.Request) {
	svc, ok := s.admin(w, r)
	if !ok {
		return
	}
	cluster := svc.Cluster()

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		utils.Logger.Error("websocket upgrade failed", "cluster", cluster, "err", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				utils.Logger.Info("websocket client disconnected", "cluster", cluster, "err", err)
				return
			}
		}
	}()

	ticker := time.NewTicker(s.feedInterval)
	defer ticker.Stop()

	for {
		if !s.pushScan(ctx, conn, svc) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) pushScan(ctx context.Context, conn *websocket.Conn, svc *application.AdminService) bool {
	topics, err := svc.FindUnderReplicatedPartitions(ctx)
	if ctx.Err() != nil {
		return false
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(newUnderReplicatedFrame(svc.Cluster(), topics, err)); err != nil {
		utils.Logger.Info("websocket write failed, stopping feed", "cluster", svc.Cluster(), "err", err)
		return false
	}
	return true
}
