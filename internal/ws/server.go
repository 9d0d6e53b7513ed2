package ws

import (
	"net/http"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"
	"github.com/sirupsen/logrus"
)

var (
	// Server is the global Socket.IO server instance
	Server *socketio.Server

	log = logrus.WithField("component", "ws")
)

// InitServer initializes the Socket.IO server used for the live change feed
func InitServer() error {
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&polling.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
			&websocket.Transport{
				CheckOrigin: func(r *http.Request) bool { return true },
			},
		},
	})

	server.OnConnect("/", func(s socketio.Conn) error {
		log.WithField("client", s.ID()).Debug("client connected")
		s.Emit("connected", map[string]interface{}{"ok": true})
		return nil
	})

	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		log.WithField("client", s.ID()).WithField("reason", reason).Debug("client disconnected")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		log.WithError(e).Warn("client error")
	})

	go func() {
		if err := server.Serve(); err != nil {
			log.WithError(err).Error("socket.io server stopped")
		}
	}()

	Server = server
	log.Info("Socket.IO server initialized")
	return nil
}

// BroadcastToAll broadcasts a message to all connected clients
func BroadcastToAll(event string, data interface{}) {
	if Server != nil {
		Server.BroadcastToNamespace("/", event, data)
	}
}

// Close shuts the Socket.IO server down
func Close() error {
	if Server != nil {
		return Server.Close()
	}
	return nil
}
