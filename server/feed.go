package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/inconshreveable/log15"
	"github.com/superchain-meme/launchpad/types"
)

const (
	feedBufferSize = 16
	writeTimeout   = 10 * time.Second
)

// feed pushes every launched token to the connected websocket clients.
type feed struct {
	upgrader websocket.Upgrader
	mutex    sync.Mutex
	clients  map[*feedClient]struct{}
}

type feedClient struct {
	conn *websocket.Conn
	send chan types.Token
}

func newFeed() *feed {
	return &feed{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		clients: make(map[*feedClient]struct{}),
	}
}

func (f *feed) OnTokenLaunched(token types.Token) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	for client := range f.clients {
		select {
		case client.send <- token:
		default:
			log.Warn(fmt.Sprintf("Feed client %v is too slow, token %v dropped", client.conn.RemoteAddr(), token.Address))
		}
	}
}

func (f *feed) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error(fmt.Sprintf("Unable to upgrade feed connection: %v", err))
		return
	}
	client := &feedClient{
		conn: conn,
		send: make(chan types.Token, feedBufferSize),
	}
	f.mutex.Lock()
	f.clients[client] = struct{}{}
	f.mutex.Unlock()
	log.Debug(fmt.Sprintf("Feed client %v connected", conn.RemoteAddr()))

	go client.writeLoop()
	client.readLoop()

	f.mutex.Lock()
	delete(f.clients, client)
	close(client.send)
	f.mutex.Unlock()
	log.Debug(fmt.Sprintf("Feed client %v disconnected", conn.RemoteAddr()))
}

func (c *feedClient) writeLoop() {
	defer c.conn.Close()
	for token := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.conn.WriteJSON(token); err != nil {
			log.Debug(fmt.Sprintf("Unable to write to feed client %v: %v", c.conn.RemoteAddr(), err))
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// readLoop discards incoming messages and returns once the connection is gone.
func (c *feedClient) readLoop() {
	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			return
		}
	}
}
