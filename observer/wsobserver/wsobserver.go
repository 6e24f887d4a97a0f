// Package wsobserver pushes state snapshots to a browser-facing
// observer over a websocket: a write-only snapshot feed that carries
// the JSON a graphical observer would render.
package wsobserver

import (
	"github.com/gorilla/websocket"

	"github.com/eholt/labyrinth/log"
	"github.com/eholt/labyrinth/state"
)

// Observer writes each snapshot it receives to a websocket connection
// as a JSON message. Write failures are logged and otherwise
// swallowed: observers are never allowed to affect the game, so
// Notify cannot return an error.
type Observer struct {
	conn *websocket.Conn
	log  log.Logger
}

// New wraps an already-upgraded websocket connection as an Observer.
func New(conn *websocket.Conn, l log.Logger) *Observer {
	return &Observer{conn: conn, log: l}
}

// Notify implements observer.Observer.
func (o *Observer) Notify(snapshot *state.Redacted) {
	if err := o.conn.WriteJSON(snapshot); err != nil {
		o.log.Printf("websocket observer: writing snapshot: %v", err)
	}
}

// Close closes the underlying connection, sending a normal closure
// message first on a best-effort basis.
func (o *Observer) Close() error {
	data := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "game over")
	_ = o.conn.WriteMessage(websocket.CloseMessage, data)
	return o.conn.Close()
}
