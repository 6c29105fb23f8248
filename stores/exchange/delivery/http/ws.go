package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	bCtx "github.com/specieverse/goapi/base/ctx"
	"github.com/specieverse/goapi/base/goroutine"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// settlements streams settlement events over a websocket until the client
// goes away.
func (h *exchangeHandler) settlements(c echo.Context) error {
	ctx := c.Get("ctx").(bCtx.Ctx)

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		ctx.WithField("err", err).Error("websocket upgrade failed")
		return err
	}
	defer conn.Close()

	subCtx, cancel := bCtx.WithCancel(ctx)
	defer cancel()

	events, err := h.exchange.Subscribe(subCtx)
	if err != nil {
		ctx.WithField("err", err).Error("exchange.Subscribe failed")
		return err
	}

	// the read pump only notices disconnects; clients send nothing
	goroutine.RecoverableGo(func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(event); err != nil {
				return nil
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case <-subCtx.Done():
			return nil
		}
	}
}
