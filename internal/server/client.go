package server

import (
	"net/http"
	"time"

	"cavesight/internal/engine"
	"cavesight/pkg/api"
	"cavesight/pkg/logger"
	"cavesight/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и engine.Service
type Client struct {
	Game *engine.Service
	Conn *websocket.Conn
	Send chan api.Frame
	ID   string

	// done закрывает writePump при выходе: дальше Send никто не читает.
	done chan struct{}
}

func NewClient(game *engine.Service, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.Frame, 256),
		done: make(chan struct{}),
	}
}

// errorFrame - ответ одному клиенту на команду, которую не приняла очередь.
func errorFrame(text string) api.Frame {
	return api.Frame{
		Type: "ERROR",
		Logs: []api.LogEntry{{
			ID:        utils.GenerateID(),
			Text:      text,
			Type:      "ERROR",
			Timestamp: time.Now().UnixMilli(),
		}},
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	defer func() {
		if c.ID != "" {
			dropped := c.Game.Hub.Dropped(c.ID)
			c.Game.Hub.Unregister(c.ID)
			logger.Log.WithFields(logrus.Fields{
				"client_id": c.ID,
				"dropped":   dropped,
			}).Info("Client disconnected")
		} else {
			// До логина подписки нет, writePump закрываем сами
			close(c.Send)
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		logger.Log.WithError(err).Warn("Handshake failed")
		return
	}

	id := loginCmd.Token
	if id == "" {
		id = utils.GenerateID()
	}

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	// Второе подключение с тем же токеном получает свой id и не закрывает первое
	var updates chan api.Frame
	c.ID, updates = c.Game.Hub.RegisterUnique(id)
	go c.forward(updates)

	logger.Log.WithFields(logrus.Fields{
		"client_id":   c.ID,
		"session_id":  c.Game.Session.ID,
		"subscribers": c.Game.Hub.SubscriberCount(),
	}).Info("Client logged in")

	// INIT не тратит ход, но после него кадр уходит всем подписчикам
	if err := c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.ID}); err != nil {
		c.Game.Hub.SendTo(c.ID, errorFrame(err.Error()))
	}

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.WithError(err).Error("WS error")
			}
			break
		}
		cmd.Token = c.ID
		if err := c.Game.ProcessCommand(cmd); err != nil {
			c.Game.Hub.SendTo(c.ID, errorFrame(err.Error()))
		}
	}
}

// forward перекладывает кадры из канала хаба в Send. Канал хаба
// закрывается в Unregister; если writePump уже вышел, кадры больше
// некуда отдавать и forward выходит сам.
func (c *Client) forward(updates <-chan api.Frame) {
	defer close(c.Send)
	for frame := range updates {
		select {
		case c.Send <- frame:
		case <-c.done:
			return
		}
	}
}

// writePump отправляет кадры клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		close(c.done)
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(frame); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
