package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/config"
	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/protocol"
)

type Server struct {
	config    config.Config
	rooms     map[string]*Room
	roomsLock sync.Mutex
	upgrader  websocket.Upgrader
}

type Client struct {
	Conn   *websocket.Conn
	Server *Server
	Name   string
	Room   *Room
	ID     string

	writeLock sync.Mutex
}

func NewServer(cfg config.Config) *Server {
	return &Server{
		config:   cfg,
		rooms:    make(map[string]*Room),
		upgrader: websocket.Upgrader{},
	}
}

func (s *Server) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("upgrade error")
		return
	}

	client := &Client{Conn: conn, Server: s, ID: uuid.NewString()}
	log.Debug().Str("client", client.ID).Str("remote", r.RemoteAddr).Msg("client connected")

	client.Listen()
}

// Rooms returns the IDs of the open rooms in a stable order.
func (s *Server) Rooms() []string {
	s.roomsLock.Lock()
	defer s.roomsLock.Unlock()

	rooms := make([]string, 0, len(s.rooms))
	for roomID := range s.rooms {
		rooms = append(rooms, roomID)
	}
	sort.Strings(rooms)
	return rooms
}

func (s *Server) Room(roomID string) (*Room, bool) {
	s.roomsLock.Lock()
	defer s.roomsLock.Unlock()
	room, ok := s.rooms[roomID]
	return room, ok
}

func (s *Server) removeRoom(room *Room) {
	s.roomsLock.Lock()
	delete(s.rooms, room.ID)
	s.roomsLock.Unlock()
	log.Info().Str("room", room.ID).Msg("room closed")
}

func (c *Client) Listen() {
	defer func() {
		c.leaveRoom()
		if err := c.Conn.Close(); err != nil {
			log.Debug().Err(err).Msg("error closing connection")
		}
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Str("client", c.ID).Msg("connection closed normally")
			} else {
				log.Warn().Err(err).Str("client", c.ID).Msg("read error")
			}
			break
		}
		protocol.ParseMessage(c, message)
	}
}

func (c *Client) HandleSetName(name string) {
	c.Name = name
}

func (c *Client) HandleGetGames() {
	c.Send(protocol.Message{
		Type: protocol.GetGamesResponse,
		Data: c.Server.Rooms(),
	})
}

func (c *Client) HandleJoinRoom(roomID string) {
	room, exists := c.Server.Room(roomID)
	if !exists {
		c.Send(protocol.NewError("Room not found"))
		return
	}

	if c.Room != room {
		if !room.AddClient(c) {
			c.Send(protocol.NewError("Room not found"))
			return
		}
		c.leaveRoom()
		c.Room = room
	}

	c.Send(protocol.Message{
		Type: protocol.JoinRoomResponse,
		Data: roomID,
	})
}

func (c *Client) HandleCreateRoom() {
	c.leaveRoom()

	room := NewRoom(uuid.NewString(), c.Server.config, c)

	c.Server.roomsLock.Lock()
	c.Server.rooms[room.ID] = room
	c.Server.roomsLock.Unlock()

	c.Room = room
	log.Info().Str("room", room.ID).Str("owner", c.Name).Msg("room created")

	c.Send(protocol.Message{
		Type: protocol.CreateRoomResponse,
		Data: room.ID,
	})

	go room.Run(c.Server.config.TickInterval(), c.Server.removeRoom)
}

func (c *Client) HandleLeaveRoom() {
	room := c.leaveRoom()
	if room == nil {
		return
	}
	c.Send(protocol.Message{
		Type: protocol.LeaveRoomResponse,
		Data: room.ID,
	})
}

// leaveRoom detaches the client from its room without notifying it and
// returns the room it left, if any.
func (c *Client) leaveRoom() *Room {
	room := c.Room
	if room == nil {
		return nil
	}
	c.Room = nil
	room.RemoveClient(c)
	return room
}

func (c *Client) HandlePointerMove(pointer protocol.Pointer) {
	if c.Room == nil {
		return
	}
	if err := c.Room.MovePaddle(c, pointer); err != nil {
		c.sendError(err)
	}
}

func (c *Client) HandleServe() {
	if c.Room == nil {
		return
	}
	if err := c.Room.Serve(c); err != nil {
		c.sendError(err)
		return
	}
	c.Send(protocol.Message{Type: protocol.ServeResponse, Data: c.Room.ID})
}

func (c *Client) Send(message protocol.Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Error().Err(err).Msg("error marshalling message")
		return
	}
	c.write(websocket.TextMessage, data)
}

func (c *Client) sendError(err error) {
	if errors.Is(err, ErrNotOwner) {
		c.Send(protocol.NewError("Only the room owner controls the paddle"))
		return
	}
	c.Send(protocol.NewError(err.Error()))
}

// SendBinary writes an already encoded frame.
func (c *Client) SendBinary(data []byte) {
	c.write(websocket.BinaryMessage, data)
}

func (c *Client) write(messageType int, data []byte) {
	c.writeLock.Lock()
	defer c.writeLock.Unlock()

	if err := c.Conn.WriteMessage(messageType, data); err != nil {
		log.Debug().Err(err).Str("client", c.ID).Msg("write error")
	}
}

func (c *Client) GetName() string {
	return c.Name
}

func (c *Client) GetRoomID() string {
	if c.Room == nil {
		return ""
	}

	return c.Room.ID
}
