package protocol

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

const (
	SetName            = "set_name"
	GetGames           = "get_games"
	JoinRoom           = "join_room"
	CreateRoom         = "create_room"
	LeaveRoom          = "leave_room"
	PointerMove        = "pointer_move"
	Serve              = "serve"
	GetGamesResponse   = "get_games_response"
	JoinRoomResponse   = "join_room_response"
	CreateRoomResponse = "create_room_response"
	LeaveRoomResponse  = "leave_room_response"
	ServeResponse      = "serve_response"
	Point              = "point"
	Error              = "error"
)

type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Pointer is a pointer position normalised to the window: x grows to the
// right and y downward, both in [0, 1].
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointData announces the end of a point together with the running score.
type PointData struct {
	Winner string `json:"winner"`
	Player int    `json:"player"`
	Server int    `json:"server"`
}

type ClientActions interface {
	HandleSetName(name string)
	HandleGetGames()
	HandleJoinRoom(roomID string)
	HandleCreateRoom()
	HandleLeaveRoom()
	HandlePointerMove(pointer Pointer)
	HandleServe()
	GetName() string
	GetRoomID() string
	Send(msg Message)
}

// inRoomActions may be sent while in a room; everything else is refused there.
var inRoomActions = map[string]bool{
	PointerMove: true,
	Serve:       true,
	JoinRoom:    true,
	CreateRoom:  true,
	LeaveRoom:   true,
}

// outOfRoomActions may be sent before joining a room.
var outOfRoomActions = map[string]bool{
	SetName:    true,
	GetGames:   true,
	CreateRoom: true,
	JoinRoom:   true,
}

// ParseMessage processes the incoming message and handles errors.
func ParseMessage(client ClientActions, rawMessage []byte) {
	var message Message
	err := json.Unmarshal(rawMessage, &message)
	if err != nil {
		log.Warn().Err(err).Msg("error parsing message")
		client.Send(NewError("Malformed message"))
		return
	}

	// Check if the client's name is set
	if client.GetName() == "" && message.Type != SetName {
		client.Send(NewError("Name must be set first"))
		return
	}

	// Check for missing name data
	if message.Type == SetName {
		if name, ok := message.Data.(string); !ok || name == "" {
			client.Send(NewError("Name cannot be empty"))
			return
		}
	}

	if client.GetRoomID() == "" && !outOfRoomActions[message.Type] {
		client.Send(NewError("You must be in a game to perform this action"))
		return
	}

	if client.GetRoomID() != "" && !inRoomActions[message.Type] {
		client.Send(NewError("You cannot perform this action while in a game"))
		return
	}

	switch message.Type {
	case SetName:
		client.HandleSetName(message.Data.(string))
	case GetGames:
		client.HandleGetGames()
	case JoinRoom:
		roomID, ok := message.Data.(string)
		if !ok || roomID == "" {
			client.Send(NewError("Invalid join_room data"))
			return
		}
		client.HandleJoinRoom(roomID)
	case CreateRoom:
		client.HandleCreateRoom()
	case LeaveRoom:
		client.HandleLeaveRoom()
	case PointerMove:
		pointer, ok := parsePointer(message.Data)
		if !ok {
			client.Send(NewError("Invalid pointer_move data"))
			return
		}
		client.HandlePointerMove(pointer)
	case Serve:
		client.HandleServe()
	default:
		log.Debug().Str("type", message.Type).Msg("unknown message type")
		client.Send(NewError("Unknown message type"))
	}
}

func NewError(text string) Message {
	return Message{Type: Error, Data: text}
}

func parsePointer(data interface{}) (Pointer, bool) {
	fields, ok := data.(map[string]interface{})
	if !ok {
		return Pointer{}, false
	}
	x, okX := fields["x"].(float64)
	y, okY := fields["y"].(float64)
	if !okX || !okY {
		return Pointer{}, false
	}
	return Pointer{X: x, Y: y}, true
}
