package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/config"
	"github.com/QinxiWang/Interactive-Graphics---PingPong-Player/protocol"
)

var (
	testServer *Server
	serverOnce sync.Once
	serverAddr string
)

// StartTestServer starts the WebSocket server only once. The room loop runs
// slowly so tests can drive rooms with Tick themselves.
func StartTestServer() *Server {
	serverOnce.Do(func() {
		cfg := config.Default()
		cfg.Server.TickRate = 1
		testServer = NewServer(cfg)
		mux := http.NewServeMux()
		mux.HandleFunc("/", testServer.HandleConnection)
		httpServer := httptest.NewServer(mux)
		serverAddr = "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/"
	})
	return testServer
}

// ConnectToServer creates a WebSocket connection to the test server.
func ConnectToServer(t *testing.T) *websocket.Conn {
	conn, _, err := websocket.DefaultDialer.Dial(serverAddr, nil)
	if err != nil {
		t.Fatal("Failed to connect to WebSocket server:", err)
	}
	return conn
}

// SendMessage sends a Message over the WebSocket connection.
func SendMessage(t *testing.T, conn *websocket.Conn, msg protocol.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatal("Failed to marshal message:", err)
	}
	err = conn.WriteMessage(websocket.TextMessage, data)
	if err != nil {
		t.Fatal("Failed to send message:", err)
	}
}

// readRaw reads the next WebSocket message with a 1-second timeout.
func readRaw(t *testing.T, conn *websocket.Conn) (int, []byte) {
	if err := conn.SetReadDeadline(time.Now().Add(time.Second)); err != nil {
		t.Fatal("Failed to set read deadline:", err)
	}
	messageType, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatal("Failed to read message from WebSocket:", err)
	}
	return messageType, data
}

// ReadMessage reads the next text Message from the WebSocket connection,
// skipping binary frames. Optionally, it can ignore messages of specified types.
func ReadMessage(t *testing.T, conn *websocket.Conn, ignoreTypes ...string) protocol.Message {
	for {
		messageType, data := readRaw(t, conn)
		if messageType != websocket.TextMessage {
			continue
		}

		var msg protocol.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatal("Failed to unmarshal message:", err)
		}

		ignored := false
		for _, ignoreType := range ignoreTypes {
			if msg.Type == ignoreType {
				ignored = true
				break
			}
		}
		if !ignored {
			return msg
		}
	}
}

// ReadFrame reads until the next binary frame, skipping text messages.
func ReadFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	for {
		messageType, data := readRaw(t, conn)
		if messageType != websocket.BinaryMessage {
			continue
		}
		frame, err := protocol.DecodeFrame(data)
		if err != nil {
			t.Fatal("Failed to decode frame:", err)
		}
		return frame
	}
}

// CreateRoom names the connection and opens a room, returning its ID.
func CreateRoom(t *testing.T, conn *websocket.Conn, name string) string {
	SendMessage(t, conn, protocol.Message{Type: protocol.SetName, Data: name})
	SendMessage(t, conn, protocol.Message{Type: protocol.CreateRoom})

	response := ReadMessage(t, conn)
	if response.Type != protocol.CreateRoomResponse {
		t.Fatalf("Expected %s, got %+v", protocol.CreateRoomResponse, response)
	}
	roomID, ok := response.Data.(string)
	if !ok {
		t.Fatalf("Room ID should be a string, got %T", response.Data)
	}
	return roomID
}
