package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeClient records what ParseMessage dispatched.
type fakeClient struct {
	name    string
	roomID  string
	sent    []Message
	calls   []string
	pointer Pointer
}

func (c *fakeClient) HandleSetName(name string) {
	c.calls = append(c.calls, SetName)
	c.name = name
}

func (c *fakeClient) HandleGetGames() { c.calls = append(c.calls, GetGames) }

func (c *fakeClient) HandleJoinRoom(roomID string) {
	c.calls = append(c.calls, JoinRoom)
	c.roomID = roomID
}

func (c *fakeClient) HandleCreateRoom() {
	c.calls = append(c.calls, CreateRoom)
	c.roomID = "room"
}

func (c *fakeClient) HandleLeaveRoom() {
	c.calls = append(c.calls, LeaveRoom)
	c.roomID = ""
}

func (c *fakeClient) HandlePointerMove(pointer Pointer) {
	c.calls = append(c.calls, PointerMove)
	c.pointer = pointer
}

func (c *fakeClient) HandleServe()      { c.calls = append(c.calls, Serve) }
func (c *fakeClient) GetName() string   { return c.name }
func (c *fakeClient) GetRoomID() string { return c.roomID }
func (c *fakeClient) Send(msg Message)  { c.sent = append(c.sent, msg) }

func TestParseMessageRequiresName(t *testing.T) {
	client := &fakeClient{}

	ParseMessage(client, []byte(`{"type":"get_games"}`))

	assert.Equal(t, []Message{NewError("Name must be set first")}, client.sent)
	assert.Empty(t, client.calls)
}

func TestParseMessageSetName(t *testing.T) {
	client := &fakeClient{}

	ParseMessage(client, []byte(`{"type":"set_name","data":""}`))
	assert.Equal(t, []Message{NewError("Name cannot be empty")}, client.sent)

	ParseMessage(client, []byte(`{"type":"set_name","data":"Player1"}`))
	assert.Equal(t, "Player1", client.name)
}

func TestParseMessageMalformed(t *testing.T) {
	client := &fakeClient{}

	ParseMessage(client, []byte(`{not json`))

	assert.Equal(t, []Message{NewError("Malformed message")}, client.sent)
}

func TestParseMessageOutsideRoom(t *testing.T) {
	client := &fakeClient{name: "Player1"}

	ParseMessage(client, []byte(`{"type":"pointer_move","data":{"x":0.5,"y":0.5}}`))
	ParseMessage(client, []byte(`{"type":"serve"}`))

	expected := NewError("You must be in a game to perform this action")
	assert.Equal(t, []Message{expected, expected}, client.sent)
	assert.Empty(t, client.calls)
}

func TestParseMessageInsideRoom(t *testing.T) {
	client := &fakeClient{name: "Player1", roomID: "room"}

	ParseMessage(client, []byte(`{"type":"get_games"}`))
	ParseMessage(client, []byte(`{"type":"set_name","data":"Player2"}`))

	expected := NewError("You cannot perform this action while in a game")
	assert.Equal(t, []Message{expected, expected}, client.sent)
	assert.Equal(t, "Player1", client.name, "Name should not change while in a game")
}

func TestParseMessagePointerMove(t *testing.T) {
	client := &fakeClient{name: "Player1", roomID: "room"}

	ParseMessage(client, []byte(`{"type":"pointer_move","data":{"x":0.25,"y":0.75}}`))

	assert.Empty(t, client.sent)
	assert.Equal(t, []string{PointerMove}, client.calls)
	assert.Equal(t, Pointer{X: 0.25, Y: 0.75}, client.pointer)
}

func TestParseMessageInvalidPointer(t *testing.T) {
	client := &fakeClient{name: "Player1", roomID: "room"}

	ParseMessage(client, []byte(`{"type":"pointer_move","data":123}`))
	ParseMessage(client, []byte(`{"type":"pointer_move","data":{"x":"left"}}`))

	expected := NewError("Invalid pointer_move data")
	assert.Equal(t, []Message{expected, expected}, client.sent)
	assert.Empty(t, client.calls)
}

func TestParseMessageDispatch(t *testing.T) {
	client := &fakeClient{name: "Player1"}

	ParseMessage(client, []byte(`{"type":"get_games"}`))
	ParseMessage(client, []byte(`{"type":"create_room"}`))
	ParseMessage(client, []byte(`{"type":"serve"}`))
	ParseMessage(client, []byte(`{"type":"leave_room"}`))
	ParseMessage(client, []byte(`{"type":"join_room","data":"abc"}`))

	assert.Empty(t, client.sent)
	assert.Equal(t, []string{GetGames, CreateRoom, Serve, LeaveRoom, JoinRoom}, client.calls)
	assert.Equal(t, "abc", client.roomID)
}

func TestParseMessageInvalidJoin(t *testing.T) {
	client := &fakeClient{name: "Player1"}

	ParseMessage(client, []byte(`{"type":"join_room","data":42}`))

	assert.Equal(t, []Message{NewError("Invalid join_room data")}, client.sent)
}

func TestParseMessageUnknownType(t *testing.T) {
	client := &fakeClient{name: "Player1", roomID: "room"}

	ParseMessage(client, []byte(`{"type":"teleport"}`))

	assert.Equal(t, []Message{NewError("You cannot perform this action while in a game")}, client.sent)
}
