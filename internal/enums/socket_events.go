package enums

// Client -> server events.
const (
	SOCKET_EVENT_BOARD_JOIN       = "board:join"
	SOCKET_EVENT_BOARD_LEAVE      = "board:leave"
	SOCKET_EVENT_NOTE_CREATE      = "note:create"
	SOCKET_EVENT_NOTE_UPDATE      = "note:update"
	SOCKET_EVENT_NOTE_DELETE      = "note:delete"
	SOCKET_EVENT_PRESENCE_REQUEST = "presence:request"
)

// Server -> client events.
const (
	SOCKET_EVENT_ACK             = "ack"
	SOCKET_EVENT_NOTE_CREATED    = "note:created"
	SOCKET_EVENT_NOTE_UPDATED    = "note:updated"
	SOCKET_EVENT_NOTE_DELETED    = "note:deleted"
	SOCKET_EVENT_PRESENCE_JOINED = "presence:joined"
	SOCKET_EVENT_PRESENCE_LEFT   = "presence:left"
	SOCKET_EVENT_PRESENCE_LIST   = "presence:list"
	SOCKET_EVENT_BOARD_DELETED   = "board:deleted"
)
