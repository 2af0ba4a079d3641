package msgs

const (
	MsgOperationFailed         = "operation failed"
	MsgOperationSuccessful     = "operation successful"
	MsgUserCreatedSuccessfully = "user created successfully"
	MsgYouMustLoginFirst       = "you must login first"
	MsgBoardDeleted            = "board deleted"
	MsgMemberRemoved           = "member removed"
	MsgNoteNotFound            = "Note not found"
	MsgBoardNotFound           = "Board not found"
	MsgForbidden               = "Forbidden"
	MsgUnauthorized            = "Unauthorized"
	MsgNotJoined               = "join the board before mutating it"
)
