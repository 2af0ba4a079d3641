package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrUserAlreadyExists  = Error("user already exists")
	ErrUserNotFound       = Error("user not found")
	ErrWrongPassword      = Error("wrong password")
	ErrInvalidToken       = Error("invalid token")
	ErrInvalidEmail       = Error("invalid email")
	ErrInvalidPassword    = Error("invalid password")
	ErrInvalidName        = Error("name is empty or too short")
	ErrInvalidParams      = Error("invalid params")

	// Socket handshake rejections. The two reasons stay distinguishable
	// so clients can tell a missing credential from a bad one.
	ErrAuthMissing = Error("AUTH_MISSING")
	ErrAuthInvalid = Error("AUTH_INVALID")

	ErrUnauthorized        = Error("unauthorized")
	ErrForbidden           = Error("forbidden")
	ErrBoardNotFound       = Error("board not found")
	ErrNoteNotFound        = Error("note not found")
	ErrNotJoined           = Error("board not joined")
	ErrInvalidBoardId      = Error("invalid board id")
	ErrInvalidNoteId       = Error("invalid note id")
	ErrTitleRequired       = Error("title required")
	ErrOnlyOwnerCanDelete  = Error("only owner can delete")
	ErrOnlyOwnerCanManage  = Error("only owner can manage members")
	ErrMemberAlreadyExists = Error("member already exists")
	ErrMemberNotFound      = Error("member not found")
)
