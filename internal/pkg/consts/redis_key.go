package consts

const (
	BoardViewGuardKey = "board:view:guard:"
)
