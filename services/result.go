package services

const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Result 是一次修改操作给展示层的通知，替代全局 flash message
type Result struct {
	Level    string `json:"level"`
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

func success(msg, redirect string) Result {
	return Result{Level: LevelSuccess, Message: msg, Redirect: redirect}
}

type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
)
