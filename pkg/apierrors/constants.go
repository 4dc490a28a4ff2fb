package apierrors

const (
	MsgInvalidPayload     = "invalidPayload"
	MsgUserAlreadyExists  = "userAlreadyExists"
	MsgInvalidCredentials = "invalidCredentials"
	MsgUnauthorized       = "unauthorized"

	MsgInvalidTaskID    = "invalidTaskID"
	MsgInvalidListQuery = "invalidListQuery"
	MsgTaskNotFound     = "taskNotFound"
	MsgTaskForbidden    = "taskForbidden"
	MsgInvalidTaskField = "invalidTaskField"

	MsgFailRegisterUser = "failRegisterUser"
	MsgFailLogin        = "failLogin"
	MsgFailCreateTask   = "failCreateTask"
	MsgFailListTask     = "errorListTask"
	MsgFailGetTask      = "failGetTask"
	MsgFailUpdateTask   = "failUpdateTask"
	MsgFailDeleteTask   = "failDeleteTask"
)
