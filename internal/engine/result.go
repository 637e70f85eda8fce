package engine

import "rotterDB/internal/sql"

// Status is the outcome of one executed command.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// Result is the envelope returned for every command.
//
// Data depends on the statement:
//
//	CREATE, DROP  nil
//	INSERT        map[string]sql.Value holding the generated _id
//	SELECT        []sql.Row
//	DESCRIBE      []ColumnInfo
//
// Failed commands always carry nil Data.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// OK reports whether the command succeeded.
func (r Result) OK() bool { return r.Status == StatusSuccess }

// ColumnInfo is one line of DESCRIBE output.
type ColumnInfo struct {
	Column string `json:"column"`
	Type   string `json:"type"`
}

func success(message string, data any) Result {
	return Result{Status: StatusSuccess, Message: message, Data: data}
}

func failure(err error) Result {
	return Result{Status: StatusError, Message: err.Error()}
}

// idData is the Data payload of a successful INSERT.
func idData(id sql.Value) map[string]sql.Value {
	return map[string]sql.Value{"_id": id}
}
