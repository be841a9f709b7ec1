package bridge

import (
	"encoding/json"
	"fmt"
	"io"
)

// Kind classifies a failure for the error document.
type Kind string

const (
	// KindParse covers unreadable input and malformed request documents.
	KindParse Kind = "ParseError"
	// KindConfig covers credential and client construction problems.
	KindConfig Kind = "ConfigError"
	// KindService covers failed operations: bad payloads, backend errors.
	KindService Kind = "ServiceError"
)

// ErrorResponse is the error document written to the output. Type is empty
// for the unknown-command reply, which reports an error without failing the
// run.
type ErrorResponse struct {
	Error string `json:"error"`
	Type  Kind   `json:"type,omitempty"`
}

// Failure carries a classified error out of the dispatcher. It is returned
// after the error document has been written, so the caller only has to exit
// non-zero and log.
type Failure struct {
	Kind Kind
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// EmitFailure writes an error document directly to out. It lets the command
// layer keep the wire contract for failures that happen before a dispatcher
// exists, such as an unreadable credential file.
func EmitFailure(out io.Writer, kind Kind, err error) {
	data, merr := json.Marshal(ErrorResponse{Error: err.Error(), Type: kind})
	if merr != nil {
		return
	}

	data = append(data, '\n')
	_, _ = out.Write(data)
}
