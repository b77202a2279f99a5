package main

import (
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
)

func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	_ = app.errorLog.Output(2, trace)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	fmt.Fprint(w, `{"error": "Internal Server Error"}`)
}

// stdLogger adapts the info and error loggers to the Infof/Errorf
// interface taken by storage and handlers.
type stdLogger struct {
	info *log.Logger
	err  *log.Logger
}

func (l stdLogger) Infof(format string, args ...interface{}) {
	_ = l.info.Output(2, fmt.Sprintf(format, args...))
}

func (l stdLogger) Errorf(format string, args ...interface{}) {
	_ = l.err.Output(2, fmt.Sprintf(format, args...))
}
