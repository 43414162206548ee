package main

import (
	"log"
	"os"
)

// Loggers for informational and error messages. The process is expected to
// run under a supervisor (systemd, docker), so stdout/stderr separation is
// all the log routing we need.
var (
	InfoLogger  *log.Logger
	ErrorLogger *log.Logger
)

func initLoggers() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}
