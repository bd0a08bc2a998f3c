package handlers

import "errors"

var errSessionStart = errors.New("session could not be started")
