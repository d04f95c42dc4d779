package tools

import "cloud.google.com/go/logging"

// Logger is the part of *logging.Logger the service writes through.
type Logger interface {
	Log(e logging.Entry)
}
