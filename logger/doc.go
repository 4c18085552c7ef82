// Package logger provides structured logging for servicebox applications
// using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. ContainerObserver plugs
// the logger into a di.Container so service construction and disposal show
// up in the log stream.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("catalog")
//	log.Info("item created", logger.Fields("id", id))
package logger
