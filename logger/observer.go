package logger

import (
	"context"
	"time"

	"github.com/kbukum/servicebox/di"
)

// ContainerObserver logs service construction and disposal.
// Successful runs log at debug level, failures at error level.
type ContainerObserver struct {
	log *Logger
}

var _ di.Observer = (*ContainerObserver)(nil)

// NewContainerObserver creates an observer logging through l tagged with
// the "container" component.
func NewContainerObserver(l *Logger) *ContainerObserver {
	return &ContainerObserver{log: l.WithComponent("container")}
}

func (o *ContainerObserver) ResolveStarted(ctx context.Context, _ string) context.Context {
	return ctx
}

func (o *ContainerObserver) ResolveFinished(ctx context.Context, name string, elapsed time.Duration, err error) {
	o.finished(ctx, "resolve", name, elapsed, err)
}

func (o *ContainerObserver) DisposeFinished(ctx context.Context, name string, elapsed time.Duration, err error) {
	o.finished(ctx, "dispose", name, elapsed, err)
}

func (o *ContainerObserver) finished(ctx context.Context, phase, name string, elapsed time.Duration, err error) {
	fields := DurationFields(phase, elapsed)
	fields[FieldDependency] = name

	l := o.log.WithContext(ctx)
	if err != nil {
		l.Error("service "+phase+" failed", MergeWithError(fields, err))
		return
	}
	l.Debug("service "+phase+"d", fields)
}
