package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/kbukum/servicebox/di"
	"github.com/kbukum/servicebox/logger"
)

// ServiceInfo is one container service as shown in the startup summary.
type ServiceInfo struct {
	Name   string
	Type   string
	Status string // "lazy" or "resolved"
}

// Summary describes the application once startup completes.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	services        []ServiceInfo
}

// NewSummary creates an empty startup summary.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Collect snapshots the services declared on c.
func (s *Summary) Collect(c *di.Container) {
	s.services = s.services[:0]
	if c == nil {
		return
	}
	for _, reg := range c.Registrations() {
		info := ServiceInfo{Name: reg.Name, Type: "unknown", Status: "lazy"}
		if reg.Type != nil {
			info.Type = reg.Type.String()
		}
		if reg.Cached {
			info.Status = "resolved"
		}
		s.services = append(s.services, info)
	}
}

// Services returns the collected services.
func (s *Summary) Services() []ServiceInfo {
	return s.services
}

// Lines renders the summary as a small tree, one line per entry.
func (s *Summary) Lines() []string {
	lines := []string{
		fmt.Sprintf("%s %s started in %s", s.serviceName, s.version, s.startupDuration.Round(time.Millisecond)),
		fmt.Sprintf("services (%d)", len(s.services)),
	}
	for i, svc := range s.services {
		lines = append(lines, fmt.Sprintf("%s %s %s [%s]",
			treePrefix(i, len(s.services)), statusIcon(svc.Status), svc.Name, svc.Type))
	}
	return lines
}

// Log writes the summary through l, one entry per line.
func (s *Summary) Log(l *logger.Logger) {
	l.Info(strings.Join(s.Lines(), "\n"), map[string]interface{}{
		"services":   len(s.services),
		"startup_ms": s.startupDuration.Milliseconds(),
	})
}

func treePrefix(i, total int) string {
	if i == total-1 {
		return "└─"
	}
	return "├─"
}

func statusIcon(status string) string {
	if status == "resolved" {
		return "●"
	}
	return "○"
}
