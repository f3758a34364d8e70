//go:build !windows

package cmd

import "github.com/ferama/wsw/internal/wswsvc"

func newServiceEventLogger(serviceName string) (wswsvc.EventLogger, error) {
	return nil, wswsvc.ErrUnsupportedPlatform
}
