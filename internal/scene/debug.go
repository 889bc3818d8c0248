//go:build debug

package scene

import "log"

func debugf(format string, args ...any) {
	log.Printf(format, args...)
}
