//go:build !debug

package scene

func debugf(format string, args ...any) {}
