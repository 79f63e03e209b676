//go:build !windows

package osver

func query() Info { return Info{} }
