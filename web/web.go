// Package web carries the embedded single-page mood form and chart.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
