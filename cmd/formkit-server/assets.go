package main

import (
	"embed"
	"io/fs"
)

//go:embed web/index.html
var page []byte

//go:embed rules/*.yaml
var embeddedRules embed.FS

func rulesFS() fs.FS {
	sub, err := fs.Sub(embeddedRules, "rules")
	if err != nil {
		panic(err)
	}
	return sub
}
