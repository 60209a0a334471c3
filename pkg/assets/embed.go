package assets

import "embed"

// Content is the embedded assets.
//
//go:embed *.html css/*
var Content embed.FS
