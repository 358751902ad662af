package web

import "embed"

// StaticFiles embeds the frontend assets served by the SPA handler.
//
//go:embed all:static
var StaticFiles embed.FS
