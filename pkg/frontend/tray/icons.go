package tray

import (
	_ "embed"
)

var (
	//go:embed assets/speaker.ico
	speakerIcon []byte
	//go:embed assets/speaker-muted.ico
	speakerMutedIcon []byte
)
