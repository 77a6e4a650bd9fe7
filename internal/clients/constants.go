package clients

import "time"

const (
	HTTP_TIMEOUT   = 10 * time.Second
	OPENAI_TIMEOUT = 60 * time.Second
	USER_AGENT     = "socialpulse-bot/1.0 (+https://github.com/spacesedan/socialpulse)"
)
