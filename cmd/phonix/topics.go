package phonix

import (
	"embed"
	"io/fs"

	"github.com/NicholasDeLioncourt/phonix/pkg/logging"
)

//go:embed topics
var topicFiles embed.FS

func helpTopics() fs.FS {
	sub, err := fs.Sub(topicFiles, "topics")
	logging.Must(err, "Embedded help topics missing")
	return sub
}
