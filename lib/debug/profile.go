package debug

import (
	"net/http"
	_ "net/http/pprof"

	log "github.com/sirupsen/logrus"
)

// StartProfiling starts the pprof endpoint on httpEndpoint
func StartProfiling(httpEndpoint string) {
	log.Infof("[PROFILING] http %v", httpEndpoint)

	go func() {
		log.Println(http.ListenAndServe(httpEndpoint, nil))
	}()
}
