package obs

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// serviceName is stamped on every request log line so aggregated output
// stays attributable to this API.
const serviceName = "menuqr-api"

var (
	loggerOnce sync.Once
	logger     *log.Logger
)

// Logger returns the shared line logger: one JSON object per line on
// stdout, no prefix, no flags.
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		logger = log.New(os.Stdout, "", 0)
	})
	return logger
}

// LogRequest emits a structured request log line. The service name is
// added here so call sites carry only request fields.
func LogRequest(entry map[string]any) {
	if _, ok := entry["service"]; !ok {
		entry["service"] = serviceName
	}
	data, err := json.Marshal(entry)
	if err != nil {
		Logger().Println(`{"level":"error","msg":"log marshal failed","service":"` + serviceName + `"}`)
		return
	}
	Logger().Println(string(data))
}
