package handlers

import (
	"net/http"

	"go.uber.org/zap"
)

func respondWithError(logger *zap.SugaredLogger, w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		logger.Errorf("%s: %v", logMsg, err)
	}

	http.Error(w, userMsg, status)
}
