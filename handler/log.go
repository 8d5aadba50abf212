package handler

import (
	"net/http"
)

func logRequest(req *http.Request, status int) {
	log.Infof("%s -- %s -- %s -- %d", req.RemoteAddr, req.Method, req.URL.Path, status)
}

func logAndReturnError(w http.ResponseWriter, httpResponseStr string, code int, consoleStr ...string) {
	// consoleStr is optional.
	if len(consoleStr) > 0 {
		log.Errorln(consoleStr[0])
	} else {
		log.Errorln(httpResponseStr)
	}
	writeResponse(w, errorResponse(code, httpResponseStr))
}

func writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write([]byte(resp.Body))
}
