package handler

import (
	"github.com/sirupsen/logrus"

	"blogwriter/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
