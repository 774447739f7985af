package slackbot

import (
	"shiftbot/internal/config"
	"shiftbot/internal/domain"
)

type Config = config.Config
type ShiftLog = domain.ShiftLog
