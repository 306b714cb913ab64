package protocol

import (
	"github.com/distledger/ledgernode/infrastructure/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.APP)
