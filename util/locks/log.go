package locks

import (
	"github.com/distledger/ledgernode/infrastructure/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.LOCK)
